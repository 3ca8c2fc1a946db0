// Package language provides interfaces for query string tokenizers.
package language

// Span is a half-open byte range [Start, End) in the raw query string.
type Span struct {
	Start int
	End   int
}

// FieldToken is a kind:value pair extracted from a query string.
type FieldToken struct {
	Kind   string
	Value  string
	Raw    string
	Quoted bool
	Span   Span
}

// Extraction is the result of tokenizing a query string. Bare and Quoted hold
// field tokens in source order; Text is whatever remains once every field
// span is removed, with whitespace collapsed and trimmed.
type Extraction struct {
	Bare   []FieldToken
	Quoted []FieldToken
	Text   string
}

// Fields returns bare tokens followed by quoted tokens.
func (e Extraction) Fields() []FieldToken {
	fields := make([]FieldToken, 0, len(e.Bare)+len(e.Quoted))
	fields = append(fields, e.Bare...)
	return append(fields, e.Quoted...)
}

// Tokenizer splits a raw query string into field tokens and free text.
type Tokenizer interface {
	Tokenize(query string) Extraction
}
