// Package fielded tokenizes search strings made of free text and kind:value
// constraints.
package fielded

import (
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/kyle-williams-1/docsearch/language"
)

// space is the regexp class of unicode.IsSpace, so the lexer agrees with
// strings.TrimSpace and strings.Fields on what separates words.
const space = `\s\v\x{85}\p{Z}`

// Rules are tried in order at every position, so a quoted field always wins
// over the bare field that is its prefix, and anything that is not a field
// falls through to Word. Kinds never contain whitespace, colons or quotes.
var fieldLexer = lexer.MustSimple([]lexer.SimpleRule{
	// kind:"value with spaces" or kind: 'value with spaces'
	{Name: "QuotedField", Pattern: `[^` + space + `:"']+:[` + space + `]*(?:"[^"]+"|'[^']+')`},
	// kind:value, where value runs to the next whitespace and does not open a quote
	{Name: "BareField", Pattern: `[^` + space + `:"']+:[^` + space + `"'][^` + space + `]*`},
	{Name: "Word", Pattern: `[^` + space + `]+`},
	{Name: "Whitespace", Pattern: `[` + space + `]+`},
})

var (
	quotedFieldType = fieldLexer.Symbols()["QuotedField"]
	bareFieldType   = fieldLexer.Symbols()["BareField"]
	wordType        = fieldLexer.Symbols()["Word"]
)

// Tokenizer extracts bare and quoted field tokens and the residual free text.
type Tokenizer struct{}

// New creates a new fielded tokenizer.
func New() *Tokenizer {
	return &Tokenizer{}
}

// Ensure Tokenizer implements the language interface
var _ language.Tokenizer = (*Tokenizer)(nil)

// word is a residual word and the offset it starts at in the raw query.
type word struct {
	value string
	start int
}

// Tokenize scans query, collecting field tokens with their spans and joining
// the remaining words with single spaces.
//
// Removing a field can leave a "kind:" word next to a quoted phrase, as in
// `title: x:y "a b"`. The joined words are scanned again until no field is
// left, so such a pair becomes a quoted field whose span runs from the kind
// to the closing quote and the residual text never contains a field.
func (t *Tokenizer) Tokenize(query string) language.Extraction {
	var extraction language.Extraction
	if strings.TrimSpace(query) == "" {
		return extraction
	}

	words, err := scan(query, func(offset int) int { return offset }, &extraction)
	if err != nil {
		return language.Extraction{Text: collapse(query)}
	}

	for {
		text, origin := join(words)
		found := len(extraction.Bare) + len(extraction.Quoted)
		next, err := scan(text, origin, &extraction)
		if err != nil || len(extraction.Bare)+len(extraction.Quoted) == found {
			extraction.Text = text
			break
		}
		words = next
	}

	bySpan := func(a, b language.FieldToken) int { return a.Span.Start - b.Span.Start }
	slices.SortStableFunc(extraction.Bare, bySpan)
	slices.SortStableFunc(extraction.Quoted, bySpan)

	return extraction
}

// Strip returns query with every field token removed and whitespace collapsed.
func (t *Tokenizer) Strip(query string) string {
	return t.Tokenize(query).Text
}

// scan lexes text once, appending field tokens to extraction and returning
// the words in between. origin maps an offset in text to one in the raw query.
func scan(text string, origin func(int) int, extraction *language.Extraction) ([]word, error) {
	lex, err := fieldLexer.LexString("", text)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	var words []word
	for _, tok := range tokens {
		switch tok.Type {
		case quotedFieldType:
			extraction.Quoted = append(extraction.Quoted, quotedToken(tok, span(tok, origin)))
		case bareFieldType:
			extraction.Bare = append(extraction.Bare, bareToken(tok, span(tok, origin)))
		case wordType:
			words = append(words, word{value: tok.Value, start: origin(tok.Pos.Offset)})
		}
	}
	return words, nil
}

// join returns the words separated by single spaces and a function mapping
// an offset in the joined text back to the raw query.
func join(words []word) (string, func(int) int) {
	var b strings.Builder
	offsets := make([]int, len(words))
	for i, w := range words {
		if i > 0 {
			b.WriteByte(' ')
		}
		offsets[i] = b.Len()
		b.WriteString(w.value)
	}

	origin := func(offset int) int {
		i := sort.SearchInts(offsets, offset+1) - 1
		if i < 0 {
			return offset
		}
		return words[i].start + offset - offsets[i]
	}
	return b.String(), origin
}

func span(tok lexer.Token, origin func(int) int) language.Span {
	last := tok.Pos.Offset + len(tok.Value) - 1
	return language.Span{Start: origin(tok.Pos.Offset), End: origin(last) + 1}
}

// bareToken splits at the first colon; the value may contain further colons.
func bareToken(tok lexer.Token, span language.Span) language.FieldToken {
	kind, value, _ := strings.Cut(tok.Value, ":")
	return language.FieldToken{
		Kind:  kind,
		Value: value,
		Raw:   tok.Value,
		Span:  span,
	}
}

// quotedToken drops the whitespace after the colon and the enclosing quote pair.
func quotedToken(tok lexer.Token, span language.Span) language.FieldToken {
	kind, rest, _ := strings.Cut(tok.Value, ":")
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	return language.FieldToken{
		Kind:   kind,
		Value:  rest[1 : len(rest)-1],
		Raw:    tok.Value,
		Quoted: true,
		Span:   span,
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
