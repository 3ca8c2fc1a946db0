// Package query provides the structured search query produced by the parser.
package query

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Field is a single kind:value constraint.
type Field struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`

	attribute bool
}

// NewField creates a field. The attribute flag must come from the kind registry.
func NewField(kind, value string, attribute bool) Field {
	return Field{Kind: kind, Value: value, attribute: attribute}
}

// IsAttribute reports whether the field is an exact-match attribute constraint
// rather than a full-text indexed field.
func (f Field) IsAttribute() bool {
	return f.attribute
}

// String returns the field in kind:value form, quoting values with spaces.
func (f Field) String() string {
	if strings.ContainsAny(f.Value, " \t") {
		return fmt.Sprintf("%s:%q", f.Kind, f.Value)
	}
	return f.Kind + ":" + f.Value
}

// Query is the structured form of a raw search string. It is immutable once
// constructed.
type Query struct {
	text       string
	hasText    bool
	fields     []Field
	attributes []Field
	labels     []string
}

// New creates a query. An empty text means the query has no free text.
// The slices are copied.
func New(text string, fields, attributes []Field, labels []string) *Query {
	return &Query{
		text:       text,
		hasText:    text != "",
		fields:     append([]Field{}, fields...),
		attributes: append([]Field{}, attributes...),
		labels:     append([]string{}, labels...),
	}
}

// Text returns the normalized free text and whether there was any.
func (q *Query) Text() (string, bool) {
	return q.text, q.hasText
}

// HasText reports whether the query carries free text.
func (q *Query) HasText() bool {
	return q.hasText
}

// Fields returns the full-text field constraints in the order they were parsed.
func (q *Query) Fields() []Field {
	return append([]Field{}, q.fields...)
}

// Attributes returns the attribute constraints in the order they were parsed.
func (q *Query) Attributes() []Field {
	return append([]Field{}, q.attributes...)
}

// Labels returns the label names in the order they were parsed.
func (q *Query) Labels() []string {
	return append([]string{}, q.labels...)
}

// IsEmpty reports whether the query has no text, fields, attributes or labels.
func (q *Query) IsEmpty() bool {
	return !q.hasText && len(q.fields) == 0 && len(q.attributes) == 0 && len(q.labels) == 0
}

func (q *Query) String() string {
	var parts []string
	if q.hasText {
		parts = append(parts, fmt.Sprintf("text=%q", q.text))
	}
	for _, f := range q.fields {
		parts = append(parts, "field="+f.String())
	}
	for _, a := range q.attributes {
		parts = append(parts, "attribute="+a.String())
	}
	for _, l := range q.labels {
		parts = append(parts, fmt.Sprintf("label=%q", l))
	}
	return "Query{" + strings.Join(parts, " ") + "}"
}

type jsonQuery struct {
	Text       *string  `json:"text,omitempty"`
	Fields     []Field  `json:"fields"`
	Attributes []Field  `json:"attributes"`
	Labels     []string `json:"labels"`
}

// MarshalJSON encodes the query. The text key is omitted when there is no
// free text; the sequences are always present.
func (q *Query) MarshalJSON() ([]byte, error) {
	out := jsonQuery{
		Fields:     q.Fields(),
		Attributes: q.Attributes(),
		Labels:     q.Labels(),
	}
	if q.hasText {
		text := q.text
		out.Text = &text
	}
	return json.Marshal(out)
}
