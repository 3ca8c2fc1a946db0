// Package sphinx renders parsed queries in Sphinx extended query syntax.
package sphinx

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/kyle-williams-1/docsearch/formatter"
	"github.com/kyle-williams-1/docsearch/query"
)

// ErrNilQuery is returned when Format is given a nil query.
var ErrNilQuery = errors.New("nil query")

// ErrInvalidField is returned when a kind is not a valid Sphinx field or
// attribute name.
var ErrInvalidField = errors.New("invalid field name")

// Filter restricts an attribute to one of several values.
type Filter struct {
	Attribute string   `json:"attribute"`
	Values    []string `json:"values"`
}

// Query is a full-text match expression plus the attribute and label
// filters that are applied outside of it.
type Query struct {
	Match   string   `json:"match"`
	Filters []Filter `json:"filters"`
	Labels  []string `json:"labels"`
}

// Formatter represents a Sphinx formatter for parsed queries.
type Formatter struct{}

// New creates a new Sphinx formatter instance.
func New() *Formatter {
	return &Formatter{}
}

// Ensure Formatter implements the generic interface
var _ formatter.Formatter[Query] = (*Formatter)(nil)

// Format renders free text as is, each field as an @field clause and groups
// attribute values by attribute in the order they first appear.
func (f *Formatter) Format(q *query.Query) (Query, error) {
	if q == nil {
		return Query{}, ErrNilQuery
	}

	var match []string
	if text, ok := q.Text(); ok {
		match = append(match, text)
	}
	for _, field := range q.Fields() {
		if err := checkName(field.Kind); err != nil {
			return Query{}, err
		}
		match = append(match, "@"+field.Kind+" "+phrase(field.Value))
	}

	result := Query{
		Match:   strings.Join(match, " "),
		Filters: []Filter{},
		Labels:  q.Labels(),
	}

	index := map[string]int{}
	for _, attr := range q.Attributes() {
		if err := checkName(attr.Kind); err != nil {
			return Query{}, err
		}
		i, ok := index[attr.Kind]
		if !ok {
			i = len(result.Filters)
			index[attr.Kind] = i
			result.Filters = append(result.Filters, Filter{Attribute: attr.Kind})
		}
		result.Filters[i].Values = append(result.Filters[i].Values, attr.Value)
	}

	return result, nil
}

// phrase quotes multi-word values so the field operator covers all of them.
func phrase(value string) string {
	if !strings.ContainsFunc(value, unicode.IsSpace) {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}

// checkName accepts names made of letters, digits and underscores that do
// not start with a digit.
func checkName(kind string) error {
	for i, r := range kind {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return fmt.Errorf("%w: %q", ErrInvalidField, kind)
	}
	if kind == "" {
		return fmt.Errorf("%w: empty", ErrInvalidField)
	}
	return nil
}
