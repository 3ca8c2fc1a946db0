// Package bson renders parsed queries as MongoDB filter documents.
package bson

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kyle-williams-1/docsearch/config"
	"github.com/kyle-williams-1/docsearch/formatter"
	"github.com/kyle-williams-1/docsearch/query"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrNilQuery is returned when Format is given a nil query.
var ErrNilQuery = errors.New("nil query")

// ErrInvalidKey is returned when a field kind cannot be used as a document
// key: it is empty, starts with '$' or contains a '.' or a NUL byte.
var ErrInvalidKey = errors.New("invalid field key")

// Formatter represents a BSON formatter for parsed queries.
type Formatter struct {
	labelField string
}

// New creates a BSON formatter that matches labels against the default label field.
func New() *Formatter {
	return NewWithLabelField(config.DefaultLabelField)
}

// NewWithLabelField creates a BSON formatter that matches labels against field.
func NewWithLabelField(field string) *Formatter {
	return &Formatter{labelField: field}
}

// Ensure Formatter implements the generic interface
var _ formatter.Formatter[bson.D] = (*Formatter)(nil)

// Format converts a query into a filter document:
//   - free text becomes a $text search
//   - attributes match their value exactly
//   - fields match their value as a case-insensitive literal substring
//   - labels must all be present in the label field
//
// A single clause is returned as is, several are combined under $and and an
// empty query yields an empty filter.
func (f *Formatter) Format(q *query.Query) (bson.D, error) {
	if q == nil {
		return bson.D{}, ErrNilQuery
	}

	var clauses bson.A
	if text, ok := q.Text(); ok {
		clauses = append(clauses, bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: text}}}})
	}
	for _, field := range q.Fields() {
		if err := checkKey(field.Kind); err != nil {
			return bson.D{}, err
		}
		clauses = append(clauses, f.fieldToBSON(field))
	}
	for _, attr := range q.Attributes() {
		if err := checkKey(attr.Kind); err != nil {
			return bson.D{}, err
		}
		clauses = append(clauses, bson.D{{Key: attr.Kind, Value: attr.Value}})
	}
	if labels := q.Labels(); len(labels) > 0 {
		clauses = append(clauses, bson.D{{Key: f.labelField, Value: bson.D{{Key: "$all", Value: labels}}}})
	}

	switch len(clauses) {
	case 0:
		return bson.D{}, nil
	case 1:
		return clauses[0].(bson.D), nil
	default:
		return bson.D{{Key: "$and", Value: clauses}}, nil
	}
}

// fieldToBSON escapes the value so user input is never interpreted as a pattern.
func (f *Formatter) fieldToBSON(field query.Field) bson.D {
	return bson.D{{Key: field.Kind, Value: bson.D{
		{Key: "$regex", Value: regexp.QuoteMeta(field.Value)},
		{Key: "$options", Value: "i"},
	}}}
}

// checkKey rejects kinds that Mongo would read as an operator or a path.
func checkKey(kind string) error {
	if kind == "" || strings.HasPrefix(kind, "$") || strings.ContainsAny(kind, ".\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, kind)
	}
	return nil
}
