// Package formatter provides interfaces for rendering parsed queries.
package formatter

import (
	"github.com/kyle-williams-1/docsearch/query"
	"go.mongodb.org/mongo-driver/bson"
)

// Formatter renders a parsed query into a specific index's query type.
type Formatter[T any] interface {
	Format(q *query.Query) (T, error)
}

// BSONFormatter renders MongoDB filter documents.
type BSONFormatter = Formatter[bson.D]
