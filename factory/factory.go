// Package factory provides factory functions for creating tokenizers and formatters.
package factory

import (
	"fmt"

	"github.com/kyle-williams-1/docsearch/config"
	"github.com/kyle-williams-1/docsearch/formatter"
	bsonformatter "github.com/kyle-williams-1/docsearch/formatter/bson"
	"github.com/kyle-williams-1/docsearch/formatter/sphinx"
	"github.com/kyle-williams-1/docsearch/language"
	"github.com/kyle-williams-1/docsearch/language/fielded"
	"github.com/kyle-williams-1/docsearch/query"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateTokenizer creates a tokenizer based on the language type.
func CreateTokenizer(langType config.LanguageType) (language.Tokenizer, error) {
	switch langType {
	case config.LanguageFielded:
		return fielded.New(), nil
	default:
		return nil, fmt.Errorf("unsupported language type: %s", langType)
	}
}

// CreateBSONFormatter creates a BSON formatter matching labels against labelField.
func CreateBSONFormatter(labelField string) formatter.Formatter[bson.D] {
	return bsonformatter.NewWithLabelField(labelField)
}

// CreateSphinxFormatter creates a Sphinx formatter.
func CreateSphinxFormatter() formatter.Formatter[sphinx.Query] {
	return sphinx.New()
}

// CreateFormatter creates the formatter named by cfg and returns it as a
// function producing an untyped rendering, for callers such as the CLI that
// pick the output format at run time.
func CreateFormatter(cfg *config.Config) (func(*query.Query) (any, error), error) {
	switch cfg.Formatter {
	case config.FormatterBSON:
		return erase(CreateBSONFormatter(cfg.LabelField)), nil
	case config.FormatterSphinx:
		return erase(CreateSphinxFormatter()), nil
	default:
		return nil, fmt.Errorf("unsupported formatter type: %s", cfg.Formatter)
	}
}

func erase[T any](f formatter.Formatter[T]) func(*query.Query) (any, error) {
	return func(q *query.Query) (any, error) {
		return f.Format(q)
	}
}
