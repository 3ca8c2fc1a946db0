// Package docsearch parses user-typed search strings into structured queries
// made of free text, field constraints, attribute constraints and labels.
package docsearch

import (
	"fmt"

	"github.com/go-kit/log"
	"github.com/kyle-williams-1/docsearch/config"
	"github.com/kyle-williams-1/docsearch/factory"
	"github.com/kyle-williams-1/docsearch/language"
	"github.com/kyle-williams-1/docsearch/query"
	"github.com/kyle-williams-1/docsearch/registry"
)

// Parser turns raw search strings into queries. A Parser is immutable once
// built and safe for concurrent use.
type Parser struct {
	tokenizer language.Tokenizer
	kinds     *registry.Registry
	orMarker  string
	orToken   string
	logger    log.Logger
}

// New creates a parser with the default configuration.
func New() *Parser {
	p, err := NewWithConfig(config.Default())
	if err != nil {
		panic(fmt.Sprintf("docsearch: default config is invalid: %v", err))
	}
	return p
}

// NewWithConfig creates a parser from cfg. The kind registry is built and
// validated here, so a malformed vocabulary is reported before any parse.
func NewWithConfig(cfg *config.Config) (*Parser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tokenizer, err := factory.CreateTokenizer(cfg.Language)
	if err != nil {
		return nil, err
	}

	kinds, err := cfg.Registry()
	if err != nil {
		return nil, err
	}

	return &Parser{
		tokenizer: tokenizer,
		kinds:     kinds,
		orMarker:  cfg.ORMarker,
		orToken:   cfg.ORToken,
		logger:    log.NewNopLogger(),
	}, nil
}

// WithLogger returns a copy of the parser that logs unresolved kinds and
// dropped tokens to logger at debug level.
func (p *Parser) WithLogger(logger log.Logger) *Parser {
	cp := *p
	cp.logger = logger
	return &cp
}

// Registry returns the canonical kinds the parser resolves against.
func (p *Parser) Registry() *registry.Registry {
	return p.kinds
}

var defaultParser = New()

// Parse converts a search string into a query using the default parser.
func Parse(raw string) *query.Query {
	return defaultParser.Parse(raw)
}

// Parse converts a search string into a query. It never fails: unknown
// kinds are kept verbatim as plain fields and an empty string yields an
// empty query. The steps are:
// 1. Tokenize into bare fields, quoted fields and residual free text
// 2. Classify each field token, bare before quoted, as a label or a field
// 3. Translate the OR marker in the free text to the index's OR operator
func (p *Parser) Parse(raw string) *query.Query {
	extraction := p.tokenizer.Tokenize(raw)

	c := classifier{kinds: p.kinds, logger: p.logger}
	for _, tok := range extraction.Fields() {
		c.classify(tok)
	}

	return query.New(p.normalizeText(extraction.Text), c.fields, c.attributes, c.labels)
}
