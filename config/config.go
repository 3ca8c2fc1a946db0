// Package config provides configuration for the search query parser.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/kyle-williams-1/docsearch/registry"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for an unusable configuration.
var ErrInvalidConfig = errors.New("invalid config")

// LanguageType represents the query string grammar to tokenize with.
type LanguageType string

const (
	// LanguageFielded represents free text mixed with kind:value constraints
	LanguageFielded LanguageType = "fielded"
)

// FormatterType represents the type of output formatter to use.
type FormatterType string

const (
	// FormatterBSON represents a MongoDB filter document
	FormatterBSON FormatterType = "bson"
	// FormatterSphinx represents a Sphinx extended query with attribute filters
	FormatterSphinx FormatterType = "sphinx"
)

// Defaults for the boolean-OR translation and label storage.
const (
	DefaultORMarker   = "OR"
	DefaultORToken    = "|"
	DefaultLabelField = "labels"
)

// Config represents the configuration for a parser. Formatter selects the
// formatter built by factory.CreateFormatter and the docsearch CLI output
// when no --format is given.
type Config struct {
	Language   LanguageType    `yaml:"language"`
	Formatter  FormatterType   `yaml:"formatter"`
	ORMarker   string          `yaml:"or_marker"`
	ORToken    string          `yaml:"or_token"`
	LabelField string          `yaml:"label_field"`
	Kinds      []registry.Kind `yaml:"kinds"`
}

// Default returns the default configuration: the fielded grammar, the BSON
// formatter, OR translated to Sphinx's | and the default kind vocabulary.
func Default() *Config {
	return &Config{
		Language:   LanguageFielded,
		Formatter:  FormatterBSON,
		ORMarker:   DefaultORMarker,
		ORToken:    DefaultORToken,
		LabelField: DefaultLabelField,
		Kinds:      registry.Default().Kinds(),
	}
}

// WithLanguage sets the language type and returns the config.
func (c *Config) WithLanguage(lang LanguageType) *Config {
	c.Language = lang
	return c
}

// WithFormatter sets the formatter type and returns the config.
func (c *Config) WithFormatter(formatter FormatterType) *Config {
	c.Formatter = formatter
	return c
}

// WithORMarker sets the word recognized as boolean OR in free text and returns the config.
func (c *Config) WithORMarker(marker string) *Config {
	c.ORMarker = marker
	return c
}

// WithORToken sets the index engine's native OR operator and returns the config.
func (c *Config) WithORToken(token string) *Config {
	c.ORToken = token
	return c
}

// WithLabelField sets the document field labels are stored in and returns the config.
func (c *Config) WithLabelField(field string) *Config {
	c.LabelField = field
	return c
}

// WithKinds sets the ordered canonical kinds and returns the config.
func (c *Config) WithKinds(kinds []registry.Kind) *Config {
	c.Kinds = kinds
	return c
}

// Validate checks that the config can build a parser.
func (c *Config) Validate() error {
	switch c.Language {
	case LanguageFielded:
	default:
		return fmt.Errorf("%w: unsupported language type: %q", ErrInvalidConfig, c.Language)
	}

	switch c.Formatter {
	case FormatterBSON, FormatterSphinx:
	default:
		return fmt.Errorf("%w: unsupported formatter type: %q", ErrInvalidConfig, c.Formatter)
	}

	if c.ORMarker == "" || strings.ContainsFunc(c.ORMarker, unicode.IsSpace) {
		return fmt.Errorf("%w: or_marker must be a single word, got %q", ErrInvalidConfig, c.ORMarker)
	}
	if strings.TrimSpace(c.ORToken) == "" || strings.TrimSpace(c.ORToken) != c.ORToken {
		return fmt.Errorf("%w: or_token must be non-blank without surrounding whitespace, got %q", ErrInvalidConfig, c.ORToken)
	}
	if strings.TrimSpace(c.LabelField) == "" {
		return fmt.Errorf("%w: label_field must not be blank", ErrInvalidConfig)
	}

	if _, err := registry.New(c.Kinds...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Registry builds the canonical kind registry described by the config.
func (c *Config) Registry() (*registry.Registry, error) {
	r, err := registry.New(c.Kinds...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return r, nil
}

// Decode reads a YAML config from r on top of the defaults. Unknown keys are
// rejected. A kinds list in the document replaces the default kinds.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a YAML config file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
