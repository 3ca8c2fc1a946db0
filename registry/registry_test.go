package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := Default()

	tests := []struct {
		name     string
		raw      string
		expected string
		found    bool
	}{
		{"exact", "title", "title", true},
		{"miscased", "TiTlE", "title", true},
		{"prefix abbreviation", "desc", "description", true},
		{"substring", "ganiz", "organization", true},
		{"alias", "src", "source", true},
		{"alias miscased", "Company", "organization", true},
		{"attribute", "account", "account", true},
		{"attribute abbreviation", "proj", "project", true},
		{"registry order wins", "ti", "organization", true},
		{"first of several attributes", "acc", "account", true},
		{"surrounding whitespace", "  city ", "city", true},
		{"unknown", "colour", "", false},
		{"empty", "", "", false},
		{"regex syntax is literal", "t.tle", "", false},
		{"regex alternation is literal", "city|state", "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			kind, ok := r.Resolve(test.raw)
			assert.Equal(t, test.found, ok)
			assert.Equal(t, test.expected, kind.Name)
		})
	}
}

func TestResolveUnicodeFolding(t *testing.T) {
	r := MustNew(Kind{Name: "\u00c9mission"})

	kind, ok := r.Resolve("\u00c9MISSION")
	require.True(t, ok)
	assert.Equal(t, "\u00c9mission", kind.Name)

	// Decomposed e + combining acute matches the precomposed name.
	kind, ok = r.Resolve("e\u0301mis")
	require.True(t, ok)
	assert.Equal(t, "\u00c9mission", kind.Name)
}

func TestResolveFirstMatchIsOrderDependent(t *testing.T) {
	general := Kind{Name: "date"}
	specific := Kind{Name: "datetime"}

	kind, _ := MustNew(general, specific).Resolve("dat")
	assert.Equal(t, "date", kind.Name)

	kind, _ = MustNew(specific, general).Resolve("dat")
	assert.Equal(t, "datetime", kind.Name)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name  string
		kinds []Kind
	}{
		{"blank name", []Kind{{Name: "  "}}},
		{"reserved label", []Kind{{Name: "Label"}}},
		{"colon in name", []Kind{{Name: "a:b"}}},
		{"whitespace in name", []Kind{{Name: "a b"}}},
		{"unicode whitespace in name", []Kind{{Name: "a\u00a0b"}}},
		{"quote in name", []Kind{{Name: `a"b`}}},
		{"empty alias", []Kind{{Name: "title", Aliases: []string{""}}}},
		{"bad alias", []Kind{{Name: "title", Aliases: []string{"head line"}}}},
		{"duplicate", []Kind{{Name: "title"}, {Name: "TITLE"}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, err := New(test.kinds...)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, ErrInvalidKind))
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Kind{Name: ""}) })
}

func TestLookupAndAttributes(t *testing.T) {
	r := Default()

	kind, ok := r.Lookup("ACCOUNT")
	require.True(t, ok)
	assert.Equal(t, "account", kind.Name)
	assert.True(t, kind.Attribute)

	_, ok = r.Lookup("acc")
	assert.False(t, ok, "lookup is exact, not a resolve")

	assert.True(t, r.IsAttribute("account"))
	assert.False(t, r.IsAttribute("title"))
	assert.False(t, r.IsAttribute("unknown"))
	assert.Equal(t, []string{"account", "group", "access", "project"}, r.Attributes())
	assert.Equal(t, len(DefaultKinds), r.Len())
}

func TestKindsAreCopies(t *testing.T) {
	r := MustNew(Kind{Name: "title", Aliases: []string{"headline"}})

	kinds := r.Kinds()
	kinds[0].Aliases[0] = "changed"
	kinds[0].Name = "changed"

	kind, ok := r.Resolve("headline")
	require.True(t, ok)
	assert.Equal(t, "title", kind.Name)
	assert.Equal(t, []string{"headline"}, kind.Aliases)
}
