// Package registry provides the canonical kind vocabulary that fielded
// searches are resolved against.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// LabelKind is the reserved field kind for label filters.
const LabelKind = "label"

// ErrInvalidKind is returned when a registry is built from a malformed kind.
var ErrInvalidKind = errors.New("invalid kind")

// Kind is a canonical field kind.
type Kind struct {
	// Name is the canonical name stored on resolved fields.
	Name string `yaml:"name"`
	// Aliases are additional spellings a user fragment may match.
	Aliases []string `yaml:"aliases,omitempty"`
	// Attribute marks exact-match metadata kinds.
	Attribute bool `yaml:"attribute,omitempty"`
}

func (k Kind) clone() Kind {
	k.Aliases = append([]string(nil), k.Aliases...)
	return k
}

type entry struct {
	kind    Kind
	matches []string // folded name followed by folded aliases
}

// Registry is an ordered, read-only set of canonical kinds. Order matters:
// Resolve returns the first kind that matches, so more specific kinds should
// be registered before more general ones.
type Registry struct {
	entries []entry
	byName  map[string]int
}

// New builds a registry from kinds in the given order.
func New(kinds ...Kind) (*Registry, error) {
	r := &Registry{
		entries: make([]entry, 0, len(kinds)),
		byName:  make(map[string]int, len(kinds)),
	}

	for i, k := range kinds {
		if err := validateKind(k); err != nil {
			return nil, fmt.Errorf("kind %d: %w", i, err)
		}
		folded := fold(k.Name)
		if _, exists := r.byName[folded]; exists {
			return nil, fmt.Errorf("%w: duplicate kind %q", ErrInvalidKind, k.Name)
		}

		e := entry{
			kind:    k.clone(),
			matches: []string{folded},
		}
		for _, alias := range k.Aliases {
			e.matches = append(e.matches, fold(alias))
		}

		r.byName[folded] = len(r.entries)
		r.entries = append(r.entries, e)
	}

	return r, nil
}

// MustNew is like New but panics on an invalid kind.
func MustNew(kinds ...Kind) *Registry {
	r, err := New(kinds...)
	if err != nil {
		panic(err)
	}
	return r
}

func validateKind(k Kind) error {
	if strings.TrimSpace(k.Name) == "" {
		return fmt.Errorf("%w: blank name", ErrInvalidKind)
	}
	if strings.EqualFold(k.Name, LabelKind) {
		return fmt.Errorf("%w: %q is reserved for labels", ErrInvalidKind, k.Name)
	}
	if !typeable(k.Name) {
		return fmt.Errorf("%w: name %q contains whitespace, quotes or a colon", ErrInvalidKind, k.Name)
	}
	for _, alias := range k.Aliases {
		if alias == "" || !typeable(alias) {
			return fmt.Errorf("%w: alias %q of %q contains whitespace, quotes or a colon", ErrInvalidKind, alias, k.Name)
		}
	}
	return nil
}

// typeable reports whether s can appear as a kind in a query string.
func typeable(s string) bool {
	return !strings.ContainsFunc(s, unicode.IsSpace) && !strings.ContainsAny(s, `:"'`)
}

func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Resolve finds the canonical kind a user-supplied, possibly abbreviated or
// miscased kind denotes. A kind matches when the folded fragment is a
// substring of its folded name or of one of its folded aliases. The first
// matching kind in registry order wins.
func (r *Registry) Resolve(raw string) (Kind, bool) {
	fragment := fold(strings.TrimSpace(raw))
	if fragment == "" {
		return Kind{}, false
	}

	for _, e := range r.entries {
		for _, m := range e.matches {
			if strings.Contains(m, fragment) {
				return e.kind.clone(), true
			}
		}
	}
	return Kind{}, false
}

// Lookup returns the kind whose canonical name equals name, ignoring case.
func (r *Registry) Lookup(name string) (Kind, bool) {
	i, ok := r.byName[fold(name)]
	if !ok {
		return Kind{}, false
	}
	return r.entries[i].kind.clone(), true
}

// IsAttribute reports whether name is a canonical attribute kind.
func (r *Registry) IsAttribute(name string) bool {
	k, ok := r.Lookup(name)
	return ok && k.Attribute
}

// Kinds returns the registered kinds in order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.entries))
	for _, e := range r.entries {
		kinds = append(kinds, e.kind.clone())
	}
	return kinds
}

// Attributes returns the names of the attribute kinds in order.
func (r *Registry) Attributes() []string {
	var names []string
	for _, e := range r.entries {
		if e.kind.Attribute {
			names = append(names, e.kind.Name)
		}
	}
	return names
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	return len(r.entries)
}
