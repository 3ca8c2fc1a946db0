package docsearch

import (
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/kyle-williams-1/docsearch/language"
	"github.com/kyle-williams-1/docsearch/query"
	"github.com/kyle-williams-1/docsearch/registry"
)

// classifier accumulates the labels, fields and attributes of one parse.
type classifier struct {
	kinds  *registry.Registry
	logger log.Logger

	fields     []query.Field
	attributes []query.Field
	labels     []string
}

func (c *classifier) classify(tok language.FieldToken) {
	value := strings.TrimSpace(tok.Value)
	if value == "" {
		level.Debug(c.logger).Log("msg", "dropping field with blank value", "token", tok.Raw)
		return
	}

	if strings.EqualFold(tok.Kind, registry.LabelKind) {
		c.labels = append(c.labels, value)
		return
	}

	field := c.field(tok.Kind, value)
	if field.IsAttribute() {
		c.attributes = append(c.attributes, field)
	} else {
		c.fields = append(c.fields, field)
	}
}

// field resolves kind against the registry; an unknown kind is kept as typed
// and treated as a plain field.
func (c *classifier) field(kind, value string) query.Field {
	canonical, ok := c.kinds.Resolve(kind)
	if !ok {
		level.Debug(c.logger).Log("msg", "unresolved field kind", "kind", kind)
		return query.NewField(kind, value, false)
	}
	return query.NewField(canonical.Name, value, canonical.Attribute)
}
