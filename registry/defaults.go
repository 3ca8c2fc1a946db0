package registry

// DefaultKinds is the document search vocabulary: extracted entities and
// document metadata first, exact-match attributes last.
var DefaultKinds = []Kind{
	{Name: "person", Aliases: []string{"people", "who"}},
	{Name: "organization", Aliases: []string{"org", "company"}},
	{Name: "place", Aliases: []string{"where", "location"}},
	{Name: "city"},
	{Name: "state"},
	{Name: "country"},
	{Name: "term"},
	{Name: "email"},
	{Name: "phone"},
	{Name: "title", Aliases: []string{"headline"}},
	{Name: "source", Aliases: []string{"src"}},
	{Name: "description", Aliases: []string{"summary"}},
	{Name: "account", Attribute: true},
	{Name: "group", Attribute: true},
	{Name: "access", Attribute: true},
	{Name: "project", Attribute: true},
}

// Default returns a registry of DefaultKinds.
func Default() *Registry {
	return MustNew(DefaultKinds...)
}
