package query

// Link is a hypermedia control: a related action or resource, where to find
// it, and the HTTP method to invoke it with. Links are immutable values.
type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// NewLink returns a link with the given target, relation name and method.
func NewLink(href, rel, method string) Link {
	return Link{Href: href, Rel: rel, Method: method}
}
