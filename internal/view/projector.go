// Package view restricts resources to the fields allowed by a named scope
// before they are serialized.
package view

type Scope string

const PostRead Scope = "post_read"

// Projectable is implemented by entities that can be projected. Attributes
// returns every field; the projector decides what is visible.
type Projectable interface {
	Kind() string
	Attributes() map[string]any
}

// Scopes maps a scope to the allowed fields of each entity kind.
type Scopes map[Scope]map[string][]string

var DefaultScopes = Scopes{
	PostRead: {
		"post": {"id", "title", "content", "created_at", "owner"},
		"user": {"id", "first_name", "last_name"},
	},
}

type Projector struct {
	scopes Scopes
}

func NewProjector(scopes Scopes) *Projector {
	return &Projector{scopes: scopes}
}

// Project returns the external representation of value under scope. Nested
// projectables are projected through the same scope. Slices keep their order.
func (p *Projector) Project(value any, scope Scope) any {
	switch v := value.(type) {
	case nil:
		return nil
	case Projectable:
		return p.projectOne(v, scope)
	case []Projectable:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, p.Project(item, scope))
		}
		return out
	default:
		return v
	}
}

func (p *Projector) projectOne(entity Projectable, scope Scope) map[string]any {
	out := map[string]any{}
	attrs := entity.Attributes()

	for _, field := range p.scopes[scope][entity.Kind()] {
		value, ok := attrs[field]
		if !ok {
			continue
		}
		out[field] = p.Project(value, scope)
	}

	return out
}

// ProjectAll is a typed helper for collections of a single entity type.
func ProjectAll[T Projectable](p *Projector, items []T, scope Scope) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, p.Project(item, scope))
	}
	return out
}
