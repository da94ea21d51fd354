package resolver

import "github.com/t2-labs/create-block/internal/blocktemplate"

// Entry pairs a built-in template name with its definition.
type Entry struct {
	Name       string
	Definition blocktemplate.Definition
}

// Registry is an immutable, ordered set of named template definitions.
type Registry struct {
	names []string
	defs  map[string]blocktemplate.Definition
}

// NewRegistry builds a registry from entries. Later duplicates replace
// earlier ones but keep the first position.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{defs: make(map[string]blocktemplate.Definition, len(entries))}
	for _, e := range entries {
		if _, ok := r.defs[e.Name]; !ok {
			r.names = append(r.names, e.Name)
		}
		r.defs[e.Name] = cloneDefinition(e.Definition)
	}
	return r
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Lookup returns a copy of the named definition.
func (r *Registry) Lookup(name string) (*blocktemplate.Definition, bool) {
	if r == nil {
		return nil, false
	}
	def, ok := r.defs[name]
	if !ok {
		return nil, false
	}
	c := cloneDefinition(def)
	return &c, true
}

func cloneDefinition(d blocktemplate.Definition) blocktemplate.Definition {
	if d.DefaultValues != nil {
		defaults := make(map[string]string, len(d.DefaultValues))
		for k, v := range d.DefaultValues {
			defaults[k] = v
		}
		d.DefaultValues = defaults
	}
	return d
}
