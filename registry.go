package taskpilot

import "fmt"

// Registry is the fixed mapping from tool name to executable action. It is
// built once at process start and read-only thereafter, so concurrent
// queries may share it without synchronization.
//
// Lookups are case-sensitive and exact-match only; no fuzzy or substring
// matching is performed.
type Registry struct {
	tools map[string]Tool
	specs map[string]ToolSpec
	order []string
}

// NewRegistry constructs a registry from the provided tools. Nil tools,
// empty names, and duplicate names are rejected.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]Tool, len(tools)),
		specs: make(map[string]ToolSpec, len(tools)),
	}
	for _, tool := range tools {
		if tool == nil {
			return nil, fmt.Errorf("registry: tool is nil")
		}
		spec := tool.Spec()
		if spec.Name == "" {
			return nil, fmt.Errorf("registry: tool name is empty")
		}
		if _, exists := r.tools[spec.Name]; exists {
			return nil, fmt.Errorf("registry: tool %s already registered", spec.Name)
		}
		r.tools[spec.Name] = tool
		r.specs[spec.Name] = spec
		r.order = append(r.order, spec.Name)
	}
	return r, nil
}

// Lookup returns the tool and its specification if the exact name is
// registered.
func (r *Registry) Lookup(name string) (Tool, ToolSpec, bool) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, ToolSpec{}, false
	}
	return tool, r.specs[name], true
}

// Specs returns the tool specifications in registration order.
func (r *Registry) Specs() []ToolSpec {
	specs := make([]ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.specs[name])
	}
	return specs
}

// Len reports the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }
