// Package registry provides API registration for the concurrency detectors.
package registry

import (
	"slices"

	"github.com/mpyw/concmut/internal/matcher"
	"github.com/mpyw/concmut/internal/typeutil"
)

// Registry holds registered APIs by role and the reserved concurrent
// namespaces. Populate it before analysis; it is read-only afterwards and
// may be shared between goroutines.
type Registry struct {
	apis       map[Role][]API
	matchers   map[Role]matcher.Matcher
	namespaces []string
}

// New creates a new empty registry using the default concurrent namespaces.
func New() *Registry {
	return &Registry{
		apis:       make(map[Role][]API),
		matchers:   make(map[Role]matcher.Matcher),
		namespaces: typeutil.DefaultConcurrentNamespaces(),
	}
}

// Register adds APIs under role.
func (r *Registry) Register(role Role, apis ...API) {
	r.apis[role] = append(r.apis[role], apis...)
	delete(r.matchers, role)
}

// APIs returns the APIs registered under role.
func (r *Registry) APIs(role Role) []API {
	return slices.Clone(r.apis[role])
}

// Matcher returns a predicate matching any API registered under role.
// The predicate is built once per role and cached.
func (r *Registry) Matcher(role Role) matcher.Matcher {
	if m, ok := r.matchers[role]; ok {
		return m
	}

	apis := r.apis[role]
	ms := make([]matcher.Matcher, len(apis))
	for i, api := range apis {
		ms[i] = api.Matcher()
	}
	m := matcher.AnyOf(ms...)
	r.matchers[role] = m

	return m
}

// Freeze builds the predicates for every role so later Matcher calls only
// read. Call it before sharing the registry between goroutines.
func (r *Registry) Freeze() *Registry {
	for role := range roleNames {
		r.Matcher(role)
	}
	return r
}

// MutationNames returns the method names registered as mutations.
func (r *Registry) MutationNames() []string {
	var names []string
	for _, api := range r.apis[RoleMutation] {
		if api.Spec.FuncName != "" && !slices.Contains(names, api.Spec.FuncName) {
			names = append(names, api.Spec.FuncName)
		}
	}
	return names
}

// SetConcurrentNamespaces replaces the reserved concurrent namespaces.
// An empty list restores the default.
func (r *Registry) SetConcurrentNamespaces(namespaces []string) {
	if len(namespaces) == 0 {
		r.namespaces = typeutil.DefaultConcurrentNamespaces()
		return
	}
	r.namespaces = slices.Clone(namespaces)
}

// ConcurrentNamespaces returns the reserved concurrent namespaces.
func (r *Registry) ConcurrentNamespaces() []string {
	return slices.Clone(r.namespaces)
}
