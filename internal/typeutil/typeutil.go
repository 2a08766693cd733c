package typeutil

import (
	"strings"

	"github.com/mpyw/concmut/internal/tree"
)

// ConcurrentNamespace is the reserved namespace of the collections that are
// safe for concurrent structural mutation by contract.
const ConcurrentNamespace = "java.util.concurrent"

// DefaultConcurrentNamespaces returns the namespaces used when none are configured.
func DefaultConcurrentNamespaces() []string {
	return []string{ConcurrentNamespace}
}

// DescendsFrom checks if the closure of t contains the type named qname.
func DescendsFrom(m tree.Model, t *tree.Type, qname string) bool {
	for _, c := range m.Closure(t) {
		if qualifiedName(m, c) == qname {
			return true
		}
	}

	return false
}

// DescendsFromAny checks if the closure of t contains any of the named types.
func DescendsFromAny(m tree.Model, t *tree.Type, qnames ...string) bool {
	for _, qname := range qnames {
		if DescendsFrom(m, t, qname) {
			return true
		}
	}

	return false
}

// IsExactly checks if t is the type named qname.
func IsExactly(m tree.Model, t *tree.Type, qname string) bool {
	return t != nil && qualifiedName(m, t) == qname
}

// IsInherentlyConcurrentSafe checks if any type in the closure of t is
// declared in one of the reserved namespaces (or a namespace nested under
// one). An unknown type is never safe.
func IsInherentlyConcurrentSafe(m tree.Model, t *tree.Type, namespaces []string) bool {
	if t == nil {
		return false
	}

	for _, c := range m.Closure(t) {
		ns := m.NamespaceOf(c)
		for _, reserved := range namespaces {
			if inNamespace(ns, reserved) {
				return true
			}
		}
	}

	return false
}

// inNamespace checks if ns equals reserved or is nested under it.
func inNamespace(ns, reserved string) bool {
	if reserved == "" {
		return false
	}
	return ns == reserved || strings.HasPrefix(ns, reserved+".")
}

func qualifiedName(m tree.Model, t *tree.Type) string {
	ns := m.NamespaceOf(t)
	if ns == "" {
		return t.Name
	}
	return ns + "." + t.Name
}
