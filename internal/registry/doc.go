// Package registry provides the API tables the detectors match against.
//
// # Overview
//
// Every call shape a detector cares about (collection mutation, forEach
// traversal, stream stages, parallel-stream sources, thread creation) is an
// [API] registered under a [Role]. Detectors ask the registry for the role's
// predicate instead of hard-coding matchers, so users can extend the tables
// with -thread-creators and -parallel-sources.
//
// # Registry Structure
//
//	type Registry struct {
//	    apis       map[Role][]API
//	    namespaces []string        // reserved concurrent namespaces
//	}
//
//	type API struct {
//	    Spec funcspec.Spec  // java.util.Collection.add
//	    Kind APIKind        // KindMethod, KindStatic, KindConstructor, KindAny
//	}
//
// # Registering APIs
//
//	reg := registry.New()
//	reg.Register(registry.RoleThreadCreation,
//	    registry.Constructor("java.lang.Thread"),
//	    registry.Method("java.util.concurrent.ExecutorService.submit"),
//	    registry.Static("java.awt.EventQueue.invokeLater"),
//	)
//
// The built-in tables live in internal/checker/apis.go.
//
// # Matching
//
//	if reg.Matcher(registry.RoleThreadCreation).Matches(node, state) {
//	    // node creates a thread or submits a task
//	}
//
// Predicates are built lazily per role; call [Registry.Freeze] once all APIs
// are registered and before the registry is shared between goroutines.
//
// # Kinds
//
//	KindMethod       receiver type descends from the API type
//	KindStatic       static method declared by exactly the API type
//	KindConstructor  constructed type is exactly the API type
//	KindAny          KindMethod or KindStatic (user-supplied specs)
package registry
