package registry

import (
	"github.com/mpyw/concmut/internal/funcspec"
	"github.com/mpyw/concmut/internal/matcher"
)

// APIKind represents how an API is invoked.
type APIKind int

const (
	// KindMethod represents an instance call on a descendant of the type: recv.Method()
	KindMethod APIKind = iota
	// KindStatic represents a static call on exactly the type: Type.Method()
	KindStatic
	// KindConstructor represents an object construction of exactly the type: new Type()
	KindConstructor
	// KindAny accepts KindMethod or KindStatic. Used for user-supplied specs,
	// whose invocation form is not known up front.
	KindAny
)

func (k APIKind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindStatic:
		return "static"
	case KindConstructor:
		return "constructor"
	case KindAny:
		return "any"
	}
	return "unknown"
}

// Role is what a registered API means to the detectors.
type Role int

const (
	// RoleMutation APIs structurally modify a collection.
	RoleMutation Role = iota
	// RoleTraversal APIs iterate a collection on the calling thread.
	RoleTraversal
	// RoleStreamStage APIs are stages of a stream pipeline.
	RoleStreamStage
	// RoleParallelCollection APIs turn a collection into a parallel pipeline.
	RoleParallelCollection
	// RoleParallelStage APIs switch an existing pipeline to parallel.
	RoleParallelStage
	// RoleThreadCreation APIs run a callback on another thread.
	RoleThreadCreation
)

var roleNames = map[Role]string{
	RoleMutation:           "mutation",
	RoleTraversal:          "traversal",
	RoleStreamStage:        "stream-stage",
	RoleParallelCollection: "parallel-collection",
	RoleParallelStage:      "parallel-stage",
	RoleThreadCreation:     "thread-creation",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// API defines a method, static method or constructor the detectors care about.
type API struct {
	// Spec names the type and method. An empty FuncName matches any method.
	Spec funcspec.Spec

	// Kind is KindMethod, KindStatic, KindConstructor or KindAny.
	Kind APIKind
}

// Method creates an instance-method API from "pkg.Type.method".
func Method(spec string) API {
	return API{Spec: funcspec.Parse(spec), Kind: KindMethod}
}

// Static creates a static-method API from "pkg.Type.method".
func Static(spec string) API {
	return API{Spec: funcspec.Parse(spec), Kind: KindStatic}
}

// Constructor creates a constructor API for the qualified type name.
func Constructor(qname string) API {
	spec := funcspec.ForType(qname)
	spec.FuncName = funcspec.ConstructorName
	return API{Spec: spec, Kind: KindConstructor}
}

// AnyMethodOf creates an API matching every instance method of the type.
func AnyMethodOf(qname string) API {
	return API{Spec: funcspec.ForType(qname), Kind: KindMethod}
}

// FromSpec creates an API from a user-supplied spec. Constructor specs
// ("pkg.Type.new") become KindConstructor, everything else KindAny.
func FromSpec(spec funcspec.Spec) API {
	if spec.IsConstructor() {
		return API{Spec: spec, Kind: KindConstructor}
	}
	return API{Spec: spec, Kind: KindAny}
}

// FullName returns a human-readable name for the API.
// For methods: "ExecutorService.submit"
// For constructors: "new Thread"
func (a API) FullName() string {
	switch {
	case a.Kind == KindConstructor:
		return "new " + a.Spec.TypeName
	case a.Spec.FuncName == "":
		return a.Spec.TypeName + ".*"
	}
	return a.Spec.FullName()
}

// Matcher builds the predicate for this API.
func (a API) Matcher() matcher.Matcher {
	typ := a.Spec.TypeQualifiedName()

	switch a.Kind {
	case KindConstructor:
		return matcher.Constructor().ForClass(typ)
	case KindStatic:
		return a.named(matcher.StaticMethod().OnClass(typ))
	case KindAny:
		return matcher.AnyOf(
			a.named(matcher.InstanceMethod().OnDescendantOf(typ)),
			a.named(matcher.StaticMethod().OnClass(typ)),
		)
	}

	return a.named(matcher.InstanceMethod().OnDescendantOf(typ))
}

func (a API) named(m matcher.MethodMatcher) matcher.MethodMatcher {
	if a.Spec.FuncName == "" {
		return m
	}
	return m.Named(a.Spec.FuncName)
}
