// Package scope provides enclosing-node navigation for detectors.
//
// # Nearest Enclosing Node
//
// [FindEnclosing] walks strictly upward from a node and returns the first
// ancestor of a requested kind. The innermost match wins:
//
//	list.forEach(s -> other.forEach(t -> list.add(t)));
//	//                                   ^ FindEnclosing(add, KindLambda) is "t -> ..."
//
// [FindEnclosingPath] additionally returns the found node's parent, which is
// how detectors reach the call a lambda is passed to:
//
//	lambda, call := scope.FindEnclosingPath(m, add, tree.KindLambda)
//	// call is the forEach invocation, or nil when the lambda is the root
//
// # Whole-Chain Scans
//
// [AnyEnclosing] checks a predicate against every ancestor. It does not stop
// at lambdas, classes or methods, so a static block arbitrarily far up still
// counts.
//
// # Static Initialization Context
//
// [InStaticInitializer] combines two independent conditions:
//
//	static { ... lambda ... }                       // static block at any depth
//	static final int SUM = ... lambda ...;          // static field initializer
//
// The second is checked on the nearest enclosing variable declaration only,
// not by scanning the chain.
package scope
