// Package checkers provides the detector interfaces and the helpers shared by
// the detector implementations in its subpackages.
//
// # Checker Overview
//
//	┌──────────────────┬────────────────────────────────────────────────────┐
//	│ Name             │ Detects                                            │
//	├──────────────────┼────────────────────────────────────────────────────┤
//	│ foreachmutation  │ mutating a collection inside its own forEach       │
//	│ unsyncmutation   │ mutating a non-concurrent collection from a        │
//	│                  │ parallel stream or another thread                  │
//	│ staticparallel   │ parallel or threaded lambdas run during class      │
//	│                  │ initialization                                     │
//	└──────────────────┴────────────────────────────────────────────────────┘
//
// A detector implements one or more of [CallChecker], [MemberRefChecker] and
// [LambdaChecker]. The runner in internal/checker walks every node once and
// hands it to the detectors registered for its kind. A Check method returns
// true when the node is a hazard; the runner turns that into a finding at the
// node carrying the detector's fixed [Checker.Message].
//
// # foreachmutation
//
//	list.forEach(s -> list.add(s));   // <- warning at list.add(s)
//	list.forEach(list::remove);       // <- warning at list::remove
//	list.forEach(other::add);         // OK: different receiver
//
// # unsyncmutation
//
//	items.parallelStream().forEach(out::add);              // <- warning
//	executor.submit(() -> out.add("x"));                   // <- warning
//	items.parallelStream().forEach(s -> {
//	    synchronized (out) { out.add(s); }                 // OK: synchronized
//	});
//	items.parallelStream().forEach(concurrentList::add);   // OK: concurrent type
//
// # staticparallel
//
//	static {
//	    new Thread(() -> init()).start();                  // <- warning at lambda
//	}
//	static final int SUM = IntStream.range(0, 100).parallel()
//	        .reduce((a, b) -> a + b).getAsInt();           // <- warning at lambda
//
// Detectors are pure: they read the [Context] and never log or mutate.
package checkers
