package checker

import (
	"github.com/mpyw/concmut/internal/funcspec"
	"github.com/mpyw/concmut/internal/registry"
)

const (
	collection = "java.util.Collection"
	baseStream = "java.util.stream.BaseStream"
)

// RegisterDefaultAPIs registers the built-in JDK APIs with the registry.
func RegisterDefaultAPIs(reg *registry.Registry) {
	// Structural mutations of any collection
	reg.Register(registry.RoleMutation,
		registry.Method(collection+".add"),
		registry.Method(collection+".addAll"),
		registry.Method(collection+".clear"),
		registry.Method(collection+".remove"),
		registry.Method(collection+".removeAll"),
		registry.Method(collection+".retainAll"),
	)

	// Single-threaded traversal with a callback
	reg.Register(registry.RoleTraversal,
		registry.Method(collection+".forEach"),
	)

	// Every method of a stream is a pipeline stage
	reg.Register(registry.RoleStreamStage,
		registry.AnyMethodOf(baseStream),
	)

	reg.Register(registry.RoleParallelCollection,
		registry.Method(collection+".parallelStream"),
	)

	reg.Register(registry.RoleParallelStage,
		registry.Method(baseStream+".parallel"),
	)

	// Callbacks handed to these run on another thread
	reg.Register(registry.RoleThreadCreation,
		registry.Constructor("java.lang.Thread"),
		registry.Method("java.util.concurrent.ExecutorService.submit"),
		registry.Method("java.util.concurrent.Executor.execute"),
		registry.Static("java.awt.EventQueue.invokeLater"),
		registry.Static("java.awt.EventQueue.invokeAndWait"),
		registry.Static("javax.swing.SwingUtilities.invokeLater"),
		registry.Static("javax.swing.SwingUtilities.invokeAndWait"),
		registry.Static("java.util.concurrent.CompletableFuture.runAsync"),
		registry.Static("java.util.concurrent.CompletableFuture.supplyAsync"),
	)
}

// RegisterUserAPIs registers user-supplied thread creators and parallel
// sources on top of the defaults.
func RegisterUserAPIs(reg *registry.Registry, threadCreators, parallelSources []funcspec.Spec) {
	for _, spec := range threadCreators {
		reg.Register(registry.RoleThreadCreation, registry.FromSpec(spec))
	}
	for _, spec := range parallelSources {
		reg.Register(registry.RoleParallelCollection, registry.FromSpec(spec))
	}
}
