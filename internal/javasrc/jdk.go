package javasrc

import (
	"strings"
	"sync"

	"github.com/mpyw/concmut/internal/tree"
)

// jdkType describes a library type. Method entries have the form
// "[static ]name[:Result]"; a Result of "$self" means the method returns its
// receiver's type. Field entries use the same form.
type jdkType struct {
	Name      string
	Interface bool
	Supers    []string
	Methods   []string
	Fields    []string
}

const (
	object     = "java.lang.Object"
	selfResult = "$self"
)

var jdkTypes = []jdkType{
	// java.lang
	{Name: object, Methods: []string{"equals", "hashCode", "toString:java.lang.String", "getClass", "wait", "notify", "notifyAll"}},
	{Name: "java.lang.Iterable", Interface: true, Methods: []string{"forEach", "iterator:java.util.Iterator", "spliterator"}},
	{Name: "java.lang.Runnable", Interface: true, Methods: []string{"run"}},
	{Name: "java.lang.AutoCloseable", Interface: true, Methods: []string{"close"}},
	{Name: "java.lang.CharSequence", Interface: true, Methods: []string{"length", "charAt", "chars:java.util.stream.IntStream"}},
	{Name: "java.lang.String", Supers: []string{object, "java.lang.CharSequence"}, Methods: []string{
		"length", "isEmpty", "isBlank", "charAt", "trim:java.lang.String", "strip:java.lang.String",
		"substring:java.lang.String", "toUpperCase:java.lang.String", "toLowerCase:java.lang.String",
		"concat:java.lang.String", "replace:java.lang.String", "repeat:java.lang.String",
		"split", "startsWith", "endsWith", "contains", "indexOf", "lines:java.util.stream.Stream",
		"static valueOf:java.lang.String", "static format:java.lang.String", "static join:java.lang.String",
	}},
	{Name: "java.lang.StringBuilder", Supers: []string{object, "java.lang.CharSequence"}, Methods: []string{"append:$self", "insert:$self", "reverse:$self", "toString:java.lang.String"}},
	{Name: "java.lang.Number", Methods: []string{"intValue", "longValue", "doubleValue"}},
	{Name: "java.lang.Integer", Supers: []string{"java.lang.Number"}, Methods: []string{"static valueOf:java.lang.Integer", "static parseInt", "static sum", "static max", "static min"}},
	{Name: "java.lang.Long", Supers: []string{"java.lang.Number"}, Methods: []string{"static valueOf:java.lang.Long", "static parseLong", "static sum"}},
	{Name: "java.lang.Math", Methods: []string{"static abs", "static max", "static min", "static sqrt", "static random"}},
	{Name: "java.lang.System", Methods: []string{"static currentTimeMillis", "static nanoTime", "static exit", "static getProperty:java.lang.String", "static arraycopy"},
		Fields: []string{"static out:java.io.PrintStream", "static err:java.io.PrintStream"}},
	{Name: "java.lang.Thread", Supers: []string{object, "java.lang.Runnable"}, Methods: []string{
		"start", "join", "run", "interrupt", "isAlive", "setDaemon", "setName", "getName:java.lang.String",
		"static currentThread:java.lang.Thread", "static sleep", "static onSpinWait",
		"static ofPlatform", "static ofVirtual", "static startVirtualThread:java.lang.Thread",
	}},
	{Name: "java.lang.ThreadLocal", Methods: []string{"get", "set", "remove", "static withInitial:java.lang.ThreadLocal"}},
	{Name: "java.lang.Enum"},
	{Name: "java.lang.Exception"},
	{Name: "java.lang.RuntimeException", Supers: []string{"java.lang.Exception"}},
	{Name: "java.lang.InterruptedException", Supers: []string{"java.lang.Exception"}},
	{Name: "java.io.PrintStream", Methods: []string{"println", "print", "printf:$self", "flush"}},

	// java.util collections
	{Name: "java.util.Iterator", Interface: true, Methods: []string{"hasNext", "next", "remove", "forEachRemaining"}},
	{Name: "java.util.Collection", Interface: true, Supers: []string{"java.lang.Iterable"}, Methods: []string{
		"add", "addAll", "clear", "remove", "removeAll", "retainAll", "removeIf",
		"contains", "containsAll", "isEmpty", "size", "toArray",
		"stream:java.util.stream.Stream", "parallelStream:java.util.stream.Stream",
	}},
	{Name: "java.util.List", Interface: true, Supers: []string{"java.util.Collection"}, Methods: []string{
		"get", "set", "indexOf", "lastIndexOf", "sort", "replaceAll", "subList:java.util.List",
		"listIterator:java.util.Iterator", "addFirst", "addLast", "removeFirst", "removeLast", "reversed:java.util.List",
		"static of:java.util.List", "static copyOf:java.util.List",
	}},
	{Name: "java.util.RandomAccess", Interface: true},
	{Name: "java.util.Set", Interface: true, Supers: []string{"java.util.Collection"}, Methods: []string{"static of:java.util.Set", "static copyOf:java.util.Set"}},
	{Name: "java.util.SortedSet", Interface: true, Supers: []string{"java.util.Set"}, Methods: []string{"first", "last", "headSet:java.util.SortedSet", "tailSet:java.util.SortedSet"}},
	{Name: "java.util.NavigableSet", Interface: true, Supers: []string{"java.util.SortedSet"}, Methods: []string{"pollFirst", "pollLast", "descendingSet:java.util.NavigableSet"}},
	{Name: "java.util.Queue", Interface: true, Supers: []string{"java.util.Collection"}, Methods: []string{"offer", "poll", "peek", "element"}},
	{Name: "java.util.Deque", Interface: true, Supers: []string{"java.util.Queue"}, Methods: []string{"push", "pop", "addFirst", "addLast", "offerFirst", "offerLast", "pollFirst", "pollLast", "peekFirst", "peekLast"}},
	{Name: "java.util.AbstractCollection", Supers: []string{object, "java.util.Collection"}},
	{Name: "java.util.AbstractList", Supers: []string{"java.util.AbstractCollection", "java.util.List"}},
	{Name: "java.util.AbstractSet", Supers: []string{"java.util.AbstractCollection", "java.util.Set"}},
	{Name: "java.util.AbstractQueue", Supers: []string{"java.util.AbstractCollection", "java.util.Queue"}},
	{Name: "java.util.ArrayList", Supers: []string{"java.util.AbstractList", "java.util.List", "java.util.RandomAccess"}, Methods: []string{"ensureCapacity", "trimToSize"}},
	{Name: "java.util.LinkedList", Supers: []string{"java.util.AbstractList", "java.util.List", "java.util.Deque"}},
	{Name: "java.util.Vector", Supers: []string{"java.util.AbstractList", "java.util.List", "java.util.RandomAccess"}, Methods: []string{"addElement", "removeElement"}},
	{Name: "java.util.Stack", Supers: []string{"java.util.Vector"}, Methods: []string{"push", "pop", "peek"}},
	{Name: "java.util.HashSet", Supers: []string{"java.util.AbstractSet", "java.util.Set"}},
	{Name: "java.util.LinkedHashSet", Supers: []string{"java.util.HashSet", "java.util.Set"}},
	{Name: "java.util.TreeSet", Supers: []string{"java.util.AbstractSet", "java.util.NavigableSet"}},
	{Name: "java.util.ArrayDeque", Supers: []string{"java.util.AbstractCollection", "java.util.Deque"}},
	{Name: "java.util.PriorityQueue", Supers: []string{"java.util.AbstractQueue"}},
	{Name: "java.util.Map", Interface: true, Methods: []string{
		"put", "get", "remove", "putAll", "clear", "putIfAbsent", "computeIfAbsent", "computeIfPresent", "compute", "merge",
		"containsKey", "containsValue", "getOrDefault", "size", "isEmpty", "forEach", "replaceAll",
		"keySet:java.util.Set", "values:java.util.Collection", "entrySet:java.util.Set",
		"static of:java.util.Map", "static copyOf:java.util.Map",
	}},
	{Name: "java.util.SortedMap", Interface: true, Supers: []string{"java.util.Map"}, Methods: []string{"firstKey", "lastKey"}},
	{Name: "java.util.NavigableMap", Interface: true, Supers: []string{"java.util.SortedMap"}, Methods: []string{"navigableKeySet:java.util.NavigableSet", "descendingMap:java.util.NavigableMap"}},
	{Name: "java.util.AbstractMap", Supers: []string{object, "java.util.Map"}},
	{Name: "java.util.HashMap", Supers: []string{"java.util.AbstractMap", "java.util.Map"}},
	{Name: "java.util.LinkedHashMap", Supers: []string{"java.util.HashMap", "java.util.Map"}},
	{Name: "java.util.TreeMap", Supers: []string{"java.util.AbstractMap", "java.util.NavigableMap"}},
	{Name: "java.util.Hashtable", Supers: []string{object, "java.util.Map"}},
	{Name: "java.util.Collections", Methods: []string{
		"static synchronizedList:java.util.List", "static synchronizedSet:java.util.Set", "static synchronizedMap:java.util.Map",
		"static synchronizedCollection:java.util.Collection",
		"static unmodifiableList:java.util.List", "static unmodifiableSet:java.util.Set", "static unmodifiableMap:java.util.Map",
		"static emptyList:java.util.List", "static emptySet:java.util.Set", "static emptyMap:java.util.Map",
		"static singletonList:java.util.List", "static singleton:java.util.Set", "static addAll", "static sort", "static shuffle", "static reverse",
	}},
	{Name: "java.util.Arrays", Methods: []string{"static asList:java.util.List", "static stream:java.util.stream.Stream", "static sort", "static fill", "static copyOf", "static toString:java.lang.String"}},
	{Name: "java.util.Objects", Methods: []string{"static requireNonNull", "static equals", "static hash", "static isNull", "static nonNull"}},
	{Name: "java.util.Optional", Methods: []string{"get", "isPresent", "isEmpty", "orElse", "orElseGet", "orElseThrow", "ifPresent", "map:java.util.Optional", "filter:$self", "static of:java.util.Optional", "static ofNullable:java.util.Optional", "static empty:java.util.Optional"}},
	{Name: "java.util.OptionalInt", Methods: []string{"getAsInt", "isPresent", "orElse", "ifPresent"}},
	{Name: "java.util.OptionalLong", Methods: []string{"getAsLong", "isPresent", "orElse"}},
	{Name: "java.util.OptionalDouble", Methods: []string{"getAsDouble", "isPresent", "orElse"}},
	{Name: "java.util.Random", Methods: []string{"nextInt", "nextLong", "nextDouble", "ints:java.util.stream.IntStream"}},

	// java.util.stream
	{Name: "java.util.stream.BaseStream", Interface: true, Supers: []string{"java.lang.AutoCloseable"}, Methods: []string{
		"parallel:$self", "sequential:$self", "unordered:$self", "onClose:$self", "isParallel", "iterator:java.util.Iterator", "close",
	}},
	{Name: "java.util.stream.Stream", Interface: true, Supers: []string{"java.util.stream.BaseStream"}, Methods: []string{
		"filter:$self", "distinct:$self", "sorted:$self", "peek:$self", "limit:$self", "skip:$self", "takeWhile:$self", "dropWhile:$self",
		"map:java.util.stream.Stream", "flatMap:java.util.stream.Stream", "mapMulti:java.util.stream.Stream",
		"mapToInt:java.util.stream.IntStream", "mapToLong:java.util.stream.LongStream", "mapToDouble:java.util.stream.DoubleStream",
		"flatMapToInt:java.util.stream.IntStream",
		"forEach", "forEachOrdered", "collect", "reduce:java.util.Optional", "count", "toArray", "toList:java.util.List",
		"anyMatch", "allMatch", "noneMatch", "findFirst:java.util.Optional", "findAny:java.util.Optional",
		"min:java.util.Optional", "max:java.util.Optional",
		"static of:java.util.stream.Stream", "static ofNullable:java.util.stream.Stream", "static empty:java.util.stream.Stream",
		"static iterate:java.util.stream.Stream", "static generate:java.util.stream.Stream", "static concat:java.util.stream.Stream",
	}},
	{Name: "java.util.stream.IntStream", Interface: true, Supers: []string{"java.util.stream.BaseStream"}, Methods: []string{
		"filter:$self", "map:$self", "distinct:$self", "sorted:$self", "peek:$self", "limit:$self", "skip:$self", "flatMap:$self",
		"mapToObj:java.util.stream.Stream", "boxed:java.util.stream.Stream", "mapToLong:java.util.stream.LongStream",
		"mapToDouble:java.util.stream.DoubleStream", "asLongStream:java.util.stream.LongStream", "asDoubleStream:java.util.stream.DoubleStream",
		"forEach", "forEachOrdered", "reduce:java.util.OptionalInt", "sum", "count", "average:java.util.OptionalDouble",
		"min:java.util.OptionalInt", "max:java.util.OptionalInt", "anyMatch", "allMatch", "noneMatch",
		"findFirst:java.util.OptionalInt", "findAny:java.util.OptionalInt", "toArray", "collect",
		"static range:java.util.stream.IntStream", "static rangeClosed:java.util.stream.IntStream", "static of:java.util.stream.IntStream",
		"static iterate:java.util.stream.IntStream", "static generate:java.util.stream.IntStream", "static empty:java.util.stream.IntStream",
	}},
	{Name: "java.util.stream.LongStream", Interface: true, Supers: []string{"java.util.stream.BaseStream"}, Methods: []string{
		"filter:$self", "map:$self", "distinct:$self", "sorted:$self", "limit:$self", "skip:$self",
		"mapToObj:java.util.stream.Stream", "boxed:java.util.stream.Stream",
		"forEach", "forEachOrdered", "reduce:java.util.OptionalLong", "sum", "count",
		"static range:java.util.stream.LongStream", "static rangeClosed:java.util.stream.LongStream", "static of:java.util.stream.LongStream",
	}},
	{Name: "java.util.stream.DoubleStream", Interface: true, Supers: []string{"java.util.stream.BaseStream"}, Methods: []string{
		"filter:$self", "map:$self", "sorted:$self", "limit:$self",
		"mapToObj:java.util.stream.Stream", "boxed:java.util.stream.Stream",
		"forEach", "forEachOrdered", "reduce:java.util.OptionalDouble", "sum", "count", "average:java.util.OptionalDouble",
		"static of:java.util.stream.DoubleStream",
	}},
	{Name: "java.util.stream.Collectors", Methods: []string{"static toList", "static toSet", "static toMap", "static joining", "static groupingBy", "static counting", "static partitioningBy"}},
	{Name: "java.util.stream.StreamSupport", Methods: []string{"static stream:java.util.stream.Stream"}},

	// java.util.concurrent
	{Name: "java.util.concurrent.Callable", Interface: true, Methods: []string{"call"}},
	{Name: "java.util.concurrent.Executor", Interface: true, Methods: []string{"execute"}},
	{Name: "java.util.concurrent.ExecutorService", Interface: true, Supers: []string{"java.util.concurrent.Executor", "java.lang.AutoCloseable"}, Methods: []string{
		"submit:java.util.concurrent.Future", "invokeAll", "invokeAny", "shutdown", "shutdownNow", "awaitTermination", "isShutdown", "isTerminated",
	}},
	{Name: "java.util.concurrent.ScheduledExecutorService", Interface: true, Supers: []string{"java.util.concurrent.ExecutorService"}, Methods: []string{"schedule", "scheduleAtFixedRate", "scheduleWithFixedDelay"}},
	{Name: "java.util.concurrent.AbstractExecutorService", Supers: []string{object, "java.util.concurrent.ExecutorService"}},
	{Name: "java.util.concurrent.ThreadPoolExecutor", Supers: []string{"java.util.concurrent.AbstractExecutorService"}},
	{Name: "java.util.concurrent.ForkJoinPool", Supers: []string{"java.util.concurrent.AbstractExecutorService"}, Methods: []string{"static commonPool:java.util.concurrent.ForkJoinPool", "invoke"}},
	{Name: "java.util.concurrent.Executors", Methods: []string{
		"static newFixedThreadPool:java.util.concurrent.ExecutorService",
		"static newCachedThreadPool:java.util.concurrent.ExecutorService",
		"static newSingleThreadExecutor:java.util.concurrent.ExecutorService",
		"static newWorkStealingPool:java.util.concurrent.ExecutorService",
		"static newVirtualThreadPerTaskExecutor:java.util.concurrent.ExecutorService",
		"static newScheduledThreadPool:java.util.concurrent.ScheduledExecutorService",
		"static newSingleThreadScheduledExecutor:java.util.concurrent.ScheduledExecutorService",
	}},
	{Name: "java.util.concurrent.Future", Interface: true, Methods: []string{"get", "cancel", "isDone", "isCancelled"}},
	{Name: "java.util.concurrent.CompletionStage", Interface: true},
	{Name: "java.util.concurrent.CompletableFuture", Supers: []string{object, "java.util.concurrent.Future", "java.util.concurrent.CompletionStage"}, Methods: []string{
		"static runAsync:java.util.concurrent.CompletableFuture", "static supplyAsync:java.util.concurrent.CompletableFuture",
		"static completedFuture:java.util.concurrent.CompletableFuture", "static allOf:java.util.concurrent.CompletableFuture",
		"thenApply:java.util.concurrent.CompletableFuture", "thenAccept:java.util.concurrent.CompletableFuture",
		"thenRun:java.util.concurrent.CompletableFuture", "thenCompose:java.util.concurrent.CompletableFuture",
		"join", "complete",
	}},
	{Name: "java.util.concurrent.CountDownLatch", Methods: []string{"countDown", "await", "getCount"}},
	{Name: "java.util.concurrent.ConcurrentMap", Interface: true, Supers: []string{"java.util.Map"}},
	{Name: "java.util.concurrent.ConcurrentHashMap", Supers: []string{"java.util.AbstractMap", "java.util.concurrent.ConcurrentMap"}, Methods: []string{
		"keySet:java.util.concurrent.ConcurrentHashMap.KeySetView", "static newKeySet:java.util.concurrent.ConcurrentHashMap.KeySetView",
	}},
	{Name: "java.util.concurrent.ConcurrentHashMap.KeySetView", Supers: []string{object, "java.util.Set"}},
	{Name: "java.util.concurrent.ConcurrentSkipListMap", Supers: []string{"java.util.AbstractMap", "java.util.concurrent.ConcurrentMap", "java.util.NavigableMap"}},
	{Name: "java.util.concurrent.CopyOnWriteArrayList", Supers: []string{object, "java.util.List", "java.util.RandomAccess"}, Methods: []string{"addIfAbsent", "addAllAbsent"}},
	{Name: "java.util.concurrent.CopyOnWriteArraySet", Supers: []string{"java.util.AbstractSet", "java.util.Set"}},
	{Name: "java.util.concurrent.ConcurrentSkipListSet", Supers: []string{"java.util.AbstractSet", "java.util.NavigableSet"}},
	{Name: "java.util.concurrent.ConcurrentLinkedQueue", Supers: []string{"java.util.AbstractQueue", "java.util.Queue"}},
	{Name: "java.util.concurrent.ConcurrentLinkedDeque", Supers: []string{"java.util.AbstractCollection", "java.util.Deque"}},
	{Name: "java.util.concurrent.BlockingQueue", Interface: true, Supers: []string{"java.util.Queue"}, Methods: []string{"put", "take", "drainTo"}},
	{Name: "java.util.concurrent.BlockingDeque", Interface: true, Supers: []string{"java.util.concurrent.BlockingQueue", "java.util.Deque"}},
	{Name: "java.util.concurrent.LinkedBlockingQueue", Supers: []string{"java.util.AbstractQueue", "java.util.concurrent.BlockingQueue"}},
	{Name: "java.util.concurrent.ArrayBlockingQueue", Supers: []string{"java.util.AbstractQueue", "java.util.concurrent.BlockingQueue"}},
	{Name: "java.util.concurrent.PriorityBlockingQueue", Supers: []string{"java.util.AbstractQueue", "java.util.concurrent.BlockingQueue"}},
	{Name: "java.util.concurrent.LinkedBlockingDeque", Supers: []string{"java.util.AbstractQueue", "java.util.concurrent.BlockingDeque"}},
	{Name: "java.util.concurrent.atomic.AtomicInteger", Supers: []string{"java.lang.Number"}, Methods: []string{"get", "set", "incrementAndGet", "getAndIncrement", "addAndGet", "compareAndSet"}},
	{Name: "java.util.concurrent.atomic.AtomicLong", Supers: []string{"java.lang.Number"}, Methods: []string{"get", "set", "incrementAndGet", "getAndIncrement", "addAndGet"}},
	{Name: "java.util.concurrent.locks.ReentrantLock", Methods: []string{"lock", "unlock", "tryLock"}},

	// UI event dispatch
	{Name: "java.awt.EventQueue", Methods: []string{"static invokeLater", "static invokeAndWait", "static isDispatchThread"}},
	{Name: "javax.swing.SwingUtilities", Methods: []string{"static invokeLater", "static invokeAndWait", "static isEventDispatchThread"}},
}

var (
	jdkOnce     sync.Once
	jdkUniverse *tree.Universe
)

// JDK returns the shared model of the library types above. It is built once
// and never modified afterwards; per-unit universes use it as their parent.
func JDK() *tree.Universe {
	jdkOnce.Do(func() {
		jdkUniverse = buildJDK(jdkTypes)
	})
	return jdkUniverse
}

func buildJDK(specs []jdkType) *tree.Universe {
	u := tree.NewUniverse(nil)

	for _, spec := range specs {
		ns, name := tree.SplitQualified(spec.Name)
		u.Define(ns, name).Interface = spec.Interface
	}

	root := u.Lookup(object)
	for _, spec := range specs {
		t := u.Lookup(spec.Name)
		for _, s := range spec.Supers {
			if st := u.Lookup(s); st != nil {
				t.Supers = append(t.Supers, st)
			}
		}
		if len(t.Supers) == 0 && t != root {
			t.Supers = []*tree.Type{root}
		}

		for _, m := range spec.Methods {
			static, name, result := parseMember(m)
			rule := tree.ReturnsDeclared
			var rt *tree.Type
			if result == selfResult {
				rule = tree.ReturnsSelf
			} else if result != "" {
				rt = u.Lookup(result)
			}
			t.DeclareMethod(name, static, rt, rule)
		}
		for _, f := range spec.Fields {
			static, name, result := parseMember(f)
			t.DeclareField(name, static, u.Lookup(result))
		}
	}

	return u
}

func parseMember(s string) (static bool, name, result string) {
	if rest, ok := strings.CutPrefix(s, "static "); ok {
		static = true
		s = rest
	}
	name, result, _ = strings.Cut(s, ":")
	return static, name, result
}
