package vm

// Stats holds the counters the core must increment (spec.md §6): shape
// allocations, and redefinitions triggered by a type mismatch on write
// ("shape flips"), tracked separately for the global object since frequent
// flips there are a stronger specialization-quality signal than anywhere
// else in a typical program. No synchronization is needed: the execution
// model is strictly single-threaded cooperative (spec.md §5).
type Stats struct {
	NumShapes           uint64
	NumShapeFlips       uint64
	NumShapeFlipsGlobal uint64
}
