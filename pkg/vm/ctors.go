package vm

// FunctionRef is the function identity a FUNPTR value pair and a closure's
// __fptr__ slot carry. It is opaque to this core beyond pointer identity and
// a debug name — the compiler and interpreter attach whatever compiled
// representation they need on top, the same way the teacher's
// FunctionObject carries a bytecode chunk this core has no business knowing
// about.
type FunctionRef struct {
	Name  string
	Arity int
}

// FuncRefSet is the append-only function reference set the GC must keep
// alive (spec.md §5): analogous in shape and lifetime discipline to the
// shape registry, just keyed by nothing more than insertion order.
type FuncRefSet struct {
	refs []*FunctionRef
}

// NewFuncRefSet constructs an empty function reference set.
func NewFuncRefSet() *FuncRefSet { return &FuncRefSet{} }

// Register appends fn to the set.
func (s *FuncRefSet) Register(fn *FunctionRef) { s.refs = append(s.refs, fn) }

// Len reports how many function references have ever been registered.
func (s *FuncRefSet) Len() int { return len(s.refs) }

// NewObj allocates an OBJECT with capacity >= MinCap, sets its shape to the
// empty-shape root, and def_consts __proto__ (spec.md §4.5). cap defaults to
// MinCap if omitted.
func (vm *VM) NewObj(proto Value, cap ...int) Value {
	c := vm.Config.MinCap
	if c <= 0 {
		c = MinCap
	}
	if len(cap) > 0 {
		c = cap[0]
	}
	inst := Alloc(ObjectKind, c)
	inst.shapeIdx = vm.Shapes.Root().shapeIdx
	v := valueFromInstance(TagObject, inst)
	vm.DefConst(v, protoSlotName, proto, false)
	return v
}

// NewClos allocates a CLOSURE with MinCap inline slots and numCells
// captured cells, sets the empty shape, registers fun in the VM's function
// reference set, and def_consts __proto__ and __fptr__ (the latter carrying
// fun's identity as a tagged FUNPTR) (spec.md §4.5).
func (vm *VM) NewClos(proto Value, numCells int, fun *FunctionRef) Value {
	c := vm.Config.MinCap
	if c <= 0 {
		c = MinCap
	}
	inst := Alloc(ClosureKind, c, numCells)
	inst.shapeIdx = vm.Shapes.Root().shapeIdx
	v := valueFromInstance(TagClosure, inst)
	vm.Funcs.Register(fun)
	vm.DefConst(v, protoSlotName, proto, false)
	vm.DefConst(v, fptrSlotName, NewFunPtr(fun), false)
	return v
}
