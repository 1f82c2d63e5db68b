package vm

import "fmt"

// ValueType is a lattice element describing partial knowledge of a Value,
// used by the surrounding compiler for specialization (spec.md §4.1). Every
// field is comparable, so a ValueType is itself comparable and usable as a
// map key without a custom hash function — the whole record packs the way
// Design Note §9 describes (one pointer-or-word payload plus a handful of
// bits), just expressed as named comparable fields rather than a packed
// bitfield, which is the natural Go rendering of the same layout.
type ValueType struct {
	TagKnown bool
	Tag      Tag

	ShapeKnown bool
	Shape      *ShapeNode

	FptrKnown bool
	Fptr      *FunctionRef

	ValKnown bool
	Word     uint64

	SubMax bool
}

// Any is ⊤: the all-unknown lattice element.
var Any = ValueType{}

// ConstructFromValue builds the ValueType describing a concrete Value.
// Invariant: at most one of ShapeKnown, FptrKnown, ValKnown is ever set,
// since construction picks exactly one branch below.
func (vm *VM) ConstructFromValue(v Value) ValueType {
	vt := ValueType{TagKnown: true, Tag: v.Tag}
	switch {
	case IsObject(v.Tag):
		inst := instanceOf(v)
		vt.ShapeKnown = true
		vt.Shape = vm.Shapes.ShapeAt(inst.shapeIdx)
	case v.Tag == TagFunPtr:
		vt.FptrKnown = true
		vt.Fptr = v.AsFunPtr()
	case v.Tag == TagInt32:
		vt.ValKnown = true
		vt.Word = v.Bits
	}
	return vt
}

// Join computes the pointwise meet of "known" predicates under equality: a
// field is known in the result iff it is known in both operands and the
// underlying payloads are equal. SubMax is the logical AND of both operands.
func Join(a, b ValueType) ValueType {
	var out ValueType
	if a.TagKnown && b.TagKnown && a.Tag == b.Tag {
		out.TagKnown = true
		out.Tag = a.Tag
	}
	if a.ShapeKnown && b.ShapeKnown && a.Shape == b.Shape {
		out.ShapeKnown = true
		out.Shape = a.Shape
	}
	if a.FptrKnown && b.FptrKnown && a.Fptr == b.Fptr {
		out.FptrKnown = true
		out.Fptr = a.Fptr
	}
	if a.ValKnown && b.ValKnown && a.Word == b.Word {
		out.ValKnown = true
		out.Word = a.Word
	}
	out.SubMax = a.SubMax && b.SubMax
	return out
}

// IsSubtype reports whether a refines b: a is at least as precise as b.
func IsSubtype(a, b ValueType) bool {
	return Join(a, b) == b
}

// String renders only the known components, for diagnostics and golden
// shape-tree dumps — an unconstrained ValueType prints as "any".
func (t ValueType) String() string {
	if t == Any {
		return "any"
	}
	s := ""
	if t.TagKnown {
		s += "tag=" + t.Tag.String() + " "
	}
	if t.ShapeKnown {
		idx := uint32(0)
		if t.Shape != nil {
			idx = t.Shape.ShapeIdx()
		}
		s += fmt.Sprintf("shape=#%d ", idx)
	}
	if t.FptrKnown {
		name := "<nil>"
		if t.Fptr != nil {
			name = t.Fptr.Name
		}
		s += "fptr=" + name + " "
	}
	if t.ValKnown {
		s += fmt.Sprintf("val=%d ", t.Word)
	}
	if t.SubMax {
		s += "submax "
	}
	if s == "" {
		return "any"
	}
	return s[:len(s)-1]
}

// PropType projects the type recorded in a shape node from a value's full
// ValueType. It always strips ShapeKnown, ValKnown, and SubMax; the two
// Config toggles narrow it further. When the input is a closure with a
// known shape and shape_nofptrspec is not set, the function identity is
// lifted from the closure's __fptr__ shape entry into Fptr, preserving
// callsite specialization across shape transitions while keeping shapes
// independent of particular closure instances.
func (vm *VM) PropType(t ValueType) ValueType {
	out := t
	out.ShapeKnown = false
	out.Shape = nil
	out.ValKnown = false
	out.Word = 0
	out.SubMax = false

	if vm.Config.ShapeNoTagSpec {
		out.TagKnown = false
		out.Tag = TagUnset
	}

	if vm.Config.ShapeNoFptrSpec {
		out.FptrKnown = false
		out.Fptr = nil
		return out
	}

	if t.TagKnown && t.Tag == TagClosure && t.ShapeKnown && t.Shape != nil {
		if fptrDef := vm.Shapes.GetDefShape(t.Shape, fptrSlotName); fptrDef != nil && fptrDef.typ.FptrKnown {
			out.FptrKnown = true
			out.Fptr = fptrDef.typ.Fptr
		}
	}
	return out
}
