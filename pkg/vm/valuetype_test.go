package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinIsCommutative(t *testing.T) {
	a := ValueType{TagKnown: true, Tag: TagInt32, SubMax: true}
	b := ValueType{TagKnown: true, Tag: TagInt32, ValKnown: true, Word: 5}
	assert.Equal(t, Join(a, b), Join(b, a))
}

func TestJoinIsIdempotent(t *testing.T) {
	a := ValueType{TagKnown: true, Tag: TagString, SubMax: true}
	assert.Equal(t, a, Join(a, a))
}

func TestJoinWithAnyYieldsAny(t *testing.T) {
	a := ValueType{TagKnown: true, Tag: TagObject}
	assert.Equal(t, Any, Join(a, Any))
}

func TestJoinDropsMismatchedFields(t *testing.T) {
	a := ValueType{TagKnown: true, Tag: TagInt32}
	b := ValueType{TagKnown: true, Tag: TagString}
	got := Join(a, b)
	assert.False(t, got.TagKnown, "Join of two different known tags should drop TagKnown")
}

func TestIsSubtypeReflexive(t *testing.T) {
	a := ValueType{TagKnown: true, Tag: TagInt32, ValKnown: true, Word: 3}
	assert.True(t, IsSubtype(a, a))
}

func TestIsSubtypeOfAny(t *testing.T) {
	a := ValueType{TagKnown: true, Tag: TagInt32}
	assert.True(t, IsSubtype(a, Any), "every ValueType should be a subtype of Any")
	assert.False(t, IsSubtype(Any, a), "Any should not be a subtype of a more precise type")
}

func TestIsSubtypeAntisymmetricOnMismatch(t *testing.T) {
	a := ValueType{TagKnown: true, Tag: TagInt32}
	b := ValueType{TagKnown: true, Tag: TagString}
	assert.False(t, IsSubtype(a, b))
	assert.False(t, IsSubtype(b, a))
}

func TestPropTypeIsIdempotent(t *testing.T) {
	vm := newTestVM()
	obj := vm.NewObj(Null)
	vt := vm.ConstructFromValue(obj)
	once := vm.PropType(vt)
	twice := vm.PropType(once)
	assert.Equal(t, once, twice)
}

func TestPropTypeStripsShapeAndValAlways(t *testing.T) {
	vm := newTestVM()
	obj := vm.NewObj(Null)
	vt := vm.ConstructFromValue(obj)
	assert.True(t, vt.ShapeKnown, "constructing from an object value should populate ShapeKnown")

	pt := vm.PropType(vt)
	assert.False(t, pt.ShapeKnown, "PropType must always strip ShapeKnown")
	assert.False(t, pt.ValKnown, "PropType must always strip ValKnown")
	assert.False(t, pt.SubMax, "PropType must always strip SubMax")
}

func TestPropTypeRespectsShapeNoTagSpec(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShapeNoTagSpec = true
	vm := NewVM(cfg)

	vt := vm.ConstructFromValue(NewInt32(1))
	pt := vm.PropType(vt)
	assert.False(t, pt.TagKnown, "ShapeNoTagSpec should strip TagKnown from the projected type")
}

func TestPropTypeLiftsFptrFromClosureShape(t *testing.T) {
	vm := newTestVM()
	fn := &FunctionRef{Name: "f", Arity: 0}
	clos := vm.NewClos(Null, 0, fn)

	vt := vm.ConstructFromValue(clos)
	pt := vm.PropType(vt)
	assert.True(t, pt.FptrKnown, "PropType should lift function identity from a closure's __fptr__ shape entry")
	assert.Equal(t, fn, pt.Fptr)
}

func TestPropTypeRespectsShapeNoFptrSpec(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShapeNoFptrSpec = true
	vm := NewVM(cfg)
	fn := &FunctionRef{Name: "f", Arity: 0}
	clos := vm.NewClos(Null, 0, fn)

	vt := vm.ConstructFromValue(clos)
	pt := vm.PropType(vt)
	assert.False(t, pt.FptrKnown, "ShapeNoFptrSpec should suppress the fptr lift")
}

func TestConstructFromValueAtMostOnePayloadKnown(t *testing.T) {
	vm := newTestVM()
	obj := vm.NewObj(Null)
	vt := vm.ConstructFromValue(obj)

	known := 0
	if vt.ShapeKnown {
		known++
	}
	if vt.FptrKnown {
		known++
	}
	if vt.ValKnown {
		known++
	}
	assert.LessOrEqual(t, known, 1, "at most one of ShapeKnown/FptrKnown/ValKnown may be set")
}
