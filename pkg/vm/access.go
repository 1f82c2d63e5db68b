package vm

// GetProp implements the get(obj, name) operation of spec.md §4.4: locate a
// defining shape by name on obj's current shape, read its slot, and fall
// back to the prototype chain when the property is absent. obj must be a
// value pair whose tag passes IsObject — this is an asserted precondition
// (spec.md §7), not a runtime condition, since violating it is a
// programming error in the caller.
func (vm *VM) GetProp(obj Value, name string) Value {
	inst := instanceOf(obj)
	shape := vm.Shapes.ShapeAt(inst.shapeIdx)
	def := vm.Shapes.GetDefShape(shape, name)
	if def != nil {
		traceAccess("get %s hit slot=%d shape=%d", name, def.SlotIdx(), def.ShapeIdx())
		return GetSlotPair(inst, def.slotIdx)
	}

	proto := vm.GetProp(obj, protoSlotName)
	if isNull(proto) || !IsObject(proto.Tag) {
		return Undefined
	}
	return vm.GetProp(proto, name)
}

// SetProp implements the set(obj, name, value, def_attrs) operation of
// spec.md §4.4. defAttrs defaults to AttrDefault when omitted.
func (vm *VM) SetProp(obj Value, name string, value Value, defAttrs ...Attributes) bool {
	attrs := AttrDefault
	if len(defAttrs) > 0 {
		attrs = defAttrs[0]
	}

	vt := vm.PropType(vm.ConstructFromValue(value))
	inst := instanceOf(obj)
	shape := vm.Shapes.ShapeAt(inst.shapeIdx)
	def := vm.Shapes.GetDefShape(shape, name)

	if def == nil {
		if !shape.attrs.Has(AttrExtensible) {
			return false
		}
		if !vm.Config.NameAllowed(name) {
			return false
		}
		def = vm.Shapes.DefProp(shape, name, vt, attrs, nil)
		inst.shapeIdx = def.shapeIdx
	} else {
		if !def.attrs.Has(AttrWritable) {
			return false
		}
		if !IsSubtype(vt, def.typ) {
			if vm.isGlobalObject(inst) {
				vm.Stats.NumShapeFlipsGlobal++
			} else {
				vm.Stats.NumShapeFlips++
			}
			forked := vm.Shapes.DefProp(shape, name, vt, attrs, def)
			inst.shapeIdx = forked.shapeIdx
			def = vm.Shapes.GetDefShape(forked, name)
		}
	}

	ensureCapacity(vm.GC, inst, int(def.slotIdx))
	SetSlotPair(inst, def.slotIdx, value)
	traceAccess("set %s slot=%d shape=%d", name, def.SlotIdx(), inst.shapeIdx)
	return true
}

// DefConst implements def_const(obj, name, value, enumerable) of spec.md
// §4.4: refuses if name is already defined on obj, otherwise sets it with
// constant (non-writable, non-configurable) attributes.
func (vm *VM) DefConst(obj Value, name string, value Value, enumerable bool) bool {
	inst := instanceOf(obj)
	shape := vm.Shapes.ShapeAt(inst.shapeIdx)
	if vm.Shapes.GetDefShape(shape, name) != nil {
		return false
	}
	attrs := AttrConstNotEnum
	if enumerable {
		attrs = AttrConstEnum
	}
	return vm.SetProp(obj, name, value, attrs)
}

// SetPropAttrs implements set_prop_attrs(obj, def_shape, attrs) of spec.md
// §4.4: installs a redefinition of defShape on obj with new attributes
// (type and name unchanged) and updates obj's shape index.
func (vm *VM) SetPropAttrs(obj Value, defShape *ShapeNode, attrs Attributes) bool {
	inst := instanceOf(obj)
	shape := vm.Shapes.ShapeAt(inst.shapeIdx)
	forked := vm.Shapes.DefProp(shape, defShape.PropName(), defShape.typ, attrs, defShape)
	inst.shapeIdx = forked.shapeIdx
	return true
}

// DeleteProp tombstones name on obj (Open Question decision in DESIGN.md:
// deletion always forks rather than mutating a shared shape node in place).
// Returns true if the property did not exist or was successfully deleted;
// false if it exists and is not configurable.
func (vm *VM) DeleteProp(obj Value, name string) bool {
	inst := instanceOf(obj)
	shape := vm.Shapes.ShapeAt(inst.shapeIdx)
	forked, ok := vm.Shapes.Delete(shape, name)
	if !ok {
		return false
	}
	inst.shapeIdx = forked.shapeIdx
	return true
}

// GetShape returns obj's current shape node.
func (vm *VM) GetShape(obj Value) *ShapeNode {
	return vm.Shapes.ShapeAt(instanceOf(obj).shapeIdx)
}

// GetFunPtr returns the FunctionRef stored in a closure's __fptr__ slot, or
// nil if obj is not a closure or has none.
func (vm *VM) GetFunPtr(obj Value) *FunctionRef {
	if obj.Tag != TagClosure {
		return nil
	}
	v := vm.GetProp(obj, fptrSlotName)
	if v.Tag != TagFunPtr {
		return nil
	}
	return v.AsFunPtr()
}

// GetArrTbl returns the element table stored at ARRTBL_SLOT_IDX.
func (vm *VM) GetArrTbl(obj Value) Value {
	return GetSlotPair(instanceOf(obj), ArrTblSlotIdx)
}

// SetArrTbl overwrites the element table stored at ARRTBL_SLOT_IDX.
func (vm *VM) SetArrTbl(obj Value, tbl Value) {
	inst := instanceOf(obj)
	ensureCapacity(vm.GC, inst, ArrTblSlotIdx)
	SetSlotPair(inst, ArrTblSlotIdx, tbl)
}

// GetArrLen returns the length stored at ARRLEN_SLOT_IDX.
func (vm *VM) GetArrLen(obj Value) Value {
	return GetSlotPair(instanceOf(obj), ArrLenSlotIdx)
}

// SetArrLen overwrites the length stored at ARRLEN_SLOT_IDX.
func (vm *VM) SetArrLen(obj Value, length Value) {
	inst := instanceOf(obj)
	ensureCapacity(vm.GC, inst, ArrLenSlotIdx)
	SetSlotPair(inst, ArrLenSlotIdx, length)
}
