package vm

import "fmt"

// ShapeRegistry is the process-wide (here: per-VM) interned forest of shape
// nodes with their transition and lookup caches, plus the dense ordered
// vector every shape is registered into by shapeIdx (spec.md §3 invariant 3).
// It is append-only: shapes are allocated, inserted at the next index, and
// never removed or reindexed, which is the entire safety story of the
// single-threaded model (spec.md §5).
type ShapeRegistry struct {
	shapes []*ShapeNode
	root   *ShapeNode
	stats  *Stats
	cfg    *Config
}

// NewShapeRegistry creates a registry seeded with the empty-shape root.
func NewShapeRegistry(cfg *Config, stats *Stats) *ShapeRegistry {
	r := &ShapeRegistry{cfg: cfg, stats: stats}
	root := newShapeNode(nil, nil, rootSlotIdx, ValueType{}, AttrExtensible)
	r.register(root)
	r.root = root
	return r
}

// Root returns the empty shape every fresh object/closure/array starts from.
func (r *ShapeRegistry) Root() *ShapeNode { return r.root }

// ShapeAt resolves a shape by its dense registry index.
func (r *ShapeRegistry) ShapeAt(idx uint32) *ShapeNode {
	return r.shapes[idx]
}

// Len reports how many shapes have ever been allocated.
func (r *ShapeRegistry) Len() int { return len(r.shapes) }

func (r *ShapeRegistry) register(s *ShapeNode) {
	s.shapeIdx = uint32(len(r.shapes))
	r.shapes = append(r.shapes, s)
	r.stats.NumShapes++
}

// DefProp defines or redefines a property starting from self, per spec.md
// §4.3. When defShape is nil this creates (or reuses, via transition
// interning) a fresh child of self. When defShape is non-nil, self already
// has the named property somewhere up its ancestry (at defShape); this
// forks a new branch that preserves every slot index between defShape and
// self while swapping in the new type/attrs at defShape's own slot.
func (r *ShapeRegistry) DefProp(self *ShapeNode, name string, typ ValueType, attrs Attributes, defShape *ShapeNode) *ShapeNode {
	name = stabilizeName(name)

	if hit := lookupTransition(self, name, typ, attrs); hit != nil {
		return hit
	}

	if defShape == nil {
		child := newShapeNode(self, &name, self.slotIdx+1, typ, attrs)
		r.register(child)
		traceShape("defprop %q on #%d -> new #%d slot=%d", name, self.ShapeIdx(), child.ShapeIdx(), child.SlotIdx())
		return internTransition(self, name, typ, attrs, child)
	}

	traceShape("redefine %q on #%d (defined at #%d)", name, self.ShapeIdx(), defShape.ShapeIdx())

	// Redefinition: collect the chain walked from self up to (excluding)
	// defShape — the properties added after the original definition.
	var chain []*ShapeNode
	for cur := self; cur != nil && cur != defShape; cur = cur.parent {
		chain = append(chain, cur)
	}

	result := r.DefProp(defShape.parent, name, typ, attrs, nil)
	for i := len(chain) - 1; i >= 0; i-- {
		s := chain[i]
		result = r.DefProp(result, s.PropName(), s.typ, s.attrs, nil)
	}

	return internTransition(self, name, typ, attrs, result)
}

// lookupTransition returns the interned transition for (name, typ, attrs) on
// self, or nil if none is cached yet.
func lookupTransition(self *ShapeNode, name string, typ ValueType, attrs Attributes) *ShapeNode {
	self.mu.RLock()
	defer self.mu.RUnlock()
	for _, candidate := range self.transitions[name][typ] {
		if candidate.attrs == attrs {
			return candidate
		}
	}
	return nil
}

// internTransition caches result under self.transitions[name][typ], folding
// into a racing duplicate if one was installed since the last lookup.
func internTransition(self *ShapeNode, name string, typ ValueType, attrs Attributes, result *ShapeNode) *ShapeNode {
	self.mu.Lock()
	defer self.mu.Unlock()
	byType, ok := self.transitions[name]
	if !ok {
		byType = make(map[ValueType][]*ShapeNode)
		self.transitions[name] = byType
	}
	for _, candidate := range byType[typ] {
		if candidate.attrs == attrs {
			return candidate
		}
	}
	byType[typ] = append(byType[typ], result)
	return result
}

// GetDefShape looks up the shape defining name on the chain rooted at self,
// consulting and populating self's lookup_cache. Returns nil if the
// property is absent (or every occurrence on the chain is tombstoned).
func (r *ShapeRegistry) GetDefShape(self *ShapeNode, name string) *ShapeNode {
	name = stabilizeName(name)

	self.mu.RLock()
	entry, cached := self.lookupCache[name]
	self.mu.RUnlock()
	if cached {
		if entry.absent {
			traceShape("getdefshape %q on #%d -> cached absent", name, self.ShapeIdx())
			return nil
		}
		traceShape("getdefshape %q on #%d -> cached #%d", name, self.ShapeIdx(), entry.shape.ShapeIdx())
		return entry.shape
	}

	var found *ShapeNode
	for cur := self; cur != nil; cur = cur.parent {
		if cur.propName != nil && *cur.propName == name && !cur.attrs.Has(AttrDeleted) {
			found = cur
			break
		}
	}

	self.mu.Lock()
	if found != nil {
		self.lookupCache[name] = lookupEntry{shape: found}
	} else {
		self.lookupCache[name] = lookupEntry{absent: true}
	}
	self.mu.Unlock()

	if found != nil {
		traceShape("getdefshape %q on #%d -> walked to #%d", name, self.ShapeIdx(), found.ShapeIdx())
	} else {
		traceShape("getdefshape %q on #%d -> absent", name, self.ShapeIdx())
	}

	return found
}

// GenEnumTable returns the (lazily built, memoized) flat enumeration table
// for self: one entry per slot index from 0 to self.slotIdx, populated only
// for enumerable, non-deleted, not-yet-shadowed shapes on the chain.
func (r *ShapeRegistry) GenEnumTable(self *ShapeNode) []*EnumEntry {
	self.enumMu.Lock()
	defer self.enumMu.Unlock()
	if self.enumBuilt {
		return self.enumTable
	}

	size := 0
	if self.slotIdx != rootSlotIdx {
		size = int(self.slotIdx) + 1
	}
	table := make([]*EnumEntry, size)
	seen := make([]bool, size)

	for cur := self; cur != nil && cur.propName != nil; cur = cur.parent {
		idx := int(cur.slotIdx)
		if idx < 0 || idx >= size || seen[idx] {
			continue
		}
		seen[idx] = true
		if cur.attrs.Has(AttrDeleted) {
			continue
		}
		if cur.attrs.Has(AttrEnumerable) {
			table[idx] = &EnumEntry{Name: *cur.propName, Attrs: cur.attrs}
		}
	}

	self.enumTable = table
	self.enumBuilt = true
	return table
}

// Delete tombstones name on the chain rooted at self and returns the shape
// obj should adopt afterward. An absent property yields (self, true); a
// non-configurable one yields (self, false). Per the Open Question decision in DESIGN.md, deletion
// always forks a new branch rather than flipping AttrDeleted on a shared
// node in place, so no other object's current shape's lookup_cache is ever
// invalidated retroactively.
func (r *ShapeRegistry) Delete(self *ShapeNode, name string) (*ShapeNode, bool) {
	def := r.GetDefShape(self, name)
	if def == nil {
		return self, true
	}
	if !def.attrs.Has(AttrConfigurable) {
		traceShape("delete %q on #%d -> rejected, non-configurable at #%d", name, self.ShapeIdx(), def.ShapeIdx())
		return self, false
	}
	newAttrs := (def.attrs &^ (AttrWritable | AttrEnumerable | AttrConfigurable)) | AttrDeleted
	forked := r.DefProp(self, name, def.typ, newAttrs, def)
	traceShape("delete %q on #%d -> forked #%d", name, self.ShapeIdx(), forked.ShapeIdx())
	return forked, true
}

func (r *ShapeRegistry) String() string {
	return fmt.Sprintf("ShapeRegistry{shapes=%d}", len(r.shapes))
}
