package vm

// Attributes is a bit set over {configurable, writable, enumerable,
// extensible, deleted, accessor} (spec.md §3).
type Attributes uint8

const (
	AttrConfigurable Attributes = 1 << iota
	AttrWritable
	AttrEnumerable
	AttrExtensible
	AttrDeleted
	AttrAccessor
)

// Published defaults (spec.md §6).
const (
	AttrDefault      = AttrConfigurable | AttrWritable | AttrEnumerable | AttrExtensible
	AttrConstEnum    = AttrEnumerable | AttrExtensible
	AttrConstNotEnum = AttrExtensible
)

func (a Attributes) Has(bit Attributes) bool { return a&bit != 0 }
