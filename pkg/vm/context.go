package vm

import "github.com/google/uuid"

// VM is the explicit context threaded through every operation in this
// package (Design Note §9: "Implementations should thread a VM context
// explicitly through all operations rather than relying on ambient global
// state"). It owns the shape registry, the function reference set, runtime
// configuration, statistics counters, and the GC contract.
type VM struct {
	ID uuid.UUID

	Config *Config
	Shapes *ShapeRegistry
	Funcs  *FuncRefSet
	Stats  *Stats
	GC     GCHost

	// GlobalObject, if set, identifies the object whose shape flips are
	// counted separately in Stats.NumShapeFlipsGlobal (spec.md §4.4 step 4).
	GlobalObject Value
}

// NewVM constructs a VM with the given configuration (DefaultConfig() if
// nil), a fresh empty-shape registry, and an empty function reference set.
// Each VM is tagged with a session UUID, reported as Report.SessionID (and so
// in orzoctl stats output), to correlate multiple cores embedded in one host
// process.
func NewVM(cfg *Config) *VM {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	stats := &Stats{}
	vm := &VM{
		ID:     uuid.New(),
		Config: cfg,
		Stats:  stats,
		GC:     hostGC{},
	}
	vm.Shapes = NewShapeRegistry(cfg, stats)
	vm.Funcs = NewFuncRefSet()
	return vm
}

func (vm *VM) isGlobalObject(inst *Instance) bool {
	return IsObject(vm.GlobalObject.Tag) && instanceOf(vm.GlobalObject) == inst
}
