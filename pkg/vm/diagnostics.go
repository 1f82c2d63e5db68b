package vm

import (
	"fmt"
	"strings"
)

// Report is a point-in-time snapshot of a VM's shape-tree and property-access
// statistics, the analog of the teacher's ICacheStats but keyed to this
// core's actual counters (spec.md §4.4 step 4, §6) rather than a bytecode
// interpreter's per-IP inline cache sites — this core exposes no IPs, so
// there is nothing to key a per-site report by.
type Report struct {
	SessionID      string
	NumShapes      uint64
	NumShapeFlips  uint64
	NumFlipsGlobal uint64
	NumFuncRefs    int
	FlipRatio      float64
}

// Report builds a snapshot of vm's current statistics, grounded in the
// teacher's GetCacheStats()/PrintCacheStats() split between "gather the
// numbers" and "render the numbers."
func (vm *VM) Report() Report {
	total := vm.Stats.NumShapeFlips + vm.Stats.NumShapeFlipsGlobal
	ratio := 0.0
	if vm.Stats.NumShapes > 0 {
		ratio = float64(total) / float64(vm.Stats.NumShapes)
	}
	return Report{
		SessionID:      vm.ID.String(),
		NumShapes:      vm.Stats.NumShapes,
		NumShapeFlips:  vm.Stats.NumShapeFlips,
		NumFlipsGlobal: vm.Stats.NumShapeFlipsGlobal,
		NumFuncRefs:    vm.Funcs.Len(),
		FlipRatio:      ratio,
	}
}

// PrintReport renders r the way the teacher's PrintCacheStats renders inline
// cache activity: a summary line followed by a breakdown, to stdout.
func (r Report) PrintReport() {
	fmt.Printf("Shape Stats [%s]: shapes=%d flips=%d (global=%d) funcs=%d\n",
		r.SessionID, r.NumShapes, r.NumShapeFlips, r.NumFlipsGlobal, r.NumFuncRefs)
	fmt.Printf("  flip ratio: %.4f\n", r.FlipRatio)
}

// Dump renders every shape node in the registry, one line per node, in
// registration order — the format orzoctl's dump subcommand and the golden
// shape-tree tests pin.
func (vm *VM) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ShapeRegistry(%d shapes)\n", vm.Shapes.Len())
	for i := 0; i < vm.Shapes.Len(); i++ {
		s := vm.Shapes.ShapeAt(uint32(i))
		if s.isRoot() {
			fmt.Fprintf(&b, "  #%d root\n", s.ShapeIdx())
			continue
		}
		parentIdx := s.Parent().ShapeIdx()
		fmt.Fprintf(&b, "  #%d parent=#%d name=%q slot=%d attrs=%02x type=%s\n",
			s.ShapeIdx(), parentIdx, s.PropName(), s.SlotIdx(), uint8(s.Attrs()), s.Type())
	}
	return b.String()
}
