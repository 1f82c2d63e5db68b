package vm

import (
	"fmt"
	"os"
)

// debugAccess/debugShape gate diagnostic tracing the same way the teacher
// codebase gates its own VM tracing behind a package-level const/flag
// rather than a structured logger: this is a from-scratch VM core, and
// nothing else in the retrieval pack's language-runtime repos reaches for a
// logging library for this kind of hot-path trace either.
var (
	debugAccess = false
	debugShape  = false
)

// SetDebug toggles property-access and shape-tree tracing. Intended for use
// by a host or the orzoctl CLI's --trace-access/--trace-shape flags, never
// flipped mid-operation.
func SetDebug(access, shape bool) {
	debugAccess = access
	debugShape = shape
}

func traceAccess(format string, args ...any) {
	if debugAccess {
		fmt.Fprintf(os.Stderr, "[access] "+format+"\n", args...)
	}
}

func traceShape(format string, args ...any) {
	if debugShape {
		fmt.Fprintf(os.Stderr, "[shape] "+format+"\n", args...)
	}
}
