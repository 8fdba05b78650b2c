// diagnostics.go - debug tracing and internal-invariant reporting.
// Grounded on the teacher's global VerboseMode flag gating
// fmt.Fprintf(os.Stderr, ...) calls throughout cffi.go/codegen.go, and on
// the panic(fmt.Sprintf(...)) idiom used for unrecoverable invariant
// violations in address_types.go/stack_validator.go/
// compilation_pipeline.go. Tracing never participates in control flow
// (spec.md §7.4); invariantf always panics (spec.md §7.1).
package align

import (
	"fmt"
	"os"
)

// Trace gates diagnostic output. Off by default; the demo CLI in
// cmd/c67align sets it from a -v/-verbose flag the same way the teacher's
// main.go sets VerboseMode.
var Trace bool

// Tracef writes a diagnostic trace line to stderr when Trace is enabled.
func Tracef(format string, args ...any) {
	if !Trace {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// invariantf reports an internal invariant violation (spec.md §7.1): an
// unrecoverable condition that fails the enclosing compilation. Unlike
// the recoverable "unsupported shape"/"unknown alignment" cases (§7.2,
// §7.3), which the rewriter handles by returning the input unchanged,
// this always panics.
func invariantf(format string, args ...any) {
	panic(fmt.Sprintf("align: internal invariant violation: "+format, args...))
}
