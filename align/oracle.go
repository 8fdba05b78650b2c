// oracle.go - the Alignment Oracle (spec.md §4.3): given a ramp and a
// candidate host alignment, reports whether the ramp's base is known to
// sit at a fixed lane offset from an aligned boundary.
package align

import "github.com/xyproto/loadalign/ir"

// Oracle answers alignment queries against a Policy (for the current
// required alignment) and a Context (for let-bound facts).
type Oracle struct {
	Policy  *Policy
	Context *Context
}

// NewOracle returns an Oracle backed by policy and ctx.
func NewOracle(policy *Policy, ctx *Context) *Oracle {
	return &Oracle{Policy: policy, Context: ctx}
}

// Query implements the §4.3 contract. hostAlignBytes is the candidate
// buffer alignment: required_alignment itself for an internal buffer, or
// a declared Param.HostAlignment() for one that carries a user alignment
// annotation. It returns (lanesOff, true) when the ramp's base is proven
// congruent to lanesOff modulo N = NaturalVectorLanes(elem), and
// (0, false) ("unknown") otherwise.
func (o *Oracle) Query(ramp *ir.Ramp, hostAlignBytes int, elem ir.ScalarKind) (lanesOff int, ok bool) {
	required := o.Policy.RequiredAlignment()
	if hostAlignBytes%required != 0 {
		// Conservative rule (spec.md §4.3): never promise alignment the
		// buffer's declared host alignment can't back up.
		return 0, false
	}
	n := int64(o.Policy.NaturalVectorLanes(elem))
	off, known := ReduceModulo(ramp.Base, n, o.Context)
	if !known {
		return 0, false
	}
	return int(off), true
}
