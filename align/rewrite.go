// rewrite.go - the Load Rewriter (spec.md §4.5): the case analysis over
// Load nodes that produces the rewritten expression. This is the core of
// the pass. The case-per-shape dispatch structure (narrow / oversized /
// dense-unit-stride / stride-2 / everything else unchanged) mirrors the
// teacher's habit of dispatching on a small closed shape enum before
// emitting anything — see loadstore.go's switch on architecture before
// switching again on addressing-mode shape, or vmovupd.go's switch on
// register width before emitting the EVEX/SVE2/RVV encoding. Here the
// "encodings" are themselves IR trees, not machine bytes, since all
// downstream code generation is out of scope (spec.md §1).
package align

import "github.com/xyproto/loadalign/ir"

func isIntegerScalar(t ir.Type) bool {
	if t.Lanes != 1 {
		return false
	}
	switch t.Scalar {
	case ir.Int8, ir.Int16, ir.Int32, ir.Int64, ir.UInt8, ir.UInt16, ir.UInt32, ir.UInt64:
		return true
	default:
		return false
	}
}

// rewriteLoad implements spec.md §4.5 end to end.
func (r *Rewriter) rewriteLoad(l *ir.Load) ir.Expr {
	index := r.mutateExpr(l.Index)
	l = l.WithIndex(index)

	if !l.Typ.IsVector() {
		r.stage("scalar-passthrough")
		return l
	}
	if l.Image != nil {
		r.stage("external-passthrough")
		return l
	}
	ramp, isRamp := index.(*ir.Ramp)
	if !isRamp {
		r.stage("non-ramp-passthrough")
		return l
	}
	stride, hasLitStride := ramp.StrideLiteral()
	if !hasLitStride {
		r.stage("symbolic-stride-passthrough")
		return l
	}

	v := l.Typ.Lanes
	elem := l.Typ.Scalar
	n := r.policy.NaturalVectorLanes(elem)

	switch {
	case v < n:
		return r.rewriteNarrow(l, ramp, stride, v, n)
	case v > n:
		return r.rewriteOversized(l, ramp, n)
	case stride == 1:
		return r.rewriteDenseUnitStride(l, ramp, n)
	case stride == 2:
		return r.rewriteStride2(l, ramp, n)
	default:
		r.stage("unsupported-stride-passthrough")
		return l
	}
}

// rewriteNarrow handles spec.md §4.5.1: V < N.
func (r *Rewriter) rewriteNarrow(l *ir.Load, ramp *ir.Ramp, stride int64, v, n int) ir.Expr {
	if stride > 2 {
		r.stage("narrow-unsupported-stride-passthrough")
		return l
	}
	r.stage("narrow")
	widened := ir.NewLoad(l.Typ.WithLanes(n), l.Buffer, ir.NewRamp(ramp.Base, ramp.Stride, n), l.Image, l.Param)
	widenedRewritten := r.rewriteLoad(widened)
	indices := make([]int, v)
	for i := range indices {
		indices[i] = i
	}
	return ir.NewShuffle(widenedRewritten, indices)
}

// rewriteOversized handles spec.md §4.5.2: V > N.
func (r *Rewriter) rewriteOversized(l *ir.Load, ramp *ir.Ramp, n int) ir.Expr {
	r.stage("oversized")
	v := l.Typ.Lanes
	var slices []ir.Expr
	for i := 0; i < v; i += n {
		w := n
		if v-i < w {
			w = v - i
		}
		base := ir.Simplify(ir.NewBinary(ir.OpAdd, ramp.Base, ir.NewIntImm(int64(i))))
		slice := ir.NewLoad(l.Typ.WithLanes(w), l.Buffer, ir.NewRamp(base, ramp.Stride, w), l.Image, l.Param)
		slices = append(slices, slice)
	}
	return r.mutateExpr(ir.NewConcat(slices...))
}

// effectiveHostAlignment returns the alignment, in bytes, the Oracle
// should treat l's buffer as backed by: the declared Param alignment, or
// the Policy's required alignment for an internal buffer (spec.md §4.5.3:
// "the buffer is internal and is guaranteed to be aligned to
// required_alignment").
func (r *Rewriter) effectiveHostAlignment(l *ir.Load) int {
	if l.Param.Defined() {
		return l.Param.HostAlignment()
	}
	return r.policy.RequiredAlignment()
}

// rewriteDenseUnitStride handles spec.md §4.5.3: stride == 1, V == N.
func (r *Rewriter) rewriteDenseUnitStride(l *ir.Load, ramp *ir.Ramp, n int) ir.Expr {
	hostAlign := r.effectiveHostAlignment(l)
	lanesOff, known := r.oracle.Query(ramp, hostAlign, l.Typ.Scalar)
	if !known {
		r.stage("dense-unknown-passthrough")
		return l
	}
	if lanesOff == 0 {
		r.stage("dense-already-aligned")
		return l
	}
	r.stage("dense-split")

	baseLow := ir.Simplify(ir.NewBinary(ir.OpSub, ramp.Base, ir.NewIntImm(int64(lanesOff))))
	baseHigh := ir.Simplify(ir.NewBinary(ir.OpAdd, baseLow, ir.NewIntImm(int64(n))))
	loadLow := ir.NewLoad(l.Typ, l.Buffer, ir.NewRamp(baseLow, ir.NewIntImm(1), n), l.Image, l.Param)
	loadHigh := ir.NewLoad(l.Typ, l.Buffer, ir.NewRamp(baseHigh, ir.NewIntImm(1), n), l.Image, l.Param)
	return ConcatAndShuffleWindow(loadLow, loadHigh, lanesOff, n)
}

// rewriteStride2 handles spec.md §4.5.4: stride == 2, V == N.
func (r *Rewriter) rewriteStride2(l *ir.Load, ramp *ir.Ramp, n int) ir.Expr {
	r.stage("stride2")
	baseA := ramp.Base
	baseB := ir.Simplify(ir.NewBinary(ir.OpAdd, ramp.Base, ir.NewIntImm(int64(n))))
	bShift := 0
	if l.Param.Defined() {
		lanesOff, known := r.oracle.Query(ramp, l.Param.HostAlignment(), l.Typ.Scalar)
		if !known || lanesOff != 0 {
			baseB = ir.Simplify(ir.NewBinary(ir.OpSub, baseB, ir.NewIntImm(1)))
			bShift = 1
		}
	}

	loadA := ir.NewLoad(l.Typ, l.Buffer, ir.NewRamp(baseA, ir.NewIntImm(1), n), l.Image, l.Param)
	loadB := ir.NewLoad(l.Typ, l.Buffer, ir.NewRamp(baseB, ir.NewIntImm(1), n), l.Image, l.Param)
	vecA := r.rewriteLoad(loadA)
	vecB := r.rewriteLoad(loadB)

	indices := make([]int, n)
	for i := 0; i < n/2; i++ {
		indices[i] = 2 * i
	}
	for i := n / 2; i < n; i++ {
		indices[i] = 2*i + bShift
	}
	return ConcatAndShuffle(vecA, vecB, indices)
}
