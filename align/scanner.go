// scanner.go - a read-only alignment-invariant scanner over already
// rewritten IR, supplementing the core rewrite (spec.md §8's "Alignment
// of synthesized loads" property: every synthesized internal Load with a
// Ramp(b, 1, N) index must have the oracle prove b aligned). Modeled on
// the teacher's bad_address_detector.go: a post-hoc pattern scanner run
// over already-generated output to flag anything that slipped through,
// not a transformation in its own right. There it scans emitted ELF
// bytes for unpatched relocation placeholders; here it scans IR for
// surviving unaligned loads.
package align

import (
	"fmt"

	"github.com/xyproto/loadalign/ir"
)

// Finding describes one surviving load the scanner flagged.
type Finding struct {
	Buffer  string
	Load    *ir.Load
	Reason  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Buffer, f.Load, f.Reason)
}

type scanner struct {
	policy   *Policy
	ctx      *Context
	oracle   *Oracle
	findings []Finding
}

// FindUnalignedLoads walks stmt (normally the output of Rewrite) and
// reports every internal vector load whose Ramp(b, 1, N) index is not
// proven aligned by the Alignment Oracle. It does not mutate the tree.
func FindUnalignedLoads(stmt ir.Stmt, target Target) []Finding {
	policy := NewPolicy(target)
	ctx := NewContext()
	s := &scanner{policy: policy, ctx: ctx, oracle: NewOracle(policy, ctx)}
	s.scanStmt(stmt)
	if !ctx.Empty() {
		invariantf("scanner context not empty after scan (depth=%d)", ctx.Depth())
	}
	return s.findings
}

// FindUnalignedLoadsInExpr is FindUnalignedLoads for a standalone
// expression, for scanning individual rewritten Load results in tests.
func FindUnalignedLoadsInExpr(e ir.Expr, target Target) []Finding {
	policy := NewPolicy(target)
	ctx := NewContext()
	s := &scanner{policy: policy, ctx: ctx, oracle: NewOracle(policy, ctx)}
	s.scanExpr(e)
	if !ctx.Empty() {
		invariantf("scanner context not empty after scan (depth=%d)", ctx.Depth())
	}
	return s.findings
}

func (s *scanner) scanExpr(e ir.Expr) {
	switch n := e.(type) {
	case *ir.BinaryExpr:
		s.scanExpr(n.Left)
		s.scanExpr(n.Right)
	case *ir.Ramp:
		s.scanExpr(n.Base)
		s.scanExpr(n.Stride)
	case *ir.Call:
		for _, a := range n.Args {
			s.scanExpr(a)
		}
	case *ir.Let:
		s.scanExpr(n.Value)
		s.pushAndScanExprBody(n)
	case *ir.Load:
		s.scanExpr(n.Index)
		s.checkLoad(n)
	default:
	}
}

func (s *scanner) pushAndScanExprBody(n *ir.Let) {
	if isIntegerScalar(n.Value.Type()) {
		s.ctx.Push(n.Name, ComputeModRem(n.Value, s.ctx))
	} else {
		s.ctx.PushUntracked(n.Name)
	}
	defer s.ctx.Pop(n.Name)
	s.scanExpr(n.Body)
}

func (s *scanner) scanStmt(st ir.Stmt) {
	switch n := st.(type) {
	case *ir.EvalStmt:
		s.scanExpr(n.Value)
	case *ir.SeqStmt:
		for _, c := range n.Stmts {
			s.scanStmt(c)
		}
	case *ir.LetStmt:
		s.scanExpr(n.Value)
		if isIntegerScalar(n.Value.Type()) {
			s.ctx.Push(n.Name, ComputeModRem(n.Value, s.ctx))
		} else {
			s.ctx.PushUntracked(n.Name)
		}
		s.scanStmt(n.Body)
		s.ctx.Pop(n.Name)
	case *ir.For:
		restore := s.policy.EnterDevice(n.DeviceAPI)
		s.scanExpr(n.Min)
		s.scanExpr(n.Extent)
		s.scanStmt(n.Body)
		restore()
	default:
	}
}

// checkLoad flags n if it is exactly the shape spec.md §8 constrains:
// an internal vector load with a Ramp(b, 1, N) index.
func (s *scanner) checkLoad(n *ir.Load) {
	if n.Image != nil || !n.Typ.IsVector() {
		return
	}
	ramp, ok := n.Index.(*ir.Ramp)
	if !ok {
		return
	}
	stride, ok := ramp.StrideLiteral()
	if !ok || stride != 1 {
		return
	}
	n2 := s.policy.NaturalVectorLanes(n.Typ.Scalar)
	if n.Typ.Lanes != n2 {
		return
	}
	hostAlign := s.policy.RequiredAlignment()
	if n.Param.Defined() {
		hostAlign = n.Param.HostAlignment()
	}
	lanesOff, known := s.oracle.Query(ramp, hostAlign, n.Typ.Scalar)
	switch {
	case !known:
		s.findings = append(s.findings, Finding{Buffer: n.Buffer, Load: n, Reason: "alignment unknown"})
	case lanesOff != 0:
		s.findings = append(s.findings, Finding{Buffer: n.Buffer, Load: n, Reason: fmt.Sprintf("lanes_off=%d", lanesOff)})
	}
}
