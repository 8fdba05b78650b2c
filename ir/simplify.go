// simplify.go - the expression simplifier spec.md §6 calls out as an
// external collaborator ("we call it"). The rewriter in package align
// only ever needs constant folding of sums and differences of the
// synthesized bases it builds (base-lanes_off, base+N, base+i); this is
// a minimal canonicalizer for exactly that, not a general-purpose
// optimizer, matching the teacher's habit of writing the narrowest helper
// that satisfies the call sites (see e.g. reduceExprModulo's single use).
package ir

// Simplify constant-folds and canonicalizes an integer expression. It is
// conservative: anything it doesn't recognize is returned unchanged.
func Simplify(e Expr) Expr {
	switch n := e.(type) {
	case *BinaryExpr:
		l := Simplify(n.Left)
		r := Simplify(n.Right)
		op := n.Op
		if op == OpSub {
			// Normalize a - c into a + (-c) so the one Add-merging
			// routine below also collapses subtractions of a constant,
			// e.g. (x + 3) - 3 => x.
			if rc, ok := r.(*IntImm); ok {
				r = &IntImm{Val: -rc.Val, Typ: rc.Typ}
				op = OpAdd
			} else {
				return &BinaryExpr{Left: l, Op: OpSub, Right: r}
			}
		}
		if op == OpAdd {
			return simplifyAdd(l, r)
		}
		if lc, lok := l.(*IntImm); lok {
			if rc, rok := r.(*IntImm); rok {
				return foldConst(op, lc, rc)
			}
		}
		return &BinaryExpr{Left: l, Op: op, Right: r}
	default:
		return e
	}
}

func foldConst(op BinOp, l, r *IntImm) *IntImm {
	var v int64
	switch op {
	case OpAdd:
		v = l.Val + r.Val
	case OpSub:
		v = l.Val - r.Val
	case OpMul:
		v = l.Val * r.Val
	case OpDiv:
		if r.Val == 0 {
			return l
		}
		v = l.Val / r.Val
	case OpMod:
		if r.Val == 0 {
			return l
		}
		v = l.Val % r.Val
	default:
		v = l.Val
	}
	return &IntImm{Val: v, Typ: l.Typ}
}

// simplifyAdd folds l + r, recursively collapsing a chain of
// "(x + c1) + c2" into "x + (c1+c2)" so that repeated rewriting
// (spec.md §5: the rewriter re-enters its own synthesized nodes) doesn't
// grow an ever-deeper tree of nested offsets, and so that a
// synthesize-then-undo sequence like (base - lanes_off) fully cancels
// back to base rather than leaving a dangling "+0" or "-c+c" shell.
func simplifyAdd(l, r Expr) Expr {
	lc, lIsConst := l.(*IntImm)
	rc, rIsConst := r.(*IntImm)
	if lIsConst && rIsConst {
		return &IntImm{Val: lc.Val + rc.Val, Typ: lc.Typ}
	}
	if rIsConst && rc.Val == 0 {
		return l
	}
	if lIsConst && lc.Val == 0 {
		return r
	}
	if lb, ok := l.(*BinaryExpr); ok && lb.Op == OpAdd && rIsConst {
		if lbc, ok := lb.Right.(*IntImm); ok {
			return simplifyAdd(lb.Left, &IntImm{Val: lbc.Val + rc.Val, Typ: lbc.Typ})
		}
	}
	return &BinaryExpr{Left: l, Op: OpAdd, Right: r}
}
