// modrem.go - the modular-arithmetic summarizer and integer-modulo
// reducer spec.md §6 names as external collaborators
// (modulus_remainder, reduce_expr_modulo). No repo in the retrieved pack
// implements symbolic modular arithmetic, so this is a from-scratch,
// narrowly-scoped implementation: it only needs to track sums,
// differences, and constant-multiples of let/loop-bound names, which
// covers every base expression the Load Rewriter builds or consumes.
package align

import (
	"github.com/xyproto/loadalign/ir"
)

// ComputeModRem computes the modulus-remainder summary of e against ctx,
// per spec.md §3/§4.2. It is pure and side-effect free (spec.md §9:
// "Keep the oracle pure... so it can be memoized").
func ComputeModRem(e ir.Expr, ctx *Context) ModRem {
	switch n := e.(type) {
	case *ir.IntImm:
		return ModRem{M: 0, R: n.Val}
	case *ir.Var:
		return ctx.Lookup(n.Name)
	case *ir.BinaryExpr:
		l := ComputeModRem(n.Left, ctx)
		r := ComputeModRem(n.Right, ctx)
		switch n.Op {
		case ir.OpAdd:
			return addModRem(l, r)
		case ir.OpSub:
			return addModRem(l, negateModRem(r))
		case ir.OpMul:
			if lc, ok := n.Left.(*ir.IntImm); ok {
				return scaleModRem(r, lc.Val)
			}
			if rc, ok := n.Right.(*ir.IntImm); ok {
				return scaleModRem(l, rc.Val)
			}
			return NoInfo
		default:
			return NoInfo
		}
	default:
		return NoInfo
	}
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// floorMod returns a non-negative representative of a mod m, for m > 0.
func floorMod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// addModRem combines two summaries under addition. gcd(0, x) == x makes
// an exactly-known operand (M == 0) compose with a symbolic one (M > 0)
// without a special case: the result modulus is simply the symbolic
// operand's modulus, which is exactly the desired "constant shifts don't
// widen the uncertainty" behavior.
func addModRem(a, b ModRem) ModRem {
	if a.M == 0 && b.M == 0 {
		return ModRem{M: 0, R: a.R + b.R}
	}
	m := gcd(a.M, b.M)
	if m == 0 {
		return NoInfo
	}
	return ModRem{M: m, R: floorMod(a.R+b.R, m)}
}

func negateModRem(a ModRem) ModRem {
	if a.M == 0 {
		return ModRem{M: 0, R: -a.R}
	}
	return ModRem{M: a.M, R: floorMod(-a.R, a.M)}
}

func scaleModRem(a ModRem, k int64) ModRem {
	if a.M == 0 {
		return ModRem{M: 0, R: a.R * k}
	}
	if k == 0 {
		return ModRem{M: 0, R: 0}
	}
	m := a.M * absInt64(k)
	return ModRem{M: m, R: floorMod(a.R*k, m)}
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// ReduceModulo returns ((e mod N) + N) mod N and true when the summary's
// modulus is a multiple of N (so the remainder modulo N is exactly
// known); otherwise it returns (0, false), per spec.md §6's
// reduce_expr_modulo contract.
func ReduceModulo(e ir.Expr, n int64, ctx *Context) (int64, bool) {
	mr := ComputeModRem(e, ctx)
	return reduceModRem(mr, n)
}

func reduceModRem(mr ModRem, n int64) (int64, bool) {
	if n <= 0 {
		return 0, false
	}
	if mr.M == 0 {
		return floorMod(mr.R, n), true
	}
	if mr.M%n == 0 {
		return floorMod(mr.R, n), true
	}
	return 0, false
}
