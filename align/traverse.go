// traverse.go - the Traversal Driver (spec.md §4.6): generic post-order
// recursion over the IR, specialized for Let/LetStmt (context scoping),
// For (target policy scoping), and Load (the rewrite in rewrite.go).
// Structured the way the teacher structures a small closed-interface
// dispatch (see ast.go's Statement/Expression marker interfaces): a type
// switch per node kind rather than an open visitor, since spec.md §9
// notes "tagged-variant dispatch is natural; open-class virtual dispatch
// is not required."
package align

import "github.com/xyproto/loadalign/ir"

// Rewriter holds the state confined to a single in-flight traversal: the
// Alignment Context, the Target Policy, and the Alignment Oracle built
// from them. Per spec.md §5, none of this is shared across concurrent
// traversals; run one Rewriter per IR root.
type Rewriter struct {
	policy *Policy
	ctx    *Context
	oracle *Oracle
	stages []string
}

// NewRewriter returns a Rewriter targeting t, with an empty Alignment
// Context. Callers that need to seed exogenous facts (e.g. "this
// parameter is known to be a multiple of 16") should call
// r.Context().Assume(...) before rewriting.
func NewRewriter(t Target) *Rewriter {
	policy := NewPolicy(t)
	ctx := NewContext()
	return &Rewriter{policy: policy, ctx: ctx, oracle: NewOracle(policy, ctx)}
}

// Context exposes the Alignment Context for seeding exogenous facts
// before a rewrite (see NewRewriter).
func (r *Rewriter) Context() *Context { return r.ctx }

// Stages returns, in firing order, the name of every Load Rewriter case
// that fired during the traversal so far — a read-only audit trail in
// the spirit of the teacher's CompilationPipeline stage history
// (compilation_pipeline.go), repurposed from "which ELF-emission phase
// ran" to "which rewrite rule fired."
func (r *Rewriter) Stages() []string { return append([]string(nil), r.stages...) }

func (r *Rewriter) stage(name string) {
	r.stages = append(r.stages, name)
	Tracef("align: stage %s", name)
}

// checkBalance enforces spec.md §8's "Scoped context balance" property:
// after a full rewrite, every push must have been matched by a pop.
func (r *Rewriter) checkBalance() {
	if !r.ctx.Empty() {
		invariantf("alignment context not empty after rewrite (depth=%d) - a Let/LetStmt scope was not popped", r.ctx.Depth())
	}
}

// RewriteStmt rewrites a statement tree and verifies context balance.
func (r *Rewriter) RewriteStmt(s ir.Stmt) ir.Stmt {
	out := r.mutateStmt(s)
	r.checkBalance()
	return out
}

// RewriteExpr rewrites a standalone expression (most useful for testing
// Load shapes directly, without wrapping them in a statement tree) and
// verifies context balance.
func (r *Rewriter) RewriteExpr(e ir.Expr) ir.Expr {
	out := r.mutateExpr(e)
	r.checkBalance()
	return out
}

// Rewrite is the pass's single entry point (spec.md §6): given a
// statement and a target description, return a semantically equivalent
// rewritten statement.
func Rewrite(stmt ir.Stmt, target Target) ir.Stmt {
	return NewRewriter(target).RewriteStmt(stmt)
}

func (r *Rewriter) mutateExpr(e ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ir.IntImm:
		return n
	case *ir.Var:
		return n
	case *ir.BinaryExpr:
		return &ir.BinaryExpr{Left: r.mutateExpr(n.Left), Op: n.Op, Right: r.mutateExpr(n.Right)}
	case *ir.Ramp:
		return &ir.Ramp{Base: r.mutateExpr(n.Base), Stride: r.mutateExpr(n.Stride), Lanes: n.Lanes}
	case *ir.Load:
		return r.rewriteLoad(n)
	case *ir.Call:
		args := make([]ir.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = r.mutateExpr(a)
		}
		cp := *n
		cp.Args = args
		return &cp
	case *ir.Let:
		return r.mutateLet(n)
	default:
		// Node kinds outside the set this package inspects pass through
		// unchanged via generic recursion (spec.md §3).
		return e
	}
}

func (r *Rewriter) mutateLet(n *ir.Let) *ir.Let {
	value := r.mutateExpr(n.Value)
	r.pushBinding(n.Name, value)
	defer r.ctx.Pop(n.Name)
	body := r.mutateExpr(n.Body)
	return &ir.Let{Name: n.Name, Value: value, Body: body}
}

func (r *Rewriter) mutateStmt(s ir.Stmt) ir.Stmt {
	if s == nil {
		return nil
	}
	switch n := s.(type) {
	case *ir.EvalStmt:
		return &ir.EvalStmt{Value: r.mutateExpr(n.Value)}
	case *ir.SeqStmt:
		stmts := make([]ir.Stmt, len(n.Stmts))
		for i, st := range n.Stmts {
			stmts[i] = r.mutateStmt(st)
		}
		return &ir.SeqStmt{Stmts: stmts}
	case *ir.LetStmt:
		return r.mutateLetStmt(n)
	case *ir.For:
		return r.mutateFor(n)
	default:
		return s
	}
}

func (r *Rewriter) mutateLetStmt(n *ir.LetStmt) *ir.LetStmt {
	value := r.mutateExpr(n.Value)
	r.pushBinding(n.Name, value)
	defer r.ctx.Pop(n.Name)
	body := r.mutateStmt(n.Body)
	return &ir.LetStmt{Name: n.Name, Value: value, Body: body}
}

// pushBinding pushes name's modulus-remainder summary if value has
// integer type, else pushes an untracked no-op frame — either way a
// single matching r.ctx.Pop(n.Name) balances it (spec.md §4.2).
func (r *Rewriter) pushBinding(name string, value ir.Expr) {
	if isIntegerScalar(value.Type()) {
		r.ctx.Push(name, ComputeModRem(value, r.ctx))
	} else {
		r.ctx.PushUntracked(name)
	}
}

func (r *Rewriter) mutateFor(n *ir.For) *ir.For {
	restore := r.policy.EnterDevice(n.DeviceAPI)
	defer restore()
	min := r.mutateExpr(n.Min)
	extent := r.mutateExpr(n.Extent)
	body := r.mutateStmt(n.Body)
	return &ir.For{Var: n.Var, Min: min, Extent: extent, Body: body, DeviceAPI: n.DeviceAPI}
}
