// context.go - the Alignment Context: a lexically-scoped stack mapping
// integer-valued let-bound names to a modulus-remainder summary
// (spec.md §3, §4.2). Balance discipline (push matched by pop on every
// path, spec.md invariant 4) is modeled directly on the teacher's
// StackValidator in stack_validator.go: a depth counter plus an
// operation log used only to produce a useful panic message, and a
// Validate-style balance check callable after a full Rewrite.
package align

import (
	"fmt"
	"os"
)

// ModRem is a modulus-remainder summary: the value of some integer
// expression is congruent to R modulo M for every valuation consistent
// with the context it was computed in. M == 1 (any R, conventionally 0)
// means "no information" (spec.md §3). M == 0 denotes an exactly known
// constant value R; ComputeModRem returns it for integer literals and
// Lookup returns it for names pushed with a constant value. Inside the
// combinators it behaves as the GCD identity (gcd(0, x) == x), exactly the property
// that lets constant folding compose with symbolic moduli without a
// special case at every combinator.
type ModRem struct {
	M, R int64
}

// NoInfo is the "no information" summary.
var NoInfo = ModRem{M: 1, R: 0}

// frame is one scope's worth of context: a name and the summary it was
// pushed with, plus whether the push was a real tracked binding (integer
// type) or a no-op placeholder (spec.md §4.2: "names whose bound value
// has integer type are tracked; others are pushed as a no-op").
type frame struct {
	name    string
	summary ModRem
	tracked bool
}

// Context is the scoped Alignment Context. Zero value is ready to use.
type Context struct {
	frames []frame
	ops    []string         // history, for diagnosing an imbalance; mirrors StackValidator.operations
	base   map[string]ModRem // caller-supplied facts that hold for the whole rewrite, not popped
}

// Assume records a fact that holds for the entire rewrite (e.g. "this
// parameter is a multiple of 16"), outside the push/pop discipline: it is
// not a let-binding introduced by the IR being rewritten, so it does not
// count against the "context empty after rewrite" balance check
// (spec.md §8's "Scoped context balance" property is about scopes the
// Traversal Driver itself opened and closed).
func (c *Context) Assume(name string, summary ModRem) {
	if c.base == nil {
		c.base = make(map[string]ModRem)
	}
	c.base[name] = summary
}

// NewContext returns an empty Alignment Context.
func NewContext() *Context { return &Context{} }

// Push binds name to summary for the extent of the caller's scope. The
// caller must call Pop with the same name before returning, on every
// control-flow path (spec.md invariant 4) — the Traversal Driver does
// this by following each pushBinding with a deferred Pop.
func (c *Context) Push(name string, summary ModRem) {
	c.frames = append(c.frames, frame{name: name, summary: summary, tracked: true})
	c.ops = append(c.ops, fmt.Sprintf("push %s=(%d,%d) depth=%d", name, summary.M, summary.R, len(c.frames)))
	Tracef("align: push %s ~= %d (mod %d), depth now %d", name, summary.R, summary.M, len(c.frames))
}

// PushUntracked records a non-integer binding as a no-op frame, so Pop
// still balances without needing the caller to branch on trackedness
// (spec.md §4.2: "their pops are likewise elided" — elided from the
// context's point of view, not from the push/pop call discipline, which
// stays uniform).
func (c *Context) PushUntracked(name string) {
	c.frames = append(c.frames, frame{name: name, tracked: false})
	c.ops = append(c.ops, fmt.Sprintf("push %s (untracked) depth=%d", name, len(c.frames)))
}

// Pop removes the innermost binding for name. Panics (matching the
// teacher's StackValidator.Pop/Add underflow handling) if the stack is
// empty or the top frame's name doesn't match, which would indicate a
// non-lexical push/pop pairing somewhere in the Traversal Driver.
func (c *Context) Pop(name string) {
	if len(c.frames) == 0 {
		c.dumpRecent()
		panic(fmt.Sprintf("align: context underflow popping %q", name))
	}
	top := c.frames[len(c.frames)-1]
	if top.name != name {
		c.dumpRecent()
		panic(fmt.Sprintf("align: context imbalance: popping %q but top of stack is %q", name, top.name))
	}
	c.frames = c.frames[:len(c.frames)-1]
	c.ops = append(c.ops, fmt.Sprintf("pop %s depth=%d", name, len(c.frames)))
	Tracef("align: pop %s, depth now %d", name, len(c.frames))
}

func (c *Context) dumpRecent() {
	start := len(c.ops) - 10
	if start < 0 {
		start = 0
	}
	fmt.Fprintln(os.Stderr, "align: recent context operations:")
	for _, op := range c.ops[start:] {
		fmt.Fprintf(os.Stderr, "  %s\n", op)
	}
}

// Lookup returns the innermost tracked summary bound to name, or NoInfo
// if name isn't bound (or was bound untracked).
func (c *Context) Lookup(name string) ModRem {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i].name == name {
			if !c.frames[i].tracked {
				return NoInfo
			}
			return c.frames[i].summary
		}
	}
	if c.base != nil {
		if mr, ok := c.base[name]; ok {
			return mr
		}
	}
	return NoInfo
}

// Empty reports whether the context holds no open scopes — the
// "scoped context balance" property of spec.md §8 ("After rewrite
// returns, the Alignment Context is empty").
func (c *Context) Empty() bool { return len(c.frames) == 0 }

// Depth returns the number of open scopes, for tests and tracing.
func (c *Context) Depth() int { return len(c.frames) }
