// expr.go - the expression node kinds of the IR. Follows the teacher's
// ast.go convention of a small marker-method interface (there:
// expressionNode(); here: exprNode()) implemented by every concrete node,
// each with its own String() for debug printing rather than a shared
// formatter (see ast.go's BinaryExpr/CallExpr String() methods).
package ir

import (
	"fmt"
	"strings"
)

// Expr is any integer/float/vector expression node. Nodes outside the set
// this package defines are expected to embed or wrap one of these; the
// rewriter in package align only ever inspects the kinds declared here.
type Expr interface {
	fmt.Stringer
	// Type returns this expression's result type.
	Type() Type
	exprNode()
}

// IntImm is an integer literal.
type IntImm struct {
	Val int64
	Typ Type
}

func NewIntImm(v int64) *IntImm { return &IntImm{Val: v, Typ: ScalarType(Int32)} }

func (n *IntImm) Type() Type    { return n.Typ }
func (n *IntImm) String() string { return fmt.Sprintf("%d", n.Val) }
func (n *IntImm) exprNode()      {}

// Var is a reference to a let-bound or loop-bound symbolic name.
type Var struct {
	Name string
	Typ  Type
}

func NewVar(name string, t Type) *Var { return &Var{Name: name, Typ: t} }

func (n *Var) Type() Type    { return n.Typ }
func (n *Var) String() string { return n.Name }
func (n *Var) exprNode()      {}

// BinOp enumerates the arithmetic operators of BinaryExpr. The
// modular-arithmetic summarizer understands OpAdd, OpSub and OpMul (by a
// literal); OpDiv and OpMod are opaque to it (reported as "no
// information").
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return "?"
	}
}

// BinaryExpr is a scalar or lane-wise vector binary operation. Modeled
// directly on the teacher's ast.go BinaryExpr (Left/Operator/Right).
type BinaryExpr struct {
	Left  Expr
	Op    BinOp
	Right Expr
}

func NewBinary(op BinOp, l, r Expr) *BinaryExpr { return &BinaryExpr{Left: l, Op: op, Right: r} }

func (n *BinaryExpr) Type() Type { return n.Left.Type() }
func (n *BinaryExpr) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}
func (n *BinaryExpr) exprNode() {}

// Ramp is a vector expression whose i-th lane equals Base + i*Stride, for
// i in [0, Lanes). Base and Stride are scalar integer expressions.
type Ramp struct {
	Base   Expr
	Stride Expr
	Lanes  int
}

func NewRamp(base, stride Expr, lanes int) *Ramp {
	return &Ramp{Base: base, Stride: stride, Lanes: lanes}
}

func (n *Ramp) Type() Type { return n.Base.Type().WithLanes(n.Lanes) }
func (n *Ramp) String() string {
	return fmt.Sprintf("ramp(%s, %s, %d)", n.Base, n.Stride, n.Lanes)
}
func (n *Ramp) exprNode() {}

// StrideLiteral returns the ramp's stride as a static integer and true,
// or (0, false) if the stride is not a literal — the rewriter only acts
// on ramps with a literal stride (spec.md §4.5: "statically an integer
// literal when rewriting is possible").
func (n *Ramp) StrideLiteral() (int64, bool) {
	if im, ok := n.Stride.(*IntImm); ok {
		return im.Val, true
	}
	return 0, false
}

// Load reads Type.Lanes elements (1 for scalar) from Buffer at Index.
// Image, if non-nil, marks the buffer external. Param, if non-nil,
// carries a declared host alignment.
type Load struct {
	Typ    Type
	Buffer string
	Index  Expr
	Image  *Image
	Param  *Param
}

func NewLoad(t Type, buffer string, index Expr, image *Image, param *Param) *Load {
	return &Load{Typ: t, Buffer: buffer, Index: index, Image: image, Param: param}
}

func (n *Load) Type() Type { return n.Typ }
func (n *Load) String() string {
	tag := "internal"
	if n.Image != nil {
		tag = "image"
	} else if n.Param != nil {
		tag = fmt.Sprintf("param(host_align=%d)", n.Param.HostAlignBts)
	}
	return fmt.Sprintf("load(%s, %s, %s, %s)", n.Typ, n.Buffer, n.Index, tag)
}
func (n *Load) exprNode() {}

// WithIndex returns a shallow copy of the load with a new index expression,
// used by the rewriter to rebuild a Load node after mutating its children
// without aliasing the original.
func (n *Load) WithIndex(index Expr) *Load {
	cp := *n
	cp.Index = index
	return &cp
}

// Intrinsic tags the pure intrinsic functions the Shuffle Builder emits.
type Intrinsic int

const (
	ConcatVectors Intrinsic = iota
	ShuffleVector
)

func (i Intrinsic) String() string {
	switch i {
	case ConcatVectors:
		return "concat_vectors"
	case ShuffleVector:
		return "shuffle_vector"
	default:
		return "call"
	}
}

// Call is an intrinsic call: concat_vectors(v1, ..., vk) or
// shuffle_vector(v, i0, ..., i_{m-1}). The lane index arguments of a
// shuffle_vector call are represented as *IntImm in Args[1:].
type Call struct {
	Op   Intrinsic
	Typ  Type
	Args []Expr
}

func NewConcat(vecs ...Expr) *Call {
	lanes := 0
	var elem Type
	for _, v := range vecs {
		lanes += v.Type().Lanes
		elem = v.Type()
	}
	return &Call{Op: ConcatVectors, Typ: elem.WithLanes(lanes), Args: vecs}
}

// NewShuffle builds shuffle_vector(v, indices...) with a result type of
// len(indices) lanes over v's element type.
func NewShuffle(v Expr, indices []int) *Call {
	args := make([]Expr, 0, len(indices)+1)
	args = append(args, v)
	for _, idx := range indices {
		args = append(args, NewIntImm(int64(idx)))
	}
	return &Call{Op: ShuffleVector, Typ: v.Type().WithLanes(len(indices)), Args: args}
}

func (n *Call) Type() Type { return n.Typ }
func (n *Call) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Op.String() + "(" + strings.Join(parts, ", ") + ")"
}
func (n *Call) exprNode() {}

// ShuffleIndices returns the literal lane indices of a shuffle_vector call
// (Args[1:], each asserted to be an *IntImm). Panics if n is not a
// shuffle_vector call or an index argument is not a literal — both would
// violate invariant 2 of spec.md §3.
func (n *Call) ShuffleIndices() []int {
	if n.Op != ShuffleVector {
		panic("ir: ShuffleIndices() called on non-shuffle_vector call")
	}
	out := make([]int, 0, len(n.Args)-1)
	for _, a := range n.Args[1:] {
		im, ok := a.(*IntImm)
		if !ok {
			panic(fmt.Sprintf("ir: shuffle_vector index %s is not a literal", a))
		}
		out = append(out, int(im.Val))
	}
	return out
}

// Let is the expression-level let-binding: Name bound to Value within
// Body, where Body is itself an expression. (LetStmt, in stmt.go, is the
// statement-level counterpart.)
type Let struct {
	Name  string
	Value Expr
	Body  Expr
}

func (n *Let) Type() Type    { return n.Body.Type() }
func (n *Let) String() string { return fmt.Sprintf("let %s = %s in %s", n.Name, n.Value, n.Body) }
func (n *Let) exprNode()      {}
