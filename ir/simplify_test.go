package ir

import "testing"

func x() *Var { return NewVar("x", ScalarType(Int32)) }

func TestSimplifyConstantFold(t *testing.T) {
	e := NewBinary(OpAdd, NewIntImm(3), NewIntImm(4))
	got := Simplify(e)
	im, ok := got.(*IntImm)
	if !ok || im.Val != 7 {
		t.Fatalf("Simplify(3+4) = %v, want IntImm{7}", got)
	}
}

func TestSimplifyAddThenSubtractCancels(t *testing.T) {
	// (x + 3) - 3 => x, the exact shape rewriteDenseUnitStride produces
	// when it builds baseLow = base - lanesOff for a base of x + 3 that is
	// misaligned by 3 lanes.
	e := NewBinary(OpSub, NewBinary(OpAdd, x(), NewIntImm(3)), NewIntImm(3))
	got := Simplify(e)
	v, ok := got.(*Var)
	if !ok || v.Name != "x" {
		t.Fatalf("Simplify((x+3)-3) = %v, want Var{x}", got)
	}
}

func TestSimplifyAddChainMergesConstants(t *testing.T) {
	// (x + 5) + 11 => x + 16, not a three-level deep tree.
	e := NewBinary(OpAdd, NewBinary(OpAdd, x(), NewIntImm(5)), NewIntImm(11))
	got := Simplify(e)
	bin, ok := got.(*BinaryExpr)
	if !ok || bin.Op != OpAdd {
		t.Fatalf("Simplify((x+5)+11) = %v, want a single BinaryExpr", got)
	}
	if _, ok := bin.Left.(*Var); !ok {
		t.Fatalf("Simplify((x+5)+11).Left = %v, want Var{x}", bin.Left)
	}
	rc, ok := bin.Right.(*IntImm)
	if !ok || rc.Val != 16 {
		t.Fatalf("Simplify((x+5)+11).Right = %v, want IntImm{16}", bin.Right)
	}
}

func TestSimplifyAddZeroIdentity(t *testing.T) {
	got := Simplify(NewBinary(OpAdd, x(), NewIntImm(0)))
	if _, ok := got.(*Var); !ok {
		t.Fatalf("Simplify(x+0) = %v, want Var{x}", got)
	}
}

func TestSimplifyLeavesUnrecognizedShapeAlone(t *testing.T) {
	// A division is outside what this canonicalizer folds unless both
	// sides are already constant.
	e := NewBinary(OpDiv, x(), NewIntImm(2))
	got := Simplify(e)
	bin, ok := got.(*BinaryExpr)
	if !ok || bin.Op != OpDiv {
		t.Fatalf("Simplify(x/2) = %v, want unchanged BinaryExpr", got)
	}
}
