package align

import (
	"testing"

	"github.com/xyproto/loadalign/ir"
)

func TestComputeModRemConstant(t *testing.T) {
	ctx := NewContext()
	got := ComputeModRem(ir.NewIntImm(7), ctx)
	if got.M != 0 || got.R != 7 {
		t.Fatalf("ComputeModRem(7) = %+v, want {M:0 R:7}", got)
	}
}

func TestComputeModRemVarLookup(t *testing.T) {
	ctx := NewContext()
	ctx.Push("x", ModRem{M: 16, R: 0})
	defer ctx.Pop("x")
	v := ir.NewVar("x", ir.ScalarType(ir.Int32))
	got := ComputeModRem(v, ctx)
	if got != (ModRem{M: 16, R: 0}) {
		t.Fatalf("ComputeModRem(x) = %+v, want {16 0}", got)
	}
}

func TestComputeModRemUnboundVarIsNoInfo(t *testing.T) {
	ctx := NewContext()
	v := ir.NewVar("mystery", ir.ScalarType(ir.Int32))
	if got := ComputeModRem(v, ctx); got != NoInfo {
		t.Fatalf("ComputeModRem(unbound) = %+v, want NoInfo", got)
	}
}

func TestComputeModRemAddConstantShift(t *testing.T) {
	ctx := NewContext()
	ctx.Push("x", ModRem{M: 16, R: 0})
	defer ctx.Pop("x")
	e := ir.NewBinary(ir.OpAdd, ir.NewVar("x", ir.ScalarType(ir.Int32)), ir.NewIntImm(3))
	got := ComputeModRem(e, ctx)
	if got != (ModRem{M: 16, R: 3}) {
		t.Fatalf("ComputeModRem(x+3) = %+v, want {16 3}", got)
	}
}

func TestComputeModRemSubConstant(t *testing.T) {
	ctx := NewContext()
	ctx.Push("x", ModRem{M: 16, R: 3})
	defer ctx.Pop("x")
	e := ir.NewBinary(ir.OpSub, ir.NewVar("x", ir.ScalarType(ir.Int32)), ir.NewIntImm(3))
	got := ComputeModRem(e, ctx)
	if got != (ModRem{M: 16, R: 0}) {
		t.Fatalf("ComputeModRem(x-3) = %+v, want {16 0}", got)
	}
}

func TestComputeModRemMulByConstant(t *testing.T) {
	ctx := NewContext()
	v := ir.NewVar("k", ir.ScalarType(ir.Int32))
	e := ir.NewBinary(ir.OpMul, ir.NewIntImm(16), v)
	got := ComputeModRem(e, ctx)
	// k is unbound (NoInfo, M=1); scaling by 16 gives the symbolic
	// summary {16 0} ("a multiple of 16"), never an exact constant:
	if got.M == 0 {
		t.Fatalf("ComputeModRem(16*k) with unbound k = %+v, want symbolic or NoInfo, not exact", got)
	}
}

func TestComputeModRemMulOfConstantBase(t *testing.T) {
	ctx := NewContext()
	ctx.Push("k", ModRem{M: 0, R: 5})
	defer ctx.Pop("k")
	v := ir.NewVar("k", ir.ScalarType(ir.Int32))
	e := ir.NewBinary(ir.OpMul, ir.NewIntImm(16), v)
	got := ComputeModRem(e, ctx)
	if got.M != 0 || got.R != 80 {
		t.Fatalf("ComputeModRem(16*5) = %+v, want {M:0 R:80}", got)
	}
}

func TestComputeModRemDivisionIsNoInfo(t *testing.T) {
	ctx := NewContext()
	e := ir.NewBinary(ir.OpDiv, ir.NewIntImm(10), ir.NewIntImm(2))
	if got := ComputeModRem(e, ctx); got != NoInfo {
		t.Fatalf("ComputeModRem(10/2) = %+v, want NoInfo (division not summarized)", got)
	}
}

func TestReduceModuloKnownWhenModulusDivides(t *testing.T) {
	ctx := NewContext()
	ctx.Push("x", ModRem{M: 16, R: 3})
	defer ctx.Pop("x")
	v := ir.NewVar("x", ir.ScalarType(ir.Int32))
	off, ok := ReduceModulo(v, 16, ctx)
	if !ok || off != 3 {
		t.Fatalf("ReduceModulo(x, 16) = (%d, %v), want (3, true)", off, ok)
	}
}

func TestReduceModuloUnknownWhenModulusDoesNotDivide(t *testing.T) {
	ctx := NewContext()
	ctx.Push("x", ModRem{M: 8, R: 0})
	defer ctx.Pop("x")
	v := ir.NewVar("x", ir.ScalarType(ir.Int32))
	_, ok := ReduceModulo(v, 16, ctx)
	if ok {
		t.Fatal("ReduceModulo(x, 16) reported known when summary modulus 8 is not a multiple of 16")
	}
}

func TestReduceModuloOfExactConstant(t *testing.T) {
	ctx := NewContext()
	off, ok := ReduceModulo(ir.NewIntImm(19), 16, ctx)
	if !ok || off != 3 {
		t.Fatalf("ReduceModulo(19, 16) = (%d, %v), want (3, true)", off, ok)
	}
}
