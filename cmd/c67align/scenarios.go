// scenarios.go - concrete scenarios 1-8 from spec.md §8, built as
// sample IR so the demo CLI has something to rewrite and print. The
// device-loop scenario (9) is not included: a Scenario holds an
// expression, not a For statement. Keeping
// worked examples as runnable fixtures, rather than only as prose, is the
// same instinct behind the teacher's *_test.go files' use of literal
// Vibe67 source snippets (see arena_test.go) — except here the fixture is
// the IR itself, since this pass has no surface syntax of its own.
package main

import (
	"github.com/xyproto/loadalign/align"
	"github.com/xyproto/loadalign/ir"
)

// Scenario is one runnable example: a target, optional exogenous
// alignment facts, and an expression to rewrite.
type Scenario struct {
	Name   string
	Target align.Target
	Assume map[string]align.ModRem
	Expr   ir.Expr
}

func hvxTarget() align.Target {
	return align.Target{NaturalVectorBytes: 16, Features: align.FeatureHVX64 | align.FeatureHVX128}
}

// Scenarios returns worked examples 1-8 from spec.md §8, in order.
func Scenarios() []Scenario {
	buf := "buf"
	x := ir.NewVar("x", ir.ScalarType(ir.Int32))
	k := ir.NewVar("k", ir.ScalarType(ir.Int32))
	b := ir.NewVar("b", ir.ScalarType(ir.Int32))

	return []Scenario{
		{
			Name:   "1-narrow-stride1-aligned-base",
			Target: hvxTarget(),
			Expr:   ir.NewLoad(ir.VecType(ir.Int8, 8), buf, ir.NewRamp(ir.NewIntImm(0), ir.NewIntImm(1), 8), nil, nil),
		},
		{
			Name:   "2-dense-misaligned-by-3",
			Target: hvxTarget(),
			Assume: map[string]align.ModRem{"x": {M: 16, R: 0}},
			Expr: ir.NewLoad(ir.VecType(ir.Int8, 16), buf,
				ir.NewRamp(ir.NewBinary(ir.OpAdd, x, ir.NewIntImm(3)), ir.NewIntImm(1), 16), nil, nil),
		},
		{
			Name:   "3-dense-unknown-base-external-param",
			Target: hvxTarget(),
			Expr: ir.NewLoad(ir.VecType(ir.Int8, 16), buf,
				ir.NewRamp(x, ir.NewIntImm(1), 16), nil, &ir.Param{Name: "p", HostAlignBts: 16}),
		},
		{
			Name:   "4-dense-proven-aligned",
			Target: hvxTarget(),
			Expr: ir.NewLoad(ir.VecType(ir.Int8, 16), buf,
				ir.NewRamp(ir.NewBinary(ir.OpMul, ir.NewIntImm(16), k), ir.NewIntImm(1), 16), nil, nil),
		},
		{
			Name:   "5-stride2-internal-no-shift",
			Target: hvxTarget(),
			Expr: ir.NewLoad(ir.VecType(ir.Int8, 16), buf,
				ir.NewRamp(ir.NewIntImm(0), ir.NewIntImm(2), 16), nil, nil),
		},
		{
			Name:   "6-stride2-param-unknown-base-shift",
			Target: hvxTarget(),
			Expr: ir.NewLoad(ir.VecType(ir.Int8, 16), buf,
				ir.NewRamp(x, ir.NewIntImm(2), 16), nil, &ir.Param{Name: "p", HostAlignBts: 16}),
		},
		{
			Name:   "7-oversized-48-lanes",
			Target: hvxTarget(),
			Expr: ir.NewLoad(ir.VecType(ir.Int8, 48), buf,
				ir.NewRamp(b, ir.NewIntImm(1), 48), nil, nil),
		},
		{
			Name:   "8-external-image-passthrough",
			Target: hvxTarget(),
			Expr: ir.NewLoad(ir.VecType(ir.Int8, 16), buf,
				ir.NewRamp(x, ir.NewIntImm(1), 16), &ir.Image{Name: "img"}, nil),
		},
	}
}

// RunScenario rewrites one scenario and returns the input/output strings
// and any surviving-unaligned-load findings.
func RunScenario(s Scenario) (input, output string, findings []align.Finding) {
	input = s.Expr.String()
	r := align.NewRewriter(s.Target)
	for name, mr := range s.Assume {
		r.Context().Assume(name, mr)
	}
	out := r.RewriteExpr(s.Expr)
	output = out.String()
	findings = align.FindUnalignedLoadsInExpr(out, s.Target)
	return input, output, findings
}
