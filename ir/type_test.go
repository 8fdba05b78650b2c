package ir

import "testing"

func TestScalarKindBytes(t *testing.T) {
	cases := []struct {
		k    ScalarKind
		want int
	}{
		{Int8, 1}, {UInt8, 1},
		{Int16, 2}, {UInt16, 2},
		{Int32, 4}, {UInt32, 4}, {Float32, 4},
		{Int64, 8}, {UInt64, 8}, {Float64, 8},
	}
	for _, c := range cases {
		if got := c.k.Bytes(); got != c.want {
			t.Errorf("%s.Bytes() = %d, want %d", c.k, got, c.want)
		}
	}
}

func TestScalarKindBytesPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid scalar kind")
		}
	}()
	KindInvalid.Bytes()
}

func TestTypeString(t *testing.T) {
	if got := ScalarType(Int32).String(); got != "int32" {
		t.Errorf("ScalarType(Int32).String() = %q, want %q", got, "int32")
	}
	if got := VecType(Int8, 16).String(); got != "int8x16" {
		t.Errorf("VecType(Int8, 16).String() = %q, want %q", got, "int8x16")
	}
}

func TestTypeIsVector(t *testing.T) {
	if ScalarType(Int32).IsVector() {
		t.Error("scalar type reported as vector")
	}
	if !VecType(Int32, 4).IsVector() {
		t.Error("4-lane type not reported as vector")
	}
}

func TestTypeWithLanes(t *testing.T) {
	base := VecType(Int16, 8)
	wide := base.WithLanes(16)
	if wide.Lanes != 16 || wide.Scalar != Int16 {
		t.Errorf("WithLanes(16) = %+v, want lanes=16 scalar=Int16", wide)
	}
	if base.Lanes != 8 {
		t.Error("WithLanes mutated the receiver")
	}
}
