package ir

import "testing"

func TestRampStrideLiteral(t *testing.T) {
	r := NewRamp(NewIntImm(0), NewIntImm(2), 8)
	v, ok := r.StrideLiteral()
	if !ok || v != 2 {
		t.Fatalf("StrideLiteral() = (%d, %v), want (2, true)", v, ok)
	}

	symbolic := NewRamp(NewIntImm(0), NewVar("s", ScalarType(Int32)), 8)
	if _, ok := symbolic.StrideLiteral(); ok {
		t.Fatal("StrideLiteral() reported a literal for a symbolic stride")
	}
}

func TestLoadString(t *testing.T) {
	internal := NewLoad(VecType(Int8, 16), "buf", NewRamp(NewIntImm(0), NewIntImm(1), 16), nil, nil)
	if got, want := internal.String(), "load(int8x16, buf, ramp(0, 1, 16), internal)"; got != want {
		t.Errorf("internal load String() = %q, want %q", got, want)
	}

	image := NewLoad(VecType(Int8, 16), "buf", NewRamp(NewIntImm(0), NewIntImm(1), 16), &Image{Name: "img"}, nil)
	if got, want := image.String(), "load(int8x16, buf, ramp(0, 1, 16), image)"; got != want {
		t.Errorf("image load String() = %q, want %q", got, want)
	}

	param := NewLoad(VecType(Int8, 16), "buf", NewRamp(NewIntImm(0), NewIntImm(1), 16), nil, &Param{Name: "p", HostAlignBts: 32})
	if got, want := param.String(), "load(int8x16, buf, ramp(0, 1, 16), param(host_align=32))"; got != want {
		t.Errorf("param load String() = %q, want %q", got, want)
	}
}

func TestLoadWithIndexDoesNotAliasOriginal(t *testing.T) {
	idx1 := NewRamp(NewIntImm(0), NewIntImm(1), 16)
	l1 := NewLoad(VecType(Int8, 16), "buf", idx1, nil, nil)
	idx2 := NewRamp(NewIntImm(4), NewIntImm(1), 16)
	l2 := l1.WithIndex(idx2)

	if l1.Index != idx1 {
		t.Error("WithIndex mutated the receiver's Index")
	}
	if l2.Index != idx2 {
		t.Error("WithIndex did not set the new Index on the copy")
	}
	if l1.Buffer != l2.Buffer {
		t.Error("WithIndex copy lost the Buffer field")
	}
}

func TestNewConcat(t *testing.T) {
	a := NewLoad(VecType(Int8, 8), "buf", NewRamp(NewIntImm(0), NewIntImm(1), 8), nil, nil)
	b := NewLoad(VecType(Int8, 8), "buf", NewRamp(NewIntImm(8), NewIntImm(1), 8), nil, nil)
	c := NewConcat(a, b)
	if c.Type().Lanes != 16 {
		t.Errorf("NewConcat(8-lane, 8-lane).Type().Lanes = %d, want 16", c.Type().Lanes)
	}
	if c.Op != ConcatVectors {
		t.Error("NewConcat did not produce a ConcatVectors call")
	}
}

func TestNewShuffleAndShuffleIndices(t *testing.T) {
	v := NewVar("v", VecType(Int8, 16))
	s := NewShuffle(v, []int{3, 4, 5})
	if s.Type().Lanes != 3 {
		t.Errorf("NewShuffle lane count = %d, want 3", s.Type().Lanes)
	}
	got := s.ShuffleIndices()
	want := []int{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("ShuffleIndices() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ShuffleIndices() = %v, want %v", got, want)
		}
	}
}

func TestShuffleIndicesPanicsOnNonShuffleCall(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling ShuffleIndices on a concat_vectors call")
		}
	}()
	a := NewLoad(VecType(Int8, 8), "buf", NewRamp(NewIntImm(0), NewIntImm(1), 8), nil, nil)
	NewConcat(a).ShuffleIndices()
}

func TestLetString(t *testing.T) {
	let := &Let{Name: "x", Value: NewIntImm(3), Body: NewVar("x", ScalarType(Int32))}
	if got, want := let.String(), "let x = 3 in x"; got != want {
		t.Errorf("Let.String() = %q, want %q", got, want)
	}
}
