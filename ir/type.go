// type.go - scalar/vector type descriptions for the IR consumed by the
// load alignment rewriter. Modeled on the teacher's strongly-typed address
// wrappers in address_types.go: small value types with a handful of
// derived-fact methods, rather than bare ints passed around untyped.
package ir

import "fmt"

// ScalarKind enumerates the element types the rewriter needs to reason
// about byte widths for. Only integer/float kinds that can appear as a
// Load's element type are listed; anything else passes through the pass
// untouched.
type ScalarKind int

const (
	KindInvalid ScalarKind = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
)

func (k ScalarKind) String() string {
	switch k {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case UInt8:
		return "uint8"
	case UInt16:
		return "uint16"
	case UInt32:
		return "uint32"
	case UInt64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// Bytes returns the element width in bytes.
func (k ScalarKind) Bytes() int {
	switch k {
	case Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Int64, UInt64, Float64:
		return 8
	default:
		panic(fmt.Sprintf("ir: Bytes() on invalid scalar kind %d", k))
	}
}

// Type is the result type of an expression: a scalar element kind plus a
// lane count. Lanes == 1 means scalar; Lanes > 1 means vector.
type Type struct {
	Scalar ScalarKind
	Lanes  int
}

// ScalarType returns the 1-lane type for k.
func ScalarType(k ScalarKind) Type { return Type{Scalar: k, Lanes: 1} }

// VecType returns the n-lane vector type over k.
func VecType(k ScalarKind, n int) Type { return Type{Scalar: k, Lanes: n} }

// IsVector reports whether t has more than one lane.
func (t Type) IsVector() bool { return t.Lanes > 1 }

// Bytes returns the element width in bytes (not the total vector width).
func (t Type) Bytes() int { return t.Scalar.Bytes() }

// WithLanes returns a copy of t with the lane count replaced.
func (t Type) WithLanes(n int) Type { return Type{Scalar: t.Scalar, Lanes: n} }

func (t Type) String() string {
	if t.Lanes <= 1 {
		return t.Scalar.String()
	}
	return fmt.Sprintf("%sx%d", t.Scalar, t.Lanes)
}
