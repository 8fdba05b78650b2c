// param.go - external collaborator handles referenced by Load nodes.
// Mirrors the teacher's pattern of small handle-like structs with a
// Defined()/zero-value-means-absent convention (see address_types.go,
// where the zero VirtualAddr is a legitimate value but callers gate on
// nil *AddressSpace; here Image/Param are themselves pointers so "absent"
// is simply nil, which is the idiomatic Go rendition of spec.md's
// "optional handle").
package ir

// Image marks a Load's buffer as external: the base address is opaque
// and not known to satisfy any particular alignment. Its fields are not
// inspected by the rewriter; only its presence (non-nil) matters.
type Image struct {
	Name string
}

// Param optionally carries a user-declared host alignment, in bytes, for
// a buffer. Nil means "no declared alignment" (buffer is internal, or
// external with no alignment promise).
type Param struct {
	Name         string
	HostAlignBts int
}

// Defined reports whether p is a non-nil param handle.
func (p *Param) Defined() bool { return p != nil }

// HostAlignment returns the declared host alignment in bytes. Panics if
// called on a nil Param; callers must check Defined first, matching the
// teacher's convention of failing loudly on misuse of optional handles
// (see compiler_state.go's nil-checked writer fields).
func (p *Param) HostAlignment() int {
	if p == nil {
		panic("ir: HostAlignment() called on undefined Param")
	}
	return p.HostAlignBts
}
