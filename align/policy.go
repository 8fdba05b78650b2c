// policy.go - the Target Policy (spec.md §4.1). Grounded on the
// teacher's architecture-selection idiom: arch.go's small Architecture
// interface picked by a machine-name string, and main.go's Arch/OS enums
// with String()/Parse pairs. Here the "architecture" being selected is
// not an instruction set but a required alignment, and the per-loop
// override (spec.md: "switches its required alignment... according to a
// device-mode feature flag") is the analogue of the teacher's codegen.go
// VerboseMode save/restore around a scoped region (see codegen.go's
// `oldVerbose := VerboseMode; ...; VerboseMode = oldVerbose`).
package align

import (
	"fmt"

	"github.com/xyproto/loadalign/ir"
)

// Feature is a bitmask of target features relevant to the wide-vector DSP
// override. Named after spec.md §6's has_feature(HVX_64 | HVX_128).
type Feature uint32

const (
	FeatureHVX64 Feature = 1 << iota
	FeatureHVX128
)

// HasFeature reports whether f includes the given feature bit.
func (f Feature) HasFeature(bit Feature) bool { return f&bit != 0 }

// Target describes the architecture the rewriter is targeting: the
// natural (non-DSP) vector width in bytes, and the feature bits that
// govern the wide-vector DSP override.
type Target struct {
	// NaturalVectorBytes seeds the Policy's required alignment before any
	// device-specific loop is entered (spec.md §6:
	// natural_vector_size(Int8)).
	NaturalVectorBytes int
	Features           Feature
}

// Policy derives required alignment from the active Target, and updates
// it while traversing device-specific loops. The zero value is not
// valid; use NewPolicy.
type Policy struct {
	target             Target
	requiredAlignBytes int
}

// NewPolicy returns a Policy seeded from t's natural vector width.
func NewPolicy(t Target) *Policy {
	return &Policy{target: t, requiredAlignBytes: t.NaturalVectorBytes}
}

// RequiredAlignment returns the currently active required alignment, in
// bytes.
func (p *Policy) RequiredAlignment() int { return p.requiredAlignBytes }

// NaturalVectorLanes returns required_alignment / sizeof(elem), the
// lane count a synthesized aligned load should carry for elem (spec.md
// §4.1).
func (p *Policy) NaturalVectorLanes(elem ir.ScalarKind) int {
	bytes := elem.Bytes()
	if bytes <= 0 || p.requiredAlignBytes%bytes != 0 {
		panic(fmt.Sprintf("align: required alignment %d bytes is not a multiple of element width %d", p.requiredAlignBytes, bytes))
	}
	return p.requiredAlignBytes / bytes
}

// EnterDevice applies the §4.1 device-loop override for deviceAPI and
// returns a restore function the caller must invoke on every exit path
// (including a panic unwinding through a deferred call), mirroring the
// teacher's save/restore of VerboseMode around a scoped region. When
// deviceAPI does not designate the wide-vector DSP, EnterDevice is a
// no-op and the returned restore function does nothing.
func (p *Policy) EnterDevice(deviceAPI ir.DeviceAPI) (restore func()) {
	if deviceAPI != ir.DeviceHVX {
		return func() {}
	}
	prev := p.requiredAlignBytes
	switch {
	case p.target.Features.HasFeature(FeatureHVX128):
		p.requiredAlignBytes = 128
	case p.target.Features.HasFeature(FeatureHVX64):
		p.requiredAlignBytes = 64
	default:
		invariantf("For loop tagged %s but target declares neither HVX_64 nor HVX_128", deviceAPI)
	}
	Tracef("align: entering device loop %s, required alignment now %d bytes", deviceAPI, p.requiredAlignBytes)
	return func() {
		p.requiredAlignBytes = prev
		Tracef("align: leaving device loop %s, required alignment restored to %d bytes", deviceAPI, prev)
	}
}
