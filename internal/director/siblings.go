package director

import (
	"math"

	"github.com/ivlev/actiondirector/internal/blend"
)

// Length is the span between a node's start and end time.
func Length(d Directable) float64 {
	return d.EndTime() - d.StartTime()
}

// ToLocalTime converts an asset time into the node's local time, clamped to its span.
func ToLocalTime(d Directable, t float64) float64 {
	return blend.Clamp(t-d.StartTime(), 0, Length(d))
}

func ToLocalTimeUnclamped(d Directable, t float64) float64 {
	return t - d.StartTime()
}

func sameType(a, b Directable) bool {
	return a.Kind() == b.Kind() && a.TypeName() == b.TypeName()
}

// CanCrossBlendWith reports whether two nodes may overlap: they must be of the
// same concrete type and at least one of them must allow cross-blending.
func CanCrossBlendWith(d, other Directable) bool {
	if d == nil || other == nil {
		return false
	}
	return (d.CanCrossBlend() || other.CanCrossBlend()) && sameType(d, other)
}

// CanBlendIn reports whether the node has an editable blend-in.
func CanBlendIn(d Directable) bool {
	c, ok := d.(*Clip)
	return ok && c.Variant() == VariantCrossBlend
}

func CanBlendOut(d Directable) bool {
	return CanBlendIn(d)
}

// CanScale reports whether the node's length can be edited.
func CanScale(d Directable) bool {
	c, ok := d.(*Clip)
	return ok && c.Variant() != VariantSignal
}

// PreviousSibling is the child of parent with the greatest start time
// strictly before d's start time.
func PreviousSibling(d, parent Directable) Directable {
	if parent == nil {
		return nil
	}
	var prev Directable
	for _, s := range parent.Children() {
		if s == d || s.StartTime() >= d.StartTime() {
			continue
		}
		if prev == nil || s.StartTime() >= prev.StartTime() {
			prev = s
		}
	}
	return prev
}

// NextSibling is the child of parent with the least start time strictly
// after d's start time.
func NextSibling(d, parent Directable) Directable {
	if parent == nil {
		return nil
	}
	var next Directable
	for _, s := range parent.Children() {
		if s == d || s.StartTime() <= d.StartTime() {
			continue
		}
		if next == nil || s.StartTime() < next.StartTime() {
			next = s
		}
	}
	return next
}

// CoincidentSiblings returns the siblings occupying exactly d's time range.
func CoincidentSiblings(d Directable) []Directable {
	parent := d.Parent()
	if parent == nil {
		return nil
	}
	var out []Directable
	for _, s := range parent.Children() {
		if s == d {
			continue
		}
		if math.Abs(s.StartTime()-d.StartTime()) <= timeEpsilon && math.Abs(s.EndTime()-d.EndTime()) <= timeEpsilon {
			out = append(out, s)
		}
	}
	return out
}

// CanValidTime reports whether d may occupy [start, end] under parent.
// Siblings are found from d's current start time. A cross-blendable
// neighbour relaxes the bound to its far edge, but d may neither sit fully
// inside it nor fully cover it.
func CanValidTime(d, parent Directable, start, end float64) bool {
	if parent == nil {
		return true
	}
	prev := PreviousSibling(d, parent)
	next := NextSibling(d, parent)

	limitStart := 0.0
	limitEnd := math.MaxFloat64

	if prev != nil {
		limitStart = prev.EndTime()
		if CanCrossBlendWith(d, prev) {
			limitStart = prev.StartTime()
			if overlapsWhole(start, end, prev) {
				return false
			}
		}
	}

	if next != nil {
		limitEnd = next.StartTime()
		if CanCrossBlendWith(d, next) {
			limitEnd = next.EndTime()
			if overlapsWhole(start, end, next) {
				return false
			}
		}
	}

	if limitStart-start > timeEpsilon {
		return false
	}
	if end-limitEnd > timeEpsilon {
		return false
	}
	return true
}

// CanValidRange checks [start, end] against d's current parent.
func CanValidRange(d Directable, start, end float64) bool {
	return CanValidTime(d, d.Parent(), start, end)
}

// HasValidTime checks d's current range against its parent.
func HasValidTime(d Directable) bool {
	return CanValidRange(d, d.StartTime(), d.EndTime())
}

// overlapsWhole is true when [start, end] lies strictly inside s or covers all of s.
func overlapsWhole(start, end float64, s Directable) bool {
	inside := start > s.StartTime() && end < s.EndTime()
	covers := start-s.StartTime() <= timeEpsilon && s.EndTime()-end <= timeEpsilon
	return inside || covers
}

// Weight is the node's blend weight at local time t using its own blend values.
func Weight(d Directable, t float64) float64 {
	return blend.Weight(t, Length(d), d.BlendIn(), d.BlendOut())
}

// WeightWith uses the same duration for both ramps.
func WeightWith(d Directable, t, blendInOut float64) float64 {
	return blend.Weight(t, Length(d), blendInOut, blendInOut)
}

// PreviousLoopLocalTime is the last sub-clip loop boundary before the node's
// current length, or its length when it has no sub-clip.
func PreviousLoopLocalTime(d SubClipContainable) float64 {
	sub, ok := d.SubClip()
	if !ok {
		return Length(d)
	}
	return blend.PreviousLoop(Length(d), sub)
}

// NextLoopLocalTime is the first sub-clip loop boundary after the node's current length.
func NextLoopLocalTime(d SubClipContainable) float64 {
	sub, ok := d.SubClip()
	if !ok {
		return Length(d)
	}
	return blend.NextLoop(Length(d), sub)
}
