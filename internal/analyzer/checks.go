package analyzer

import (
	"fmt"

	"github.com/ivlev/actiondirector/internal/blend"
	"github.com/ivlev/actiondirector/internal/director"
)

const blendEpsilon = 0.0001

func clips(a *director.Asset) []*director.Clip {
	var out []*director.Clip
	for _, d := range a.Directables() {
		if c, ok := d.(*director.Clip); ok {
			out = append(out, c)
		}
	}
	return out
}

// OverlapChecker reports clips whose current range is illegal under their track.
type OverlapChecker struct{}

func (OverlapChecker) Check(a *director.Asset) []Finding {
	var out []Finding
	for _, c := range clips(a) {
		if director.HasValidTime(c) {
			continue
		}
		out = append(out, Finding{
			Node:     c,
			Rule:     "overlap",
			Severity: SeverityError,
			Message:  fmt.Sprintf("[%.3f, %.3f] overlaps a sibling", c.StartTime(), c.EndTime()),
		})
	}
	return out
}

// BlendChecker reports clips whose blend ramps meet with no full-weight plateau.
type BlendChecker struct{}

func (BlendChecker) Check(a *director.Asset) []Finding {
	var out []Finding
	for _, c := range clips(a) {
		in, outBlend := c.BlendIn(), c.BlendOut()
		if in+outBlend <= c.Length()+blendEpsilon {
			continue
		}
		out = append(out, Finding{
			Node:     c,
			Rule:     "blend",
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("blend in %.3f + out %.3f exceeds length %.3f", in, outBlend, c.Length()),
		})
	}
	return out
}

// SubClipChecker reports looping clips that do not end on a loop boundary.
type SubClipChecker struct{}

func (SubClipChecker) Check(a *director.Asset) []Finding {
	var out []Finding
	for _, c := range clips(a) {
		sub, ok := c.SubClip()
		if !ok {
			continue
		}
		if sub.LoopLength() <= 0 {
			out = append(out, Finding{
				Node:     c,
				Rule:     "subclip",
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("degenerate sub-clip (speed %.3f, length %.3f)", sub.Speed, sub.Length),
			})
			continue
		}
		if blend.OnBoundary(c.Length(), sub) {
			continue
		}
		out = append(out, Finding{
			Node:     c,
			Rule:     "subclip",
			Severity: SeverityInfo,
			Message: fmt.Sprintf("length %.3f is between loop boundaries %.3f and %.3f",
				c.Length(), blend.PreviousLoop(c.Length(), sub), blend.NextLoop(c.Length(), sub)),
		})
	}
	return out
}

// FaultChecker turns the faults of the last validation pass into findings.
type FaultChecker struct{}

func (FaultChecker) Check(a *director.Asset) []Finding {
	var out []Finding
	for _, f := range a.Faults() {
		out = append(out, Finding{
			Node:     f.Node,
			Rule:     "faults",
			Severity: SeverityError,
			Message:  f.Err.Error(),
		})
	}
	return out
}

// Multi runs several checkers in order and concatenates their findings.
type Multi []Checker

func (m Multi) Check(a *director.Asset) []Finding {
	var out []Finding
	for _, c := range m {
		out = append(out, c.Check(a)...)
	}
	return out
}
