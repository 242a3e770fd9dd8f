package blend

import "math"

// LoopTolerance absorbs float drift when deciding whether a length sits on a loop boundary.
const LoopTolerance = 0.01

// SubClip describes looping content inside a clip.
type SubClip struct {
	Offset float64 `yaml:"offset" json:"offset"`
	Speed  float64 `yaml:"speed" json:"speed"`
	Length float64 `yaml:"length" json:"length"`
}

// LoopLength is the duration of one loop in clip time. Zero when the sub-clip is degenerate.
func (s SubClip) LoopLength() float64 {
	if s.Speed <= 0 || s.Length <= 0 {
		return 0
	}
	return s.Length / s.Speed
}

// phase returns where clipLength falls inside the current loop, in [0, loop).
func (s SubClip) phase(clipLength, loop float64) float64 {
	mod := math.Mod(clipLength-s.Offset, loop)
	if mod < 0 {
		mod += loop
	}
	return mod
}

// PreviousLoop returns the last loop boundary strictly before clipLength.
// Clips shorter than one loop keep their length.
func PreviousLoop(clipLength float64, s SubClip) float64 {
	loop := s.LoopLength()
	if loop <= 0 || clipLength <= loop {
		return clipLength
	}

	mod := s.phase(clipLength, loop)
	if mod < LoopTolerance {
		// already on a boundary, go back a whole loop
		return clipLength - mod - loop
	}
	// within tolerance below a boundary the previous one is still clipLength-mod
	return clipLength - mod
}

// NextLoop returns the first loop boundary strictly after clipLength.
func NextLoop(clipLength float64, s SubClip) float64 {
	loop := s.LoopLength()
	if loop <= 0 {
		return clipLength
	}

	mod := s.phase(clipLength, loop)
	switch {
	case mod < LoopTolerance:
		return clipLength - mod + loop
	case loop-mod < LoopTolerance:
		return clipLength + (loop - mod) + loop
	default:
		return clipLength + (loop - mod)
	}
}

// OnBoundary reports whether clipLength ends within LoopTolerance of a loop
// boundary. Degenerate sub-clips have no boundaries to miss.
func OnBoundary(clipLength float64, s SubClip) bool {
	loop := s.LoopLength()
	if loop <= 0 {
		return true
	}
	mod := s.phase(clipLength, loop)
	return mod < LoopTolerance || loop-mod < LoopTolerance
}
