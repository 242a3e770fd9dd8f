package timeline

import (
	"math"

	"github.com/ivlev/actiondirector/internal/director"
)

// ClipSample is the state of one clip at a sampled asset time.
type ClipSample struct {
	Clip      *director.Clip
	LocalTime float64 // time since the clip started, clamped to its length
	Weight    float64
	// SubClipTime is the position inside the looping content, or -1 when
	// the clip has none.
	SubClipTime float64
}

// Sample returns every active clip whose span contains t, in flattened
// (paint) order. It reads the asset only and can be called every tick.
func Sample(a *director.Asset, t float64) []ClipSample {
	var out []ClipSample
	for _, d := range a.Directables() {
		c, ok := d.(*director.Clip)
		if !ok || !c.IsActive() {
			continue
		}
		if t < c.StartTime() || t > c.EndTime() {
			continue
		}

		local := director.ToLocalTime(c, t)
		out = append(out, ClipSample{
			Clip:        c,
			LocalTime:   local,
			Weight:      c.Weight(local),
			SubClipTime: subClipTime(c, local),
		})
	}
	return out
}

// subClipTime maps clip-local time into the loop of the clip's content.
func subClipTime(c *director.Clip, local float64) float64 {
	sub, ok := c.SubClip()
	if !ok {
		return -1
	}
	if sub.Speed <= 0 || sub.Length <= 0 {
		return 0
	}
	pos := math.Mod(sub.Offset+local*sub.Speed, sub.Length)
	if pos < 0 {
		pos += sub.Length
	}
	return pos
}

// Weights sums sample weights per track, capped at 1.
func Weights(samples []ClipSample) map[*director.Track]float64 {
	out := make(map[*director.Track]float64)
	for _, s := range samples {
		tr := s.Clip.Track()
		out[tr] = math.Min(out[tr]+s.Weight, 1)
	}
	return out
}
