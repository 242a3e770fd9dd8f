package timeline

import "math"

// DefaultFrameRate is used when a non-positive rate is given.
const DefaultFrameRate = 30

// Step moves current by one interval. Stepping forward past the end wraps
// to zero; stepping backward from zero wraps to the end.
func Step(current, length, interval float64, forward bool) float64 {
	if interval <= 0 {
		return current
	}

	if forward {
		if current >= length {
			return 0
		}
		return math.Min(current+interval, length)
	}

	if current <= 0 {
		return length
	}
	return math.Max(current-interval, 0)
}

// Snap rounds t to the nearest multiple of interval.
func Snap(t, interval float64) float64 {
	if interval <= 0 {
		return t
	}
	return math.Round(t/interval) * interval
}

// FrameInterval is the duration of a single frame.
func FrameInterval(fps int) float64 {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return 1 / float64(fps)
}
