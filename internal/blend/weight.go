package blend

// Weight returns the blend weight at local time t of a span of the given length.
// Ramps may overlap when blendIn+blendOut exceeds length; there is no plateau then.
func Weight(t, length, blendIn, blendOut float64) float64 {
	if t <= 0 {
		if blendIn <= 0 {
			return 1
		}
		return 0
	}

	if t >= length {
		if blendOut <= 0 {
			return 1
		}
		return 0
	}

	if t < blendIn {
		return t / blendIn
	}

	if t > length-blendOut {
		return (length - t) / blendOut
	}

	return 1
}

// Clamp limits v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
