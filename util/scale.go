package util

import "time"

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MapRange maps v from [inLo, inHi] to [outLo, outHi] linearly, clamping
// the result to the output interval.
func MapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	out := outLo + (v-inLo)*(outHi-outLo)/(inHi-inLo)
	return Clamp(out, outLo, outHi)
}

// Slope computes the per-second rate of change between two readings.
// Returns 0 when the elapsed time is not positive.
func Slope(prev, curr float64, dt time.Duration) float64 {
	if dt <= 0 {
		return 0
	}
	return (curr - prev) / dt.Seconds()
}
