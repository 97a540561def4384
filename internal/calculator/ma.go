package calculator

import "math"

// ema smooths values with α = 2/(span+1), seeded with the first value, over the whole history.
func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		// prev + α(x-prev) keeps a constant input exactly constant.
		out[i] = out[i-1] + alpha*(values[i]-out[i-1])
	}
	return out
}

func mean(window []float64) float64 {
	sum := 0.0
	for _, v := range window {
		sum += v
	}
	return sum / float64(len(window))
}

// sampleStdDev uses the n-1 denominator. A single observation has no dispersion.
func sampleStdDev(window []float64, m float64) float64 {
	if len(window) < 2 {
		return 0
	}
	ss := 0.0
	for _, v := range window {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(window)-1))
}
