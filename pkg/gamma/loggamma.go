package gamma

import "math"

// LogGamma returns ln|Γ(a)|.
func LogGamma(a float64) float64 {
	if math.IsNaN(a) {
		return math.NaN()
	}
	lg, _ := math.Lgamma(a)
	return lg
}
