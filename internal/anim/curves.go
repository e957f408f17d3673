package anim

import "math"

// Curve maps linear progress in [0, 1] to eased progress.
type Curve func(float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// EaseIn starts slow and accelerates, like a flap falling under gravity.
func EaseIn(t float64) float64 {
	return t * t
}

// EaseOut starts fast and decelerates.
func EaseOut(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInOut is a sine ease in both directions.
func EaseInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// CurveByName resolves a curve name used in configuration. Unknown names
// fall back to Linear and report false.
func CurveByName(name string) (Curve, bool) {
	switch name {
	case "", "linear":
		return Linear, true
	case "ease-in":
		return EaseIn, true
	case "ease-out":
		return EaseOut, true
	case "ease-in-out":
		return EaseInOut, true
	default:
		return Linear, false
	}
}
