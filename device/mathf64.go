package device

import "math"

// Thin named wrappers around the math package so Sqrt/Exp/Log in ops.go can
// pass them directly as the func(float64) float64 UnaryCore needs; math32's
// equivalents cover the float32 case.
func sqrtFloat64(x float64) float64 { return math.Sqrt(x) }
func expFloat64(x float64) float64  { return math.Exp(x) }
func logFloat64(x float64) float64  { return math.Log(x) }
