package field

import gomath "math"

// saturate clamps x to [0, 1].
func saturate(x float64) float64 {
	return clampf(x, 0, 1)
}

// smoothstep is the cubic hermite step over [0, 1].
func smoothstep(x float64) float64 {
	x = saturate(x)
	return x * x * (3 - 2*x)
}

// smoothMin blends the minimum of a and b over a transition width k.
func smoothMin(a, b, k float64) float64 {
	h := saturate(0.5 + 0.5*(b-a)/k)
	return lerp(b, a, h) - k*h*(1-h)
}

// smoothMax blends the maximum of a and b over a transition width k,
// avoiding the C1 discontinuity of a hard max at blend boundaries.
func smoothMax(a, b, k float64) float64 {
	h := saturate(0.5 + 0.5*(b-a)/k)
	return lerp(a, b, h) + k*h*(1-h)
}

// terrace shapes x into plateaus. power controls how sharply each step
// transitions; higher power gives flatter treads and steeper risers.
func terrace(x, power float64) float64 {
	f := gomath.Floor(x)
	r := x - f
	return f + gomath.Pow(smoothstep(r), power)
}
