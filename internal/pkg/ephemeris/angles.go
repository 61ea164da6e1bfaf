package ephemeris

import "math"

// Normalize360 приводит угол в градусах к диапазону [0, 360).
func Normalize360(deg float64) float64 {
	return math.Mod(math.Mod(deg, 360)+360, 360)
}

// Normalize1 приводит долю к диапазону [0, 1).
func Normalize1(x float64) float64 {
	return math.Mod(math.Mod(x, 1)+1, 1)
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}

func rad2deg(r float64) float64 {
	return r * 180 / math.Pi
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
