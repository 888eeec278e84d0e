package common

import "math"

const (
	BaseWidth  = 960
	BaseHeight = 960
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Approach moves current toward target by the fraction rate.
func Approach(current, target, rate float64) float64 {
	return current + (target-current)*rate
}

// WrapAngle maps a radian angle into [-Pi, Pi).
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
