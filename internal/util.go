package internal

import "math"

// To compensate for imprecision in floats, point equality is tolerance based.
// Intersections computed along different rays land on slightly different
// coordinates for what is geometrically the same vertex, and they must compare
// equal.
const Tolerance = 1e-4

// Angles closer than this are the same sweep direction.
const AngleTolerance = 1e-9

// The initial sweep ray must pass at least this far from every vertex.
const SeedClearance = 10 * Tolerance

// Padding between the scene and the invisible bounding box that terminates
// every sweep ray.
const BoundsMargin = 20

func Equal(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// Bring an angle into [0, 2π). Values a hair below a full turn are treated as
// zero, since they come from rounding on rays that point the same way.
func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	if angle >= 2*math.Pi-AngleTolerance {
		angle = 0
	}
	return angle
}
