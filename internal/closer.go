package internal

// Is a nearer than b along the ray? Both edges must cross the ray.
//
// When both edges meet the ray at the same point, which happens when they
// share a vertex on it, the distances tie. Then a is nearer if, seen from the
// shared point, it heads across the segment from the viewpoint to b's far end:
// it sits between the viewpoint and b just past the shared point. An edge is
// never nearer than itself.
func IsCloser(a, b *Edge, ray *Ray) bool {
	pointA := ray.Intersect(a)
	pointB := ray.Intersect(b)
	if pointA == nil || pointB == nil {
		fatalf(ErrAmbiguousOrdering, "can't order %v and %v along %v", a, b, ray)
	}

	if pointA.Equal(pointB) {
		farA, farB := a.Other(pointA), b.Other(pointA)
		// Same segment, maybe reversed, as with the two sides of a thin wall
		if farA.Equal(farB) {
			return false
		}
		towardA := NewRay(pointA, farA)
		sightOfB := NewEdge(ray.Start, farB, false)
		return towardA.Intersect(sightOfB) != nil
	}

	return Distance(ray.Start, pointA) < Distance(ray.Start, pointB)
}
