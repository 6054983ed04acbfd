package internal

import "math"

// Build a polygon from an ordered cycle of at least two points, and wire each
// edge into its endpoints. Two points make a thin wall: the edges a→b and b→a,
// which keeps every vertex at exactly two incident edges.
//
// A point already used by another polygon (or twice in this one) fails with
// ErrDegreeViolation before any point is touched.
func NewPolygon(points []*Point, visible ...bool) (polygon *Polygon, err error) {
	defer func() {
		if recoveredErr := HandleVisibilityPanicRecover(recover()); recoveredErr != nil {
			polygon = nil
			err = recoveredErr
		}
	}()
	return buildPolygon(points, len(visible) == 0 || visible[0]), nil
}

func buildPolygon(points []*Point, visible bool) *Polygon {
	if len(points) < 2 {
		fatalf(ErrDegreeViolation, "polygon needs at least 2 points, got %d", len(points))
	}
	seen := make(PointSet, len(points))
	for i, p := range points {
		if p == nil {
			fatalf(ErrDegreeViolation, "polygon point %d is nil", i)
		}
		// Every occurrence of a point in the cycle costs it two incident edges
		if p.degree > 0 || seen.Has(p) {
			fatalf(ErrDegreeViolation, "vertex %v would have more than 2 incident edges", p)
		}
		seen.Add(p)
	}

	poly := &Polygon{Points: points, Visible: visible}
	poly.edges = make([]*Edge, 0, len(points))
	for i, p := range points {
		next := points[CircularIndex(i+1, len(points))]
		poly.edges = append(poly.edges, NewEdge(p, next, visible))
	}
	for _, edge := range poly.edges {
		edge.A.addEdge(edge)
		edge.B.addEdge(edge)
	}
	return poly
}

func (poly *Polygon) Edges() []*Edge {
	return poly.edges
}

// Even-odd point-in-polygon. Used to check that the viewpoint and the other
// polygons sit outside every obstacle.
func (poly *Polygon) ContainsPointByEvenOdd(p *Point) bool {
	return poly.CrossingCount(p)%2 == 1
}

// Number of polygon edges crossed by the horizontal ray from p towards +x.
// Each edge is treated as half open in y so that a vertex level with p is
// counted once.
func (poly *Polygon) CrossingCount(p *Point) int {
	crossingCount := 0
	for i, vertex := range poly.Points {
		nextVertex := poly.Points[CircularIndex(i+1, len(poly.Points))]
		if (vertex.Y > p.Y) == (nextVertex.Y > p.Y) {
			continue
		}
		x := vertex.X + (p.Y-vertex.Y)*(nextVertex.X-vertex.X)/(nextVertex.Y-vertex.Y)
		if x > p.X {
			crossingCount++
		}
	}
	return crossingCount
}

// Axis-aligned bounds of the polygon's points.
func (poly *Polygon) Bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range poly.Points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}
