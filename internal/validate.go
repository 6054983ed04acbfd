package internal

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"
)

// Check what Compute assumes about a scene: every polygon is simple, no two
// polygons touch, cross or nest, and the viewpoint is outside all of them.
// Problems are reported as ErrInvalidScene.
//
// Compute doesn't call this. Edge pairs are pruned with an R-tree, so it stays
// cheap enough to run on every scene a caller loads.
func ValidateScene(viewpoint *Point, polygons []*Polygon) error {
	if viewpoint == nil {
		return errors.Wrap(ErrInvalidScene, "no viewpoint")
	}
	owner := make(map[*Point]int)
	for i, poly := range polygons {
		if poly == nil {
			return errors.Wrapf(ErrInvalidScene, "polygon %d is nil", i)
		}
		for _, p := range poly.Points {
			if p.degree != 2 {
				return errors.Wrapf(ErrInvalidScene, "vertex %v of polygon %d has %d incident edges", p, i, p.degree)
			}
			if j, ok := owner[p]; ok && j != i {
				return errors.Wrapf(ErrInvalidScene, "vertex %v is shared by polygons %d and %d", p, j, i)
			}
			owner[p] = i
		}
	}

	if err := checkViewpoint(viewpoint, polygons); err != nil {
		return err
	}
	if err := checkCrossings(polygons); err != nil {
		return err
	}
	return checkNesting(polygons)
}

func checkViewpoint(viewpoint *Point, polygons []*Polygon) error {
	for i, poly := range polygons {
		if poly.ContainsPointByEvenOdd(viewpoint) {
			return errors.Wrapf(ErrInvalidScene, "viewpoint %v is inside polygon %d", viewpoint, i)
		}
		for _, edge := range poly.Edges() {
			if distanceToSegment(viewpoint, edge) <= Tolerance {
				return errors.Wrapf(ErrInvalidScene, "viewpoint %v is on %v", viewpoint, edge)
			}
		}
	}
	return nil
}

type indexedEdge struct {
	edge    *Edge
	polygon int
	bounds  rtreego.Rect
}

func (ie *indexedEdge) Bounds() rtreego.Rect {
	return ie.bounds
}

// Bounding box of the edge, padded by Tolerance so that axis-aligned edges
// still have area.
func edgeRect(edge *Edge) (rtreego.Rect, error) {
	minX := math.Min(edge.A.X, edge.B.X) - Tolerance
	minY := math.Min(edge.A.Y, edge.B.Y) - Tolerance
	width := math.Abs(edge.A.X-edge.B.X) + 2*Tolerance
	height := math.Abs(edge.A.Y-edge.B.Y) + 2*Tolerance
	return rtreego.NewRect(rtreego.Point{minX, minY}, []float64{width, height})
}

// No two edges may meet, except neighbors at their shared vertex.
func checkCrossings(polygons []*Polygon) error {
	var indexed []*indexedEdge
	for i, poly := range polygons {
		for _, edge := range poly.Edges() {
			bounds, err := edgeRect(edge)
			if err != nil {
				return errors.Wrapf(err, "indexing %v", edge)
			}
			indexed = append(indexed, &indexedEdge{edge, i, bounds})
		}
	}

	spatials := make([]rtreego.Spatial, len(indexed))
	for i, ie := range indexed {
		spatials[i] = ie
	}
	tree := rtreego.NewTree(2, 25, 50, spatials...)

	for _, ie := range indexed {
		for _, candidate := range tree.SearchIntersect(ie.bounds) {
			other := candidate.(*indexedEdge)
			if other == ie || adjacent(ie.edge, other.edge) {
				continue
			}
			if p := ie.edge.Intersect(other.edge); p != nil {
				if ie.polygon == other.polygon {
					return errors.Wrapf(ErrInvalidScene, "polygon %d is not simple: %v meets %v at %v", ie.polygon, ie.edge, other.edge, p)
				}
				return errors.Wrapf(ErrInvalidScene, "polygons %d and %d meet at %v", ie.polygon, other.polygon, p)
			}
		}
	}
	return nil
}

// Edges sharing a vertex. Vertices belong to one polygon, so these are
// neighbors in it.
func adjacent(a, b *Edge) bool {
	return a.A == b.A || a.A == b.B || a.B == b.A || a.B == b.B
}

// With no crossings, a polygon is nested in another exactly when any one of
// its vertices is.
func checkNesting(polygons []*Polygon) error {
	for i, outer := range polygons {
		outerMinX, outerMinY, outerMaxX, outerMaxY := outer.Bounds()
		for j, inner := range polygons {
			if i == j {
				continue
			}
			p := inner.Points[0]
			if p.X < outerMinX || p.X > outerMaxX || p.Y < outerMinY || p.Y > outerMaxY {
				continue
			}
			if outer.ContainsPointByEvenOdd(p) {
				return errors.Wrapf(ErrInvalidScene, "polygon %d is inside polygon %d", j, i)
			}
		}
	}
	return nil
}

func distanceToSegment(p *Point, edge *Edge) float64 {
	ex, ey := edge.B.X-edge.A.X, edge.B.Y-edge.A.Y
	lengthSquared := ex*ex + ey*ey
	if lengthSquared == 0 {
		return Distance(p, edge.A)
	}
	t := ((p.X-edge.A.X)*ex + (p.Y-edge.A.Y)*ey) / lengthSquared
	t = math.Max(0, math.Min(1, t))
	return Distance(p, &Point{X: edge.A.X + t*ex, Y: edge.A.Y + t*ey})
}
