package internal

// This contains no actual tests. It is just a helper for testing the validity
// of visibility polygons.

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that the result of a normal mode Compute is valid. The rules
// are:
// 1. The edges form a single closed loop: every endpoint is shared by exactly
//    two edges, and walking from edge to edge visits all of them.
// 2. No two edges meet except at a shared endpoint.
// 3. Every ray from the viewpoint crosses the loop exactly once.
// 4. That crossing is where the ray first meets an obstacle, if it meets one,
//    and the crossed edge is visible exactly when that obstacle is.
func AssertValidVisibility(t *testing.T, scene *testScene, edges []*Edge) {
	assertClosedLoop(t, edges)
	assertSimpleLoop(t, edges)
	validateCoverageBySampling(t, scene, edges)
}

// Endpoints with the same coordinates, up to Tolerance, are the same vertex
type vertexIndex []*Point

func (index *vertexIndex) of(p *Point) int {
	for i, v := range *index {
		if v.Equal(p) {
			return i
		}
	}
	*index = append(*index, p)
	return len(*index) - 1
}

func assertClosedLoop(t *testing.T, edges []*Edge) {
	require.NotEmpty(t, edges)
	var index vertexIndex
	neighbors := make(map[int][]int)
	for _, edge := range edges {
		a, b := index.of(edge.A), index.of(edge.B)
		require.NotEqual(t, a, b, "degenerate edge %v", edge)
		neighbors[a] = append(neighbors[a], b)
		neighbors[b] = append(neighbors[b], a)
	}
	for i, v := range index {
		require.Len(t, neighbors[i], 2, "vertex %v should join exactly two edges", v)
	}

	// Walk the loop from the first vertex
	previous, current, steps := -1, 0, 0
	for {
		next := neighbors[current][0]
		if next == previous {
			next = neighbors[current][1]
		}
		previous, current = current, next
		steps++
		if current == 0 || steps > len(index) {
			break
		}
	}
	assert.Equal(t, len(index), steps, "edges should form a single loop")
}

func assertSimpleLoop(t *testing.T, edges []*Edge) {
	for i, a := range edges {
		for _, b := range edges[i+1:] {
			if a.HasEndpoint(b.A) || a.HasEndpoint(b.B) {
				continue
			}
			assert.Nil(t, a.Intersect(b), "%v crosses %v", a, b)
		}
	}
}

func validateCoverageBySampling(t *testing.T, scene *testScene, edges []*Edge) {
	const samples = 720
	viewpoint := scene.Viewpoint
	for i := 0; i < samples; i++ {
		// Offset the samples so that they don't line up with round angles
		angle := 2 * math.Pi * (float64(i) + 0.3719) / samples
		ray := NewRay(viewpoint, &Point{X: viewpoint.X + math.Cos(angle), Y: viewpoint.Y + math.Sin(angle)})

		var hits vertexIndex
		var hitEdge *Edge
		for _, edge := range edges {
			if p := ray.Intersect(edge); p != nil {
				if hits.of(p) == len(hits)-1 && hitEdge == nil {
					hitEdge = edge
				}
			}
		}
		require.Len(t, hits, 1, "ray at %.4f should cross the boundary exactly once", angle)

		nearestDist := math.Inf(1)
		var nearestPolygon *Polygon
		for _, poly := range scene.Polygons {
			for _, edge := range poly.Edges() {
				if p := ray.Intersect(edge); p != nil && Distance(viewpoint, p) < nearestDist {
					nearestDist = Distance(viewpoint, p)
					nearestPolygon = poly
				}
			}
		}

		if nearestPolygon == nil {
			assert.False(t, hitEdge.Visible, "ray at %.4f meets only the bound, but %v is visible", angle, hitEdge)
			continue
		}
		assert.InDelta(t, nearestDist, Distance(viewpoint, hits[0]), 1e-6, "ray at %.4f", angle)
		assert.Equal(t, nearestPolygon.Visible, hitEdge.Visible, "ray at %.4f crosses %v", angle, hitEdge)
	}
}
