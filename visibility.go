// Visibility polygons for Go.
//
// Given a viewpoint and a set of simple, disjoint obstacle polygons, this
// package finds the edges and edge fragments bounding the region seen from
// the viewpoint, using Asano's radial sweep in O(n log n) for realistic
// scenes.
package visibility

import (
	"log/slog"

	"github.com/osuushi/visibility/internal"
)

type Point = internal.Point
type Edge = internal.Edge
type Polygon = internal.Polygon

// Error kinds. Test for them with errors.Is.
var (
	ErrGeometryInconsistency = internal.ErrGeometryInconsistency
	ErrDegreeViolation       = internal.ErrDegreeViolation
	ErrAmbiguousOrdering     = internal.ErrAmbiguousOrdering
	ErrInvalidScene          = internal.ErrInvalidScene
)

// Build an obstacle from an ordered cycle of at least two points. The polygon
// is visible unless visible is given as false.
//
// Each point records the polygon's edges, so a point can belong to only one
// polygon. Reusing one fails with ErrDegreeViolation. Build every polygon
// before sharing them between goroutines.
func NewPolygon(points []*Point, visible ...bool) (*Polygon, error) {
	return internal.NewPolygon(points, visible...)
}

// Compute the edges bounding the region visible from the viewpoint.
//
// Fragments of visible obstacles are flagged visible. The rest of the
// boundary, made of an invisible box around the scene and hidden transition
// edges along sight lines, is not. With borderMode, every obstacle and box edge
// that contributed nothing is appended as well, flagged not visible.
//
// Obstacles must be simple, must not touch each other, and must not contain
// the viewpoint; see Validate. A scene breaking this fails with one of the
// error kinds and no edges. The obstacles are only read, so concurrent calls
// may share them.
func Compute(viewpoint *Point, obstacles []*Polygon, borderMode ...bool) (result []Edge, err error) {
	defer func() {
		recoveredErr := internal.HandleVisibilityPanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	edges := internal.Compute(viewpoint, obstacles, len(borderMode) > 0 && borderMode[0])
	result = make([]Edge, len(edges))
	for i, edge := range edges {
		result[i] = *edge
	}
	return result, nil
}

// Check that a scene meets Compute's requirements. Failures wrap
// ErrInvalidScene.
func Validate(viewpoint *Point, obstacles []*Polygon) error {
	return internal.ValidateScene(viewpoint, obstacles)
}

// Log sweep events to l at debug level. Nil silences logging, which is the
// default.
func SetLogger(l *slog.Logger) {
	internal.SetLogger(l)
}
