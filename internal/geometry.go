package internal

import (
	"fmt"
	"math"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/visibility/internal/dbg"
)

func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

func (p *Point) Equal(other *Point) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	return Equal(p.X, other.X) && Equal(p.Y, other.Y)
}

// Incident edges recorded when the point's polygon was built.
func (p *Point) Edges() []*Edge {
	return p.edges[:p.degree]
}

func (p *Point) addEdge(e *Edge) {
	if p.degree == len(p.edges) {
		fatalf(ErrDegreeViolation, "vertex %v already has %d incident edges", p, p.degree)
	}
	p.edges[p.degree] = e
	p.degree++
}

func (p *Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

func Distance(p, q *Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Polar angle of target around origin, in [0, 2π).
func bearing(origin, target *Point) float64 {
	return normalizeAngle(math.Atan2(target.Y-origin.Y, target.X-origin.X))
}

// Counterclockwise rotation from the direction origin→reference to the
// direction origin→target, in [0, 2π).
func Angle(origin, reference, target *Point) float64 {
	return normalizeAngle(bearing(origin, target) - bearing(origin, reference))
}

func cross(ax, ay, bx, by float64) float64 {
	return ax*by - ay*bx
}

func NewEdge(a, b *Point, visible bool) *Edge {
	return &Edge{A: a, B: b, Visible: visible}
}

func (e *Edge) Equal(other *Edge) bool {
	if e == other {
		return true
	}
	if e == nil || other == nil {
		return false
	}
	return e.A.Equal(other.A) && e.B.Equal(other.B)
}

// The scene edge this edge is part of. A scene edge is its own source; a
// transition edge along a sweep ray has none.
func (e *Edge) Source() *Edge {
	if e.source != nil {
		return e.source
	}
	return e
}

func (e *Edge) Other(p *Point) *Point {
	if e.A == p || e.A.Equal(p) {
		return e.B
	}
	return e.A
}

func (e *Edge) HasEndpoint(p *Point) bool {
	return e.A.Equal(p) || e.B.Equal(p)
}

func (e *Edge) Length() float64 {
	return Distance(e.A, e.B)
}

func (e *Edge) IsDegenerate() bool {
	return e.A.Equal(e.B)
}

// Cheap on-segment check for a point already known to lie on the edge's line,
// such as a computed intersection. The bounding box is widened by Tolerance so
// that intersections with axis-aligned edges survive rounding.
func (e *Edge) Contains(p *Point) bool {
	a, b := e.A, e.B
	inBox := math.Max(a.X, b.X)+Tolerance >= p.X &&
		math.Min(a.X, b.X)-Tolerance <= p.X &&
		math.Max(a.Y, b.Y)+Tolerance >= p.Y &&
		math.Min(a.Y, b.Y)-Tolerance <= p.Y
	return inBox || a.Equal(p) || b.Equal(p)
}

// Segment intersection. The other edge is intersected by the rays a→b and
// b→a; only when both agree is the point inside this edge rather than on the
// extension of its line.
func (e *Edge) Intersect(other *Edge) *Point {
	first := (&Ray{e.A, e.B}).Intersect(other)
	second := (&Ray{e.B, e.A}).Intersect(other)
	if first != nil && second != nil {
		return first
	}
	return nil
}

func (e *Edge) String() string {
	return fmt.Sprintf("Edge[%v, %v]", e.A, e.B)
}

// Pet name for logs. Visible edges are green, fragments cut from hidden
// edges cyan, and other hidden edges red.
func (e *Edge) DbgName() string {
	name := dbg.Name(e)
	switch {
	case e == nil:
		return name
	case e.Visible:
		return aurora.Green(name).String()
	case e.source != nil:
		return aurora.Cyan(name).String()
	default:
		return aurora.Red(name).String()
	}
}

func NewRay(start, through *Point) *Ray {
	return &Ray{Start: start, Through: through}
}

// Loose forward test: a point is on the ray's side when it is no farther from
// the through point than the larger of its own distance from the start and the
// through point's. Points behind the start always fail it.
func (r *Ray) Contains(p *Point) bool {
	maxDist := math.Max(Distance(r.Start, p), Distance(r.Start, r.Through))
	return Distance(p, r.Through) <= maxDist+Tolerance
}

// Intersection of the ray with an edge, or nil.
//
// An edge lying on the ray's own line is met at its endpoint nearest the
// start. Such edges appear whenever a polygon side points straight at the
// viewpoint, and the sweep still has to order them.
func (r *Ray) Intersect(edge *Edge) *Point {
	dx, dy := r.Through.X-r.Start.X, r.Through.Y-r.Start.Y
	ex, ey := edge.B.X-edge.A.X, edge.B.Y-edge.A.Y
	wx, wy := edge.A.X-r.Start.X, edge.A.Y-r.Start.Y

	d := cross(dx, dy, ex, ey)
	scale := math.Hypot(dx, dy) * math.Hypot(ex, ey)
	if scale == 0 {
		return nil
	}
	if math.Abs(d) <= AngleTolerance*scale {
		return r.intersectCollinear(edge)
	}

	// Cramer's rule for start + t·d = A + u·e. The point is rebuilt from the
	// edge so that axis-aligned edges keep their exact coordinate.
	u := cross(wx, wy, dx, dy) / d
	p := &Point{X: edge.A.X + u*ex, Y: edge.A.Y + u*ey}

	if !edge.Contains(p) || !r.Contains(p) {
		return nil
	}
	return p
}

func (r *Ray) intersectCollinear(edge *Edge) *Point {
	dx, dy := r.Through.X-r.Start.X, r.Through.Y-r.Start.Y
	length := math.Hypot(dx, dy)
	// Perpendicular offset of the edge's line from the ray's line
	offset := cross(dx, dy, edge.A.X-r.Start.X, edge.A.Y-r.Start.Y) / length
	if math.Abs(offset) > Tolerance {
		return nil
	}

	var nearest *Point
	for _, p := range [2]*Point{edge.A, edge.B} {
		if !r.Contains(p) {
			continue
		}
		if nearest == nil || Distance(r.Start, p) < Distance(r.Start, nearest) {
			nearest = p
		}
	}
	return nearest
}

// Distance from the ray's start to where it meets the edge. The sweep only
// asks this of edges it knows the ray crosses, so a miss is fatal.
func (r *Ray) DistanceTo(edge *Edge) float64 {
	return Distance(r.Start, r.mustIntersect(edge))
}

func (r *Ray) mustIntersect(edge *Edge) *Point {
	p := r.Intersect(edge)
	if p == nil {
		fatalf(ErrGeometryInconsistency, "ray [%v, %v] doesn't intersect %v", r.Start, r.Through, edge)
	}
	return p
}

func (r *Ray) String() string {
	return fmt.Sprintf("Ray[%v, %v]", r.Start, r.Through)
}
