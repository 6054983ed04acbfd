package internal

// Points are shared by pointer. Polygon construction records the two edges
// meeting at each vertex on the point itself, so a vertex must belong to
// exactly one polygon. After construction the point graph is read only; the
// sweep keeps its own copy of the incidence when it needs to splice edges.
type Point struct {
	X float64
	Y float64

	edges  [2]*Edge
	degree int
}

// An edge runs from A to B. Equality is by ordered endpoints, so A→B and B→A
// are different edges even though they cover the same segment.
type Edge struct {
	A, B    *Point
	Visible bool

	// Scene edge this edge was cut from. Nil for scene edges and for
	// synthetic transition edges along a sweep ray.
	source *Edge
}

// A ray starts at Start and heads through Through. It is neither infinite in
// both directions nor bounded; see Contains.
type Ray struct {
	Start, Through *Point
}

// A closed cycle of points. Visible applies to every edge the polygon
// produces.
type Polygon struct {
	Points  []*Point
	Visible bool

	edges []*Edge
}

type PointSet map[*Point]struct{}

func (set PointSet) Add(p *Point) {
	set[p] = struct{}{}
}

func (set PointSet) Has(p *Point) bool {
	_, ok := set[p]
	return ok
}
