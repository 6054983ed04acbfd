package internal

import (
	"log/slog"
	"math"
	"sort"

	"github.com/osuushi/visibility/internal/dbg"
)

// Compute the boundary of the region visible from the viewpoint, using
// Asano's radial sweep.
//
// A ray from the viewpoint turns counterclockwise through a full circle,
// stopping at every vertex. The edges it currently crosses are kept nearest
// first; whenever the nearest one changes, the fragment that was nearest is
// emitted, and a hidden transition edge along the ray joins it to the next.
//
// An invisible bounding box is added around the scene so that every ray ends
// on some edge. Fragments of visible obstacle edges come out visible; bound
// fragments and transitions don't. In border mode, every scene edge that
// produced no fragment is appended too, flagged not visible.
//
// Obstacles must be simple, pairwise disjoint, built with NewPolygon, and must
// not contain the viewpoint. Violations panic with one of the error kinds in
// throw.go; see HandleVisibilityPanicRecover.
func Compute(viewpoint *Point, obstacles []*Polygon, border bool) []*Edge {
	s := newSweep(viewpoint, obstacles, border)
	s.seedRay()
	s.initialOrder()
	for _, e := range s.events() {
		s.visit(e)
	}
	s.flush()
	s.mergeSeam()
	if border {
		s.addUntouched()
	}
	return s.output
}

type sweep struct {
	viewpoint *Point
	// Obstacles followed by the bound
	polygons []*Polygon
	border   bool

	// Incident edges of every vertex for this query. It starts as a copy of
	// what polygon construction recorded, and the sweep splices fragments in
	// as it cuts edges, so the caller's points are never written.
	incidence map[*Point][2]*Edge

	seed *Ray
	// Nearest crossing of the seed ray. Angles of the sweep are measured from
	// here.
	zero *Point
	// Scene edge containing zero
	seam *Edge

	active *ActiveEdges
	output []*Edge

	log   *slog.Logger
	debug bool
}

func newSweep(viewpoint *Point, obstacles []*Polygon, border bool) *sweep {
	if viewpoint == nil {
		fatalf(ErrInvalidScene, "no viewpoint")
	}
	s := &sweep{
		viewpoint: viewpoint,
		border:    border,
		incidence: make(map[*Point][2]*Edge),
		log:       Logger(),
		debug:     debugEnabled(),
	}

	s.polygons = make([]*Polygon, 0, len(obstacles)+1)
	for i, poly := range obstacles {
		if poly == nil {
			fatalf(ErrInvalidScene, "obstacle %d is nil", i)
		}
		s.polygons = append(s.polygons, poly)
	}
	s.polygons = append(s.polygons, boundingPolygon(viewpoint, obstacles))

	for _, poly := range s.polygons {
		for _, p := range poly.Points {
			if p.degree != 2 {
				fatalf(ErrDegreeViolation, "vertex %v has %d incident edges", p, p.degree)
			}
			if _, ok := s.incidence[p]; ok {
				fatalf(ErrDegreeViolation, "vertex %v belongs to more than one polygon", p)
			}
			s.incidence[p] = p.edges
		}
	}
	return s
}

// Box around the viewpoint and every vertex, padded by BoundsMargin.
func boundingPolygon(viewpoint *Point, obstacles []*Polygon) *Polygon {
	minX, minY := viewpoint.X, viewpoint.Y
	maxX, maxY := viewpoint.X, viewpoint.Y
	for _, poly := range obstacles {
		polyMinX, polyMinY, polyMaxX, polyMaxY := poly.Bounds()
		minX = math.Min(minX, polyMinX)
		minY = math.Min(minY, polyMinY)
		maxX = math.Max(maxX, polyMaxX)
		maxY = math.Max(maxY, polyMaxY)
	}
	minX -= BoundsMargin
	minY -= BoundsMargin
	maxX += BoundsMargin
	maxY += BoundsMargin
	return buildPolygon([]*Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}, false)
}

// Aim the first ray at the midpoint of the first polygon's first edge. If that
// passes too close to a vertex, the angular order at the start would be
// ambiguous, so aim through the middle of the widest angular gap between
// vertices instead.
func (s *sweep) seedRay() {
	first := s.polygons[0].Points
	midpoint := &Point{
		X: (first[0].X + first[1].X) / 2,
		Y: (first[0].Y + first[1].Y) / 2,
	}
	s.seed = NewRay(s.viewpoint, midpoint)
	if !s.grazesVertex(s.seed) {
		return
	}

	s.seed = s.widestGapRay()
	if s.debug {
		s.log.Debug("initial ray moved off a vertex", "ray", s.seed.String())
	}
	if s.grazesVertex(s.seed) {
		fatalf(ErrGeometryInconsistency, "no clear direction for the initial ray from %v", s.viewpoint)
	}
}

// Does any vertex ahead of the viewpoint lie within SeedClearance of the ray?
func (s *sweep) grazesVertex(ray *Ray) bool {
	dx, dy := ray.Through.X-ray.Start.X, ray.Through.Y-ray.Start.Y
	length := math.Hypot(dx, dy)
	if length <= Tolerance {
		return true
	}
	for p := range s.incidence {
		wx, wy := p.X-ray.Start.X, p.Y-ray.Start.Y
		if dx*wx+dy*wy <= 0 {
			continue
		}
		if math.Abs(cross(dx, dy, wx, wy))/length < SeedClearance {
			return true
		}
	}
	return false
}

func (s *sweep) widestGapRay() *Ray {
	bearings := make([]float64, 0, len(s.incidence))
	for p := range s.incidence {
		bearings = append(bearings, bearing(s.viewpoint, p))
	}
	sort.Float64s(bearings)

	// The gap wrapping past zero comes first
	bestStart := bearings[len(bearings)-1]
	bestGap := bearings[0] + 2*math.Pi - bestStart
	for i := 1; i < len(bearings); i++ {
		if gap := bearings[i] - bearings[i-1]; gap > bestGap {
			bestStart, bestGap = bearings[i-1], gap
		}
	}
	direction := bestStart + bestGap/2
	return NewRay(s.viewpoint, &Point{
		X: s.viewpoint.X + math.Cos(direction),
		Y: s.viewpoint.Y + math.Sin(direction),
	})
}

// Order the edges crossing the seed ray by distance and make them the initial
// active edges.
//
// Each crossing edge is split at the ray. The piece ahead of the ray is active
// from the start and closes at its far vertex. The piece behind it is opened
// by its vertex near the end of the sweep, and is active until the ray comes
// back around.
func (s *sweep) initialOrder() {
	type crossing struct {
		edge *Edge
		at   *Point
		dist float64
	}

	var crossings []crossing
	for _, poly := range s.polygons {
		for _, edge := range poly.Edges() {
			if at := s.seed.Intersect(edge); at != nil {
				crossings = append(crossings, crossing{edge, at, Distance(s.viewpoint, at)})
			}
		}
	}
	if len(crossings) == 0 {
		fatalf(ErrGeometryInconsistency, "initial %v crosses no edge", s.seed)
	}
	sort.SliceStable(crossings, func(i, j int) bool {
		return crossings[i].dist < crossings[j].dist
	})

	s.zero = crossings[0].at
	s.seam = crossings[0].edge

	sorted := make([]*Edge, 0, len(crossings))
	for _, c := range crossings {
		sorted = append(sorted, s.split(c.edge, c.at))
	}
	s.active = NewActiveEdges(sorted, s.seed)

	if s.debug {
		s.log.Debug("initial ray",
			"ray", s.seed.String(),
			"zero", s.zero.String(),
			"active", s.active.Len(),
			"nearest", s.active.Nearest().DbgName(),
		)
	}
}

// Cut a scene edge at its crossing with the seed ray, splice both pieces into
// the incidence of their vertices, and return the piece ahead of the ray.
func (s *sweep) split(edge *Edge, at *Point) *Edge {
	aheadEnd, behindEnd := edge.A, edge.B
	if Angle(s.viewpoint, at, aheadEnd) > Angle(s.viewpoint, at, behindEnd) {
		aheadEnd, behindEnd = behindEnd, aheadEnd
	}
	ahead := piece(edge, at, aheadEnd)
	behind := piece(edge, behindEnd, at)
	s.splice(aheadEnd, edge, ahead)
	s.splice(behindEnd, edge, behind)
	return ahead
}

// Replace old with replacement among the edges incident to vertex.
func (s *sweep) splice(vertex *Point, old, replacement *Edge) {
	edges, ok := s.incidence[vertex]
	if !ok {
		fatalf(ErrGeometryInconsistency, "%v is not a vertex of the scene", vertex)
	}
	for i, edge := range edges {
		if edge.Equal(old) {
			edges[i] = replacement
			s.incidence[vertex] = edges
			return
		}
	}
	fatalf(ErrGeometryInconsistency, "%v is not incident to %v", old, vertex)
}

// The part of e between u and w, oriented like the scene edge e comes from.
// Gives back e (or the scene edge) when the part is the whole of it.
func piece(e *Edge, u, w *Point) *Edge {
	root := e.Source()
	if Distance(root.A, w) < Distance(root.A, u) {
		u, w = w, u
	}
	switch {
	case e.A.Equal(u) && e.B.Equal(w):
		return e
	case root.A.Equal(u) && root.B.Equal(w):
		return root
	}
	return &Edge{A: u, B: w, Visible: root.Visible, source: root}
}

const (
	// Both edges open: the vertex is the near corner of something new
	phaseOpen = iota
	// One edge closes and the other continues the boundary
	phaseSide
	// Both edges close: the far corner of something ending
	phaseClose
)

type event struct {
	vertex *Point
	angle  float64
	dist   float64
	phase  int
}

// Every vertex, in sweep order. Vertices at the same angle are visited
// openings first, then side vertices, then closings. Openings and side
// vertices go nearest first and closings farthest first, so that the nearest
// edge changes at most once per direction.
func (s *sweep) events() []event {
	events := make([]event, 0, len(s.incidence))
	for _, poly := range s.polygons {
		for _, v := range poly.Points {
			edges := s.incidence[v]
			phase := phaseSide
			switch first, second := s.closes(v, edges[0]), s.closes(v, edges[1]); {
			case first && second:
				phase = phaseClose
			case !first && !second:
				phase = phaseOpen
			}
			events = append(events, event{
				vertex: v,
				angle:  Angle(s.viewpoint, s.zero, v),
				dist:   Distance(s.viewpoint, v),
				phase:  phase,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].angle < events[j].angle
	})

	// Sort each run of equal angles
	for start := 0; start < len(events); {
		end := start + 1
		for end < len(events) && events[end].angle-events[start].angle <= AngleTolerance {
			end++
		}
		group := events[start:end]
		sort.SliceStable(group, func(i, j int) bool {
			a, b := group[i], group[j]
			if a.phase != b.phase {
				return a.phase < b.phase
			}
			if a.phase == phaseClose {
				return a.dist > b.dist
			}
			return a.dist < b.dist
		})
		start = end
	}
	return events
}

// Does edge end at v, as seen by a counterclockwise sweep? It does when its
// other end lies at least half a turn counterclockwise from v, which means it
// was swept already. An edge along the ray ends at its far vertex.
func (s *sweep) closes(v *Point, edge *Edge) bool {
	other := edge.Other(v)
	angle := Angle(s.viewpoint, v, other)
	if angle <= AngleTolerance {
		return Distance(s.viewpoint, other) < Distance(s.viewpoint, v)
	}
	return angle >= math.Pi
}

func (s *sweep) visit(e event) {
	v := e.vertex
	ray := NewRay(s.viewpoint, v)
	nearest := s.active.Nearest()
	s.flush()

	first, second := s.incidence[v][0], s.incidence[v][1]
	firstCloses, secondCloses := s.closes(v, first), s.closes(v, second)

	if s.debug {
		s.log.Debug("vertex",
			"vertex", dbg.Name(v),
			"at", v.String(),
			"angle", e.angle,
			"closing", boolCount(firstCloses, secondCloses),
			"nearest", nearest.DbgName(),
			"active", s.active.Len(),
		)
	}

	switch {
	case firstCloses && secondCloses:
		s.remove(first, ray)
		s.remove(second, ray)
		if next := s.active.Nearest(); next != nil && next != nearest {
			s.beginEdge(v, ray)
		}

	case firstCloses != secondCloses:
		closing, opening := first, second
		if secondCloses {
			closing, opening = second, first
		}
		ray.mustIntersect(closing)
		ray.mustIntersect(opening)
		if !s.active.Update(closing, opening, ray) {
			fatalf(ErrGeometryInconsistency, "%v closes at %v but isn't active", closing, v)
		}

	default:
		if !IsCloser(first, second, ray) {
			first, second = second, first
		}
		s.insert(second, ray)
		s.insert(first, ray)
		if nearest != nil && s.active.Nearest() != nearest {
			s.endEdge(nearest, v, ray)
		}
	}
}

func (s *sweep) insert(edge *Edge, ray *Ray) {
	ray.mustIntersect(edge)
	s.active.Insert(edge, ray)
}

func (s *sweep) remove(edge *Edge, ray *Ray) {
	ray.mustIntersect(edge)
	s.active.Delete(edge)
}

// The nearest edge just closed at v and uncovered one farther away, which is
// visible from where the ray meets it. The uncovered edge is cut there so that
// only its unswept part is emitted later, and a hidden transition joins it to
// v along the ray.
func (s *sweep) beginEdge(v *Point, ray *Ray) {
	next := s.active.Nearest()
	z := ray.mustIntersect(next)
	unswept := s.unsweptEnd(next, z, ray)
	partial := piece(next, z, unswept)
	if partial != next {
		s.active.Update(next, partial, ray)
		// A piece cut off by the initial ray ends at the crossing, which is
		// not a vertex and is never visited
		if _, ok := s.incidence[unswept]; ok {
			s.splice(unswept, next, partial)
		}
	}
	if s.debug {
		s.log.Debug("begin edge", "edge", partial.DbgName(), "from", z.String())
	}
	s.emit(NewEdge(z, v, false))
}

// Something opened at v in front of the nearest edge, which stays visible
// only up to the ray. If it was emitted, it's cut there, and a hidden
// transition joins it to v along the ray.
func (s *sweep) endEdge(old *Edge, v *Point, ray *Ray) {
	z := ray.mustIntersect(old)
	if i := s.indexInOutput(old); i >= 0 {
		s.output = append(s.output[:i], s.output[i+1:]...)
		s.emit(piece(old, s.sweptEnd(old, z, ray), z))
	}
	if s.debug {
		s.log.Debug("end edge", "edge", old.DbgName(), "at", z.String())
	}
	s.emit(NewEdge(z, v, false))
}

// Endpoint of an edge crossing the ray at z that the sweep hasn't reached.
func (s *sweep) unsweptEnd(edge *Edge, z *Point, ray *Ray) *Point {
	switch {
	case edge.A.Equal(z):
		return edge.B
	case edge.B.Equal(z):
		return edge.A
	}
	if Angle(s.viewpoint, ray.Through, edge.A) < Angle(s.viewpoint, ray.Through, edge.B) {
		return edge.A
	}
	return edge.B
}

func (s *sweep) sweptEnd(edge *Edge, z *Point, ray *Ray) *Point {
	unswept := s.unsweptEnd(edge, z, ray)
	if unswept == edge.A {
		return edge.B
	}
	return edge.A
}

// Emit the nearest edge unless it already was.
func (s *sweep) flush() {
	if nearest := s.active.Nearest(); nearest != nil && s.indexInOutput(nearest) < 0 {
		s.emit(nearest)
	}
}

func (s *sweep) emit(edge *Edge) {
	if edge.IsDegenerate() {
		return
	}
	s.output = append(s.output, edge)
}

func (s *sweep) indexInOutput(edge *Edge) int {
	for i, emitted := range s.output {
		if emitted.Equal(edge) {
			return i
		}
	}
	return -1
}

// The sweep starts and ends on the seed ray, so the edge nearest along it was
// emitted as two fragments meeting at zero. Join them back together.
func (s *sweep) mergeSeam() {
	var found []int
	for i, edge := range s.output {
		if edge.Source() == s.seam && edge.HasEndpoint(s.zero) {
			found = append(found, i)
		}
	}
	if len(found) != 2 {
		return
	}
	first, second := s.output[found[0]], s.output[found[1]]
	s.output[found[0]] = piece(first, first.Other(s.zero), second.Other(s.zero))
	s.output = append(s.output[:found[1]], s.output[found[1]+1:]...)
}

// Append every scene edge with no emitted fragment, flagged not visible.
func (s *sweep) addUntouched() {
	touched := make(map[*Edge]bool, len(s.output))
	for _, edge := range s.output {
		touched[edge.Source()] = true
	}
	for _, poly := range s.polygons {
		for _, edge := range poly.Edges() {
			if !touched[edge] {
				s.output = append(s.output, &Edge{A: edge.A, B: edge.B, source: edge})
			}
		}
	}
}

func boolCount(flags ...bool) int {
	count := 0
	for _, flag := range flags {
		if flag {
			count++
		}
	}
	return count
}
