package internal

// Edges currently crossed by the sweep ray, nearest first.
//
// Distance along the ray depends on the ray's angle, so nodes don't carry a
// key. Every operation takes the current ray and orders with IsCloser; the
// stored distance is refreshed along the way and only kept for debugging.
// Active edge counts stay small for realistic scenes, so a sorted slice beats
// a balanced tree here.
type ActiveEdges struct {
	nodes []activeNode
}

type activeNode struct {
	edge *Edge
	dist float64
}

// Build from edges already sorted by distance along the ray.
func NewActiveEdges(sorted []*Edge, ray *Ray) *ActiveEdges {
	active := &ActiveEdges{nodes: make([]activeNode, 0, len(sorted))}
	for _, edge := range sorted {
		active.nodes = append(active.nodes, activeNode{edge, ray.DistanceTo(edge)})
	}
	return active
}

func (active *ActiveEdges) Insert(edge *Edge, ray *Ray) {
	node := activeNode{edge, ray.DistanceTo(edge)}
	i := 0
	for ; i < len(active.nodes); i++ {
		other := &active.nodes[i]
		other.dist = ray.DistanceTo(other.edge)
		if IsCloser(edge, other.edge, ray) {
			break
		}
	}
	active.nodes = append(active.nodes, activeNode{})
	copy(active.nodes[i+1:], active.nodes[i:])
	active.nodes[i] = node
}

// Remove the entry for edge. Nothing happens if it isn't there. Removal
// needs no ray; the sweep checks that the edge meets the ray before calling.
func (active *ActiveEdges) Delete(edge *Edge) {
	i := active.indexOf(edge)
	if i < 0 {
		return
	}
	active.nodes = append(active.nodes[:i], active.nodes[i+1:]...)
}

// Relabel the entry for old as replacement, keeping its place. Both edges must
// meet the ray at the same point. Reports whether old was found.
func (active *ActiveEdges) Update(old, replacement *Edge, ray *Ray) bool {
	i := active.indexOf(old)
	if i < 0 {
		return false
	}
	active.nodes[i] = activeNode{replacement, ray.DistanceTo(replacement)}
	return true
}

func (active *ActiveEdges) Nearest() *Edge {
	if len(active.nodes) == 0 {
		return nil
	}
	return active.nodes[0].edge
}

func (active *ActiveEdges) IsEmpty() bool {
	return len(active.nodes) == 0
}

func (active *ActiveEdges) Len() int {
	return len(active.nodes)
}

// Snapshot of the edges, nearest first.
func (active *ActiveEdges) Edges() []*Edge {
	edges := make([]*Edge, len(active.nodes))
	for i, node := range active.nodes {
		edges[i] = node.edge
	}
	return edges
}

func (active *ActiveEdges) indexOf(edge *Edge) int {
	for i, node := range active.nodes {
		if node.edge.Equal(edge) {
			return i
		}
	}
	return -1
}
