// Package graph holds the in-memory network model: typed nodes,
// weighted undirected edges and the adjacency helpers the filter
// stages are built on.
package graph

// NodeType represents the semantic type of a node in the network.
type NodeType string

const (
	NodeOrg                NodeType = "org"
	NodeMEP                NodeType = "mep"
	NodeCommissionEmployee NodeType = "commission_employee"
)

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	switch t {
	case NodeOrg, NodeMEP, NodeCommissionEmployee:
		return true
	}
	return false
}

// IsActor reports whether t is a person-side type (MEP or commission
// employee) as opposed to an organisation.
func (t NodeType) IsActor() bool {
	return t == NodeMEP || t == NodeCommissionEmployee
}

// Node is a vertex in the network. Identity is ID; the loader
// guarantees uniqueness within a dataset.
type Node struct {
	ID      string   `json:"id"`
	Type    NodeType `json:"type"`
	Label   string   `json:"label"`
	Name    string   `json:"name,omitempty"`
	Party   string   `json:"party,omitempty"`
	Country string   `json:"country,omitempty"`
	// RegisterID is the EU transparency register id, when known.
	RegisterID string `json:"register_id,omitempty"`
	Interests  string `json:"interests_represented,omitempty"`
}

// Edge is an aggregated relationship between two node ids. Edges are
// conceptually undirected: adjacency checks match either endpoint.
// Weight counts the underlying meetings; Timestamps carries their
// event markers in input order.
type Edge struct {
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Weight     int      `json:"weight"`
	Timestamps []string `json:"timestamps"`
}

// Touches reports whether id is one of the edge's endpoints.
func (e Edge) Touches(id string) bool {
	return e.Source == id || e.Target == id
}

// Other returns the opposite endpoint of id, or "" if id is not an
// endpoint of the edge.
func (e Edge) Other(id string) string {
	switch id {
	case e.Source:
		return e.Target
	case e.Target:
		return e.Source
	}
	return ""
}

// Graph is an immutable snapshot of a node/edge set. Filter stages
// take one and return a new one; nothing mutates in place.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Empty returns a graph with non-nil, zero-length node and edge sets.
func Empty() Graph {
	return Graph{Nodes: []Node{}, Edges: []Edge{}}
}

// Degrees computes the incident edge count per node id over the given
// edge set. Nodes without edges simply do not appear in the map.
func Degrees(edges []Edge) map[string]int {
	deg := make(map[string]int, len(edges)*2)
	for _, e := range edges {
		deg[e.Source]++
		deg[e.Target]++
	}
	return deg
}

// IDSet returns the set of node ids in nodes.
func IDSet(nodes []Node) map[string]bool {
	set := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		set[n.ID] = true
	}
	return set
}

// TypeIndex maps node id to node type for the given nodes.
func TypeIndex(nodes []Node) map[string]NodeType {
	idx := make(map[string]NodeType, len(nodes))
	for _, n := range nodes {
		idx[n.ID] = n.Type
	}
	return idx
}
