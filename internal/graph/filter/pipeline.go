// Package filter reduces a raw node/edge snapshot to the subset a
// request asked for. Five ordered stages, each a pure
// (Graph) -> Graph transform over immutable snapshots:
//
//  1. mode partition
//  2. degree thresholds
//  3. bipartite k-core pruning
//  4. minimum edge weight
//  5. isolate removal
//
// Later stages only see survivors of earlier ones, so order matters.
// Apply is a total function over validated Options: it never fails.
package filter

import (
	"github.com/maxpieter/eu-network-graph/internal/graph"
)

// Apply runs the full reduction pipeline and re-checks referential
// integrity at the end: every returned edge references two returned
// node ids.
func Apply(g graph.Graph, opts Options) graph.Graph {
	g = partitionByMode(g, opts.Mode)
	g = applyDegreeThresholds(g, opts.OrgMinDegree, opts.ActorMinDegree)
	if opts.BipartiteKCore > 0 {
		g = pruneKCore(g, opts.BipartiteKCore)
	}
	g = filterEdgesByWeight(g, opts.MinEdgeWeight)
	if !opts.KeepIsolates {
		g = dropIsolates(g)
	}
	return dropDanglingEdges(g)
}

// partitionByMode restricts the graph to edges connecting an
// organisation with the actor subtype the mode selects, then to the
// nodes those edges touch. ModeFull is the identity transform.
func partitionByMode(g graph.Graph, mode Mode) graph.Graph {
	if mode == ModeFull {
		return g
	}

	actorType := graph.NodeMEP
	if mode == ModeCommission {
		actorType = graph.NodeCommissionEmployee
	}

	types := graph.TypeIndex(g.Nodes)
	matches := func(a, b graph.NodeType) bool {
		return a == graph.NodeOrg && b == actorType
	}

	edges := make([]graph.Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		st, tt := types[e.Source], types[e.Target]
		if matches(st, tt) || matches(tt, st) {
			edges = append(edges, e)
		}
	}

	touched := graph.Degrees(edges)
	nodes := make([]graph.Node, 0, len(touched))
	for _, n := range g.Nodes {
		if touched[n.ID] > 0 {
			nodes = append(nodes, n)
		}
	}

	return graph.Graph{Nodes: nodes, Edges: edges}
}

// applyDegreeThresholds drops organisations below orgMin and actors
// below actorMin, both judged against a single degree snapshot, then
// drops edges that lost an endpoint.
func applyDegreeThresholds(g graph.Graph, orgMin, actorMin int) graph.Graph {
	deg := graph.Degrees(g.Edges)

	nodes := make([]graph.Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		threshold := actorMin
		if n.Type == graph.NodeOrg {
			threshold = orgMin
		}
		if deg[n.ID] >= threshold {
			nodes = append(nodes, n)
		}
	}

	return graph.Graph{Nodes: nodes, Edges: edgesWithin(g.Edges, graph.IDSet(nodes))}
}

// pruneKCore iteratively removes nodes whose surviving degree is
// below k until a fixed point. Every pass either removes at least one
// node or stops, so the loop is bounded by the original node count.
func pruneKCore(g graph.Graph, k int) graph.Graph {
	nodes, edges := g.Nodes, g.Edges

	for range g.Nodes {
		deg := graph.Degrees(edges)

		kept := make([]graph.Node, 0, len(nodes))
		for _, n := range nodes {
			if deg[n.ID] >= k {
				kept = append(kept, n)
			}
		}
		if len(kept) == len(nodes) {
			break
		}

		nodes = kept
		edges = edgesWithin(edges, graph.IDSet(nodes))
	}

	return graph.Graph{Nodes: nodes, Edges: edges}
}

// filterEdgesByWeight drops edges below the weight threshold,
// independent of node survival.
func filterEdgesByWeight(g graph.Graph, minWeight int) graph.Graph {
	edges := make([]graph.Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if e.Weight >= minWeight {
			edges = append(edges, e)
		}
	}
	return graph.Graph{Nodes: g.Nodes, Edges: edges}
}

// dropIsolates removes nodes with no incident surviving edge.
func dropIsolates(g graph.Graph) graph.Graph {
	deg := graph.Degrees(g.Edges)
	nodes := make([]graph.Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if deg[n.ID] > 0 {
			nodes = append(nodes, n)
		}
	}
	return graph.Graph{Nodes: nodes, Edges: g.Edges}
}

// dropDanglingEdges re-filters edges so both endpoints exist in the
// surviving node set.
func dropDanglingEdges(g graph.Graph) graph.Graph {
	return graph.Graph{Nodes: g.Nodes, Edges: edgesWithin(g.Edges, graph.IDSet(g.Nodes))}
}

func edgesWithin(edges []graph.Edge, ids map[string]bool) []graph.Edge {
	kept := make([]graph.Edge, 0, len(edges))
	for _, e := range edges {
		if ids[e.Source] && ids[e.Target] {
			kept = append(kept, e)
		}
	}
	return kept
}
