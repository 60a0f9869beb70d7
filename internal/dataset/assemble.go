package dataset

import (
	"go.uber.org/zap"

	"github.com/maxpieter/eu-network-graph/internal/graph"
)

// assemble turns parsed tables into a graph snapshot. Policies for
// the cases the source data leaves open:
//   - duplicate node ids: first row wins, later rows are dropped
//   - self-loop edges (source == target): dropped
//   - edges referencing an id missing from the node table: a
//     placeholder org node is created with the id as its label, so
//     the renderer never sees a dangling endpoint
//
// Duplicate (source, target) rows aggregate into one edge whose
// weight is the sum of the row weights and whose timestamps
// concatenate in input order.
func assemble(nodes []graph.Node, rows []rawEdge, logger *zap.Logger) graph.Graph {
	seen := make(map[string]bool, len(nodes))
	uniqueNodes := make([]graph.Node, 0, len(nodes))
	for _, n := range nodes {
		if seen[n.ID] {
			logger.Warn("dropping duplicate node id", zap.String("id", n.ID))
			continue
		}
		seen[n.ID] = true
		uniqueNodes = append(uniqueNodes, n)
	}

	type pair struct{ source, target string }
	agg := make(map[pair]*graph.Edge, len(rows))
	order := make([]pair, 0, len(rows))

	selfLoops := 0
	for _, row := range rows {
		if row.Source == row.Target {
			selfLoops++
			continue
		}

		key := pair{row.Source, row.Target}
		e, ok := agg[key]
		if !ok {
			e = &graph.Edge{Source: row.Source, Target: row.Target, Timestamps: []string{}}
			agg[key] = e
			order = append(order, key)
		}
		e.Weight += row.Weight
		if row.Timestamp != "" {
			e.Timestamps = append(e.Timestamps, row.Timestamp)
		}
	}
	if selfLoops > 0 {
		logger.Warn("dropped self-loop edges", zap.Int("count", selfLoops))
	}

	edges := make([]graph.Edge, 0, len(order))
	for _, key := range order {
		edges = append(edges, *agg[key])
	}

	return graph.Graph{
		Nodes: backfillMissingNodes(uniqueNodes, edges, logger),
		Edges: edges,
	}
}

// backfillMissingNodes adds a placeholder org node for every edge
// endpoint absent from the node table. The transparency data regularly
// references organisations that never made it into the master table.
func backfillMissingNodes(nodes []graph.Node, edges []graph.Edge, logger *zap.Logger) []graph.Node {
	known := graph.IDSet(nodes)

	added := 0
	for _, e := range edges {
		for _, id := range []string{e.Source, e.Target} {
			if known[id] {
				continue
			}
			known[id] = true
			nodes = append(nodes, graph.Node{
				ID:    id,
				Type:  graph.NodeOrg,
				Label: id,
				Name:  id,
			})
			added++
		}
	}
	if added > 0 {
		logger.Info("created placeholder nodes for unknown edge endpoints", zap.Int("count", added))
	}

	return nodes
}
