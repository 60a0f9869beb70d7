package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maxpieter/eu-network-graph/internal/graph"
)

func TestAssemble_AggregatesDuplicatePairs(t *testing.T) {
	nodes := []graph.Node{
		{ID: "mep-1", Type: graph.NodeMEP, Label: "Jane"},
		{ID: "org-1", Type: graph.NodeOrg, Label: "Acme"},
	}
	rows := []rawEdge{
		{Source: "mep-1", Target: "org-1", Weight: 1, Timestamp: "2023-01-01T00:00:00Z"},
		{Source: "mep-1", Target: "org-1", Weight: 1, Timestamp: "2023-02-01T00:00:00Z"},
		{Source: "mep-1", Target: "org-1", Weight: 2},
	}

	g := assemble(nodes, rows, zap.NewNop())

	require.Len(t, g.Edges, 1)
	assert.Equal(t, 4, g.Edges[0].Weight)
	assert.Equal(t, []string{"2023-01-01T00:00:00Z", "2023-02-01T00:00:00Z"}, g.Edges[0].Timestamps)
}

func TestAssemble_DropsSelfLoops(t *testing.T) {
	nodes := []graph.Node{{ID: "org-1", Type: graph.NodeOrg, Label: "Acme"}}
	rows := []rawEdge{
		{Source: "org-1", Target: "org-1", Weight: 1},
	}

	g := assemble(nodes, rows, zap.NewNop())

	assert.Empty(t, g.Edges)
}

func TestAssemble_FirstNodeWinsOnDuplicateID(t *testing.T) {
	nodes := []graph.Node{
		{ID: "org-1", Type: graph.NodeOrg, Label: "First"},
		{ID: "org-1", Type: graph.NodeOrg, Label: "Second"},
	}

	g := assemble(nodes, nil, zap.NewNop())

	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "First", g.Nodes[0].Label)
}

func TestAssemble_BackfillsUnknownEndpoints(t *testing.T) {
	nodes := []graph.Node{
		{ID: "mep-1", Type: graph.NodeMEP, Label: "Jane"},
	}
	rows := []rawEdge{
		{Source: "mep-1", Target: "org-unknown", Weight: 1},
	}

	g := assemble(nodes, rows, zap.NewNop())

	require.Len(t, g.Nodes, 2)
	placeholder := g.Nodes[1]
	assert.Equal(t, "org-unknown", placeholder.ID)
	assert.Equal(t, graph.NodeOrg, placeholder.Type)
	assert.Equal(t, "org-unknown", placeholder.Label)

	// Output must be referentially intact.
	ids := graph.IDSet(g.Nodes)
	for _, e := range g.Edges {
		assert.True(t, ids[e.Source])
		assert.True(t, ids[e.Target])
	}
}

func TestNormName(t *testing.T) {
	assert.Equal(t, "JANE DOE", normName("  Jane   Doe "))
	assert.Equal(t, "JANE DOE", normName("<b>Jane</b> Doe"))
	assert.Equal(t, "", normName(""))
}

func TestAttachPartyCountry(t *testing.T) {
	lookup := map[string]partyCountry{
		"JANE DOE": {Party: "Greens", Country: "DE"},
	}
	nodes := []graph.Node{
		{ID: "mep-1", Type: graph.NodeMEP, Label: "Jane  Doe"},
		{ID: "mep-2", Type: graph.NodeMEP, Label: "Nobody Known"},
		{ID: "mep-3", Type: graph.NodeMEP, Label: "Jane Doe", Party: "EPP"},
		{ID: "org-1", Type: graph.NodeOrg, Label: "Acme"},
	}

	out := attachPartyCountry(nodes, lookup)

	assert.Equal(t, "Greens", out[0].Party)
	assert.Equal(t, "DE", out[0].Country)

	assert.Equal(t, "Unknown", out[1].Party)
	assert.Equal(t, "Unknown", out[1].Country)

	// Party from the node table is authoritative.
	assert.Equal(t, "EPP", out[2].Party)

	assert.Empty(t, out[3].Party)

	// Input slice untouched.
	assert.Empty(t, nodes[0].Party)
}

func TestParseMEPLookup(t *testing.T) {
	input := "name,party,country\nJane   Doe,Greens,DE\n,Missing,XX\n"

	lookup, err := parseMEPLookup(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, lookup, 1)
	assert.Equal(t, partyCountry{Party: "Greens", Country: "DE"}, lookup["JANE DOE"])
}

func TestParseMEPLookup_RequiresColumns(t *testing.T) {
	_, err := parseMEPLookup(strings.NewReader("name,party\nJane,Greens"))
	assert.Error(t, err)

	_, err = parseMEPLookup(strings.NewReader("party,country\nGreens,DE"))
	assert.Error(t, err)
}
