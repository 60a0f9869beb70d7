package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/maxpieter/eu-network-graph/pkg/errors"
)

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := ParseOptions(url.Values{})

	require.NoError(t, err)
	assert.Equal(t, ModeFull, opts.Mode)
	assert.Equal(t, 2, opts.OrgMinDegree)
	assert.Equal(t, 1, opts.ActorMinDegree)
	assert.Equal(t, 0, opts.BipartiteKCore)
	assert.Equal(t, 1, opts.MinEdgeWeight)
	assert.False(t, opts.KeepIsolates)
}

func TestParseOptions_AllParameters(t *testing.T) {
	q := url.Values{}
	q.Set("mode", "mep")
	q.Set("org_min_degree", "3")
	q.Set("actor_min_degree", "2")
	q.Set("bipartite_k_core", "2")
	q.Set("min_edge_weight", "5")
	q.Set("keep_isolates", "true")

	opts, err := ParseOptions(q)

	require.NoError(t, err)
	assert.Equal(t, Options{
		Mode:           ModeMEP,
		OrgMinDegree:   3,
		ActorMinDegree: 2,
		BipartiteKCore: 2,
		MinEdgeWeight:  5,
		KeepIsolates:   true,
	}, opts)
}

func TestParseOptions_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]string
		message string
	}{
		{
			name:    "unknown mode",
			params:  map[string]string{"mode": "senate"},
			message: "mode must be one of",
		},
		{
			name:    "negative org threshold",
			params:  map[string]string{"org_min_degree": "-1"},
			message: "org_min_degree must be >= 0",
		},
		{
			name:    "negative k-core",
			params:  map[string]string{"bipartite_k_core": "-2"},
			message: "bipartite_k_core must be >= 0",
		},
		{
			name:    "non-integer threshold",
			params:  map[string]string{"min_edge_weight": "lots"},
			message: "min_edge_weight must be an integer",
		},
		{
			name:    "non-boolean keep_isolates",
			params:  map[string]string{"keep_isolates": "maybe"},
			message: "keep_isolates must be a boolean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			for k, v := range tt.params {
				q.Set(k, v)
			}

			_, err := ParseOptions(q)

			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestOptionsValidate_NegativeActorThreshold(t *testing.T) {
	opts := Default()
	opts.ActorMinDegree = -1

	err := opts.Validate()

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
