// Package dataset loads the node and edge tables from local files or
// remote URLs into an in-memory graph snapshot. Any load or parse
// failure degrades to an empty dataset; callers render nothing rather
// than surfacing a server error.
package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/maxpieter/eu-network-graph/internal/graph"
	apperrors "github.com/maxpieter/eu-network-graph/pkg/errors"
)

// Source describes where the two tables come from. Local paths take
// precedence over URLs when both are configured. MEPLookupPath is an
// optional roster used to attach party and country to MEP nodes.
type Source struct {
	NodesPath string
	EdgesPath string
	NodesURL  string
	EdgesURL  string

	MEPLookupPath string
}

// LocalPaths returns the configured local files, for cache
// invalidation watching.
func (s Source) LocalPaths() []string {
	var paths []string
	for _, p := range []string{s.NodesPath, s.EdgesPath, s.MEPLookupPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

type cacheEntry struct {
	graph    graph.Graph
	loadedAt time.Time
}

// Loader reads and assembles the dataset, caching the result for a
// bounded interval. The cache is a single atomically-replaced value;
// concurrent requests never observe a partial dataset.
type Loader struct {
	source  Source
	ttl     time.Duration
	logger  *zap.Logger
	client  *http.Client
	breaker *gobreaker.CircuitBreaker

	cached atomic.Pointer[cacheEntry]
}

// NewLoader creates a loader for the given source. A ttl of zero
// disables caching.
func NewLoader(source Source, ttl time.Duration, logger *zap.Logger) *Loader {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dataset-fetch",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.8
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Loader{
		source:  source,
		ttl:     ttl,
		logger:  logger,
		client:  &http.Client{Timeout: 30 * time.Second},
		breaker: breaker,
	}
}

// Load returns the current dataset, from cache when fresh. It never
// fails: an unreadable or malformed source yields an empty graph.
func (l *Loader) Load(ctx context.Context) graph.Graph {
	if entry := l.cached.Load(); entry != nil && l.ttl > 0 && time.Since(entry.loadedAt) < l.ttl {
		return entry.graph
	}

	g := l.load(ctx)
	if len(g.Nodes) > 0 {
		l.cached.Store(&cacheEntry{graph: g, loadedAt: time.Now()})
	}
	return g
}

// Invalidate drops the cached dataset so the next request reloads.
func (l *Loader) Invalidate() {
	l.cached.Store(nil)
}

func (l *Loader) load(ctx context.Context) graph.Graph {
	nodesData, err := l.readSource(ctx, l.source.NodesPath, l.source.NodesURL)
	if err != nil {
		l.logger.Warn("node table unavailable", zap.Error(err))
		return graph.Empty()
	}
	edgesData, err := l.readSource(ctx, l.source.EdgesPath, l.source.EdgesURL)
	if err != nil {
		l.logger.Warn("edge table unavailable", zap.Error(err))
		return graph.Empty()
	}

	nodes, err := parseNodes(bytes.NewReader(nodesData), l.logger)
	if err != nil {
		l.logger.Warn("node table unparseable", zap.Error(err))
		return graph.Empty()
	}
	rows, err := parseEdges(bytes.NewReader(edgesData), l.logger)
	if err != nil {
		l.logger.Warn("edge table unparseable", zap.Error(err))
		return graph.Empty()
	}

	if l.source.MEPLookupPath != "" {
		lookup, err := l.loadMEPLookup()
		if err != nil {
			l.logger.Warn("MEP lookup unavailable, serving MEP nodes unenriched", zap.Error(err))
		} else {
			nodes = attachPartyCountry(nodes, lookup)
		}
	}

	g := assemble(nodes, rows, l.logger)
	l.logger.Info("dataset loaded",
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
	)
	return g
}

func (l *Loader) loadMEPLookup() (map[string]partyCountry, error) {
	f, err := os.Open(l.source.MEPLookupPath)
	if err != nil {
		return nil, apperrors.NewUnavailable("opening MEP lookup", err)
	}
	defer f.Close()
	return parseMEPLookup(f)
}

// readSource reads one table, preferring the local path.
func (l *Loader) readSource(ctx context.Context, path, url string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewUnavailable(fmt.Sprintf("reading %s", path), err)
		}
		return data, nil
	}
	if url != "" {
		return l.fetch(ctx, url)
	}
	return nil, apperrors.NewUnavailable("no source configured", nil)
}

// fetch downloads a table through the circuit breaker, so a flapping
// remote stops being hammered once its failure rate trips it.
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	result, err := l.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return nil, apperrors.NewUnavailable(fmt.Sprintf("fetching %s", url), err)
	}
	return result.([]byte), nil
}
