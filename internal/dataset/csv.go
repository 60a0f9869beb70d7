package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/maxpieter/eu-network-graph/internal/graph"
	apperrors "github.com/maxpieter/eu-network-graph/pkg/errors"
)

// rawEdge is one edge table row before aggregation.
type rawEdge struct {
	Source    string
	Target    string
	Weight    int
	Timestamp string
}

// header maps lower-cased column names to their position.
type header map[string]int

func readHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h
}

func (h header) get(record []string, names ...string) string {
	for _, name := range names {
		if i, ok := h[name]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
	}
	return ""
}

// parseNodes reads a node table (id,label,type plus optional metadata
// columns). Rows with an empty id or an unknown type are skipped with
// a warning; the first row wins when an id repeats.
func parseNodes(r io.Reader, logger *zap.Logger) ([]graph.Node, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err != nil {
		return nil, apperrors.NewUnavailable("reading node table header", err)
	}
	h := readHeader(first)
	if _, ok := h["id"]; !ok {
		return nil, apperrors.NewUnavailable("node table has no id column", nil)
	}

	var nodes []graph.Node
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewUnavailable("reading node table row", err)
		}

		id := h.get(record, "id")
		if id == "" {
			logger.Warn("skipping node row without id")
			continue
		}

		typ := graph.NodeType(h.get(record, "type"))
		if !typ.Valid() {
			logger.Warn("skipping node with unknown type",
				zap.String("id", id),
				zap.String("type", string(typ)),
			)
			continue
		}

		name := h.get(record, "name")
		label := h.get(record, "label")
		if label == "" {
			label = name
		}
		if label == "" {
			label = id
		}

		nodes = append(nodes, graph.Node{
			ID:         id,
			Type:       typ,
			Label:      label,
			Name:       name,
			Party:      h.get(record, "party"),
			Country:    h.get(record, "country"),
			RegisterID: h.get(record, "register_id", "eu_transparency_register_id"),
			Interests:  h.get(record, "interests_represented"),
		})
	}

	return nodes, nil
}

// parseEdges reads an edge table (source,target with optional weight
// and timestamp columns). A missing weight column means one meeting
// per row; a non-numeric weight is a data-quality defect upstream and
// falls back to 1 with a warning.
func parseEdges(r io.Reader, logger *zap.Logger) ([]rawEdge, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err != nil {
		return nil, apperrors.NewUnavailable("reading edge table header", err)
	}
	h := readHeader(first)
	if _, ok := h["source"]; !ok {
		return nil, apperrors.NewUnavailable("edge table has no source column", nil)
	}
	if _, ok := h["target"]; !ok {
		return nil, apperrors.NewUnavailable("edge table has no target column", nil)
	}
	tsColumn := guessTimestampColumn(h)

	var rows []rawEdge
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewUnavailable("reading edge table row", err)
		}

		source := h.get(record, "source")
		target := h.get(record, "target")
		if source == "" || target == "" {
			logger.Warn("skipping edge row without both endpoints",
				zap.String("source", source),
				zap.String("target", target),
			)
			continue
		}

		weight := 1
		if raw := h.get(record, "weight"); raw != "" {
			w, err := strconv.Atoi(raw)
			if err != nil || w < 0 {
				logger.Warn("edge row has non-numeric weight, counting it as 1",
					zap.String("source", source),
					zap.String("target", target),
					zap.String("weight", raw),
				)
				w = 1
			}
			weight = w
		}

		row := rawEdge{Source: source, Target: target, Weight: weight}
		if tsColumn != "" {
			if ts, ok := coerceTimestamp(h.get(record, tsColumn)); ok {
				row.Timestamp = ts
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// timestampCandidates lists column names treated as the edge event
// marker, most specific first.
var timestampCandidates = []string{
	"meeting_date", "meeting_datetime",
	"timestamp", "datetime", "date",
	"created_at", "start_date", "startdate", "start date",
	"meetingdate", "time",
}

func guessTimestampColumn(h header) string {
	for _, c := range timestampCandidates {
		if _, ok := h[c]; ok {
			return c
		}
	}
	return ""
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// coerceTimestamp normalises a raw timestamp value to RFC3339 UTC.
// Unparseable values are dropped rather than propagated.
func coerceTimestamp(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format("2006-01-02T15:04:05Z"), true
		}
	}
	return "", false
}
