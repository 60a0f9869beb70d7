package dataset

import (
	"encoding/csv"
	"io"
	"regexp"
	"strings"

	"github.com/maxpieter/eu-network-graph/internal/graph"
	apperrors "github.com/maxpieter/eu-network-graph/pkg/errors"
)

// partyCountry is one row of the MEP lookup table.
type partyCountry struct {
	Party   string
	Country string
}

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// normName canonicalises an MEP name for lookup: HTML tags stripped,
// whitespace collapsed, upper-cased.
func normName(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.ToUpper(strings.TrimSpace(s))
}

// parseMEPLookup reads the scraped parliament roster. It accepts
// either a pre-normalised norm_name column or a plain name column.
func parseMEPLookup(r io.Reader) (map[string]partyCountry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err != nil {
		return nil, apperrors.NewUnavailable("reading MEP lookup header", err)
	}
	h := readHeader(first)

	_, hasNorm := h["norm_name"]
	_, hasName := h["name"]
	if !hasNorm && !hasName {
		return nil, apperrors.NewUnavailable("MEP lookup has neither norm_name nor name column", nil)
	}
	if _, ok := h["party"]; !ok {
		return nil, apperrors.NewUnavailable("MEP lookup has no party column", nil)
	}
	if _, ok := h["country"]; !ok {
		return nil, apperrors.NewUnavailable("MEP lookup has no country column", nil)
	}

	lookup := make(map[string]partyCountry)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewUnavailable("reading MEP lookup row", err)
		}

		key := h.get(record, "norm_name")
		if key == "" {
			key = normName(h.get(record, "name"))
		}
		if key == "" {
			continue
		}

		lookup[key] = partyCountry{
			Party:   h.get(record, "party"),
			Country: h.get(record, "country"),
		}
	}

	return lookup, nil
}

// attachPartyCountry fills party and country on MEP nodes from the
// lookup table. Unmatched MEPs get "Unknown" for both, matching what
// the renderer expects for its colour legend.
func attachPartyCountry(nodes []graph.Node, lookup map[string]partyCountry) []graph.Node {
	out := make([]graph.Node, len(nodes))
	copy(out, nodes)

	for i := range out {
		if out[i].Type != graph.NodeMEP || out[i].Party != "" {
			continue
		}
		key := normName(out[i].Label)
		if pc, ok := lookup[key]; ok {
			out[i].Party = pc.Party
			out[i].Country = pc.Country
		} else {
			out[i].Party = "Unknown"
			out[i].Country = "Unknown"
		}
	}

	return out
}
