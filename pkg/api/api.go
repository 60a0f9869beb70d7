// Package api defines the contracts for API responses.
// It decouples the wire format from the internal graph model.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/maxpieter/eu-network-graph/internal/graph"
)

// GraphResponse is the payload returned by GET /api/graph.
// The edge list is named "links" because that is the shape the
// force-directed renderer expects.
type GraphResponse struct {
	Nodes []graph.Node `json:"nodes"`
	Links []graph.Edge `json:"links"`
}

// NewGraphResponse builds a response from a filtered graph snapshot.
// Nil slices are normalised to empty ones so the client always sees
// JSON arrays, never null.
func NewGraphResponse(g graph.Graph) GraphResponse {
	resp := GraphResponse{Nodes: g.Nodes, Links: g.Edges}
	if resp.Nodes == nil {
		resp.Nodes = []graph.Node{}
	}
	if resp.Links == nil {
		resp.Links = []graph.Edge{}
	}
	return resp
}

// HealthResponse is the payload returned by GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is a standardized error message for API responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Success writes a JSON response with the given status code.
func Success(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// Headers are already written; an encode failure here is unrecoverable.
	_ = json.NewEncoder(w).Encode(data)
}

// Error writes a JSON error response with the given status code.
func Error(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
