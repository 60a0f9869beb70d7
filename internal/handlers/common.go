// Package handlers provides the HTTP handlers for the graph API.
package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/maxpieter/eu-network-graph/pkg/api"
	apperrors "github.com/maxpieter/eu-network-graph/pkg/errors"
)

// handleServiceError converts application errors to HTTP responses.
// Validation failures carry their message to the client; everything
// else gets a generic body with the detail kept in the log.
func handleServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case apperrors.IsValidation(err):
		logger.Info("rejecting invalid request", zap.Error(err))
		api.Error(w, http.StatusBadRequest, err.Error())
	case apperrors.IsNotFound(err):
		api.Error(w, http.StatusNotFound, err.Error())
	case apperrors.IsUnavailable(err):
		logger.Warn("dependency unavailable", zap.Error(err))
		api.Error(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		logger.Error("internal error", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "An internal error occurred")
	}
}
