package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"megamart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// successResponse is the envelope for single-payload responses.
type successResponse struct {
	Message string `json:"message"`
	Payload any    `json:"payload"`
}

// listResponse is the envelope for list responses; Results carries the count.
type listResponse struct {
	Message string `json:"message"`
	Results int    `json:"results"`
	Payload any    `json:"payload"`
}

// errorResponse is the envelope for all error responses.
type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Response is already committed; nothing useful left to do.
		return
	}
}

// writeSuccess writes a {message, payload} envelope.
func writeSuccess(w http.ResponseWriter, status int, message string, payload any) {
	writeJSON(w, status, successResponse{Message: message, Payload: payload})
}

// writeList writes a {message, results, payload} envelope.
func writeList(w http.ResponseWriter, message string, results int, payload any) {
	writeJSON(w, http.StatusOK, listResponse{Message: message, Results: results, Payload: payload})
}

// writeAPIError writes an error envelope with the error's attached status.
func writeAPIError(w http.ResponseWriter, apiErr *model.APIError, logger zerolog.Logger) {
	logger.Warn().
		Str("error", apiErr.Message).
		Int("status", apiErr.StatusCode).
		Msg("request failed")
	writeJSON(w, apiErr.StatusCode, errorResponse{
		Success: false,
		Error:   errorBody{Message: apiErr.Message, StatusCode: apiErr.StatusCode},
	})
}

// writeServiceError is the uniform error boundary: errors carrying a status
// pass through with that status, everything else becomes a 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIError(w, apiErr, logger)
		return
	}

	logger.Error().Err(err).Msg("internal error")
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Success: false,
		Error: errorBody{
			Message:    "Internal Server Error",
			StatusCode: http.StatusInternalServerError,
		},
	})
}

// parsePathID extracts and validates a UUID path parameter, writing a 400 and
// returning false on a malformed value.
func parsePathID(w http.ResponseWriter, r *http.Request, param, label string, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(param))
	if err != nil {
		writeAPIError(w, model.InvalidIDError(label), logger)
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes a JSON request body, writing a 400 on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeAPIError(w, model.BadRequestError("invalid request body"), logger)
		return false
	}
	return true
}

// NotFoundHandler is the catch-all for unmatched routes.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Success: false,
			Error: errorBody{
				Message:    "Route " + r.Method + " " + r.URL.Path + " does not exist",
				StatusCode: http.StatusNotFound,
			},
		})
	})
}
