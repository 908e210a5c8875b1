package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"auto-collection-gen/internal/pipeline"
	"auto-collection-gen/internal/spec"
	"auto-collection-gen/internal/types"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response with the given status code.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSpec returns the structural spec document as fetched from the source.
func (s *Server) handleSpec(w http.ResponseWriter, r *http.Request) {
	doc, err := s.loader.Load(r.Context())
	if err != nil {
		s.respondLoadError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Raw())
}

// handleEndpoints returns the flattened endpoint list in document order.
func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	endpoints, ok := s.loadEndpoints(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(endpoints),
		"endpoints": endpoints,
	})
}

// handleGenerate triggers generation for all endpoints and streams progress
// events as newline-delimited JSON. Enumeration problems fail the whole
// response before any stream output; downstream failures surface as an
// in-stream error event that ends the stream.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	endpoints, ok := s.loadEndpoints(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	flusher, canFlush := w.(http.Flusher)
	enc := json.NewEncoder(w)
	emit := func(ev types.ProgressEvent) error {
		if err := enc.Encode(ev); err != nil {
			return err
		}
		if canFlush {
			flusher.Flush()
		}
		return nil
	}

	runner := pipeline.NewRunner(s.client, s.writer, s.logger)
	if err := runner.Run(r.Context(), endpoints, emit); err != nil {
		// Terminal error event already emitted; nothing more to send.
		s.logger.Error(r.Context(), "generation request failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Server) loadEndpoints(w http.ResponseWriter, r *http.Request) ([]types.Endpoint, bool) {
	doc, err := s.loader.Load(r.Context())
	if err != nil {
		s.respondLoadError(w, r, err)
		return nil, false
	}
	endpoints, err := spec.Enumerate(doc)
	if err != nil {
		if errors.Is(err, spec.ErrEmptySpec) {
			respondError(w, http.StatusBadRequest, "no endpoints found")
		} else {
			respondError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}
	return endpoints, true
}

func (s *Server) respondLoadError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "failed to load spec", map[string]interface{}{
		"error": err.Error(),
	})
	switch {
	case errors.Is(err, spec.ErrNotFound):
		respondError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, spec.ErrParse):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
