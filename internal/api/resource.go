package api

import (
	"net/http"

	"github.com/opentocoder/docker-panel/internal/engine"
	"github.com/opentocoder/docker-panel/internal/metrics"
)

// writeEngineError classifies an engine failure and writes it out.
func (s *Server) writeEngineError(w http.ResponseWriter, noun string, err error) {
	ce := engine.Classify(noun, err)
	metrics.Get().RecordEngineError(string(ce.Kind))
	s.logger.Error("engine request failed", "resource", noun, "kind", string(ce.Kind), "error", err)
	WriteError(w, ce.Status, ce.Message)
}

// writeEngineResult finishes a state-changing engine call. An engine
// rejection that only means "already in the requested state" is reported
// as success.
func (s *Server) writeEngineResult(w http.ResponseWriter, noun, successMessage string, err error) {
	if err == nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": successMessage,
		})
		return
	}
	ce := engine.Classify(noun, err)
	if ce.Kind == engine.KindUnchanged {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": ce.Message,
		})
		return
	}
	metrics.Get().RecordEngineError(string(ce.Kind))
	s.logger.Error("engine request failed", "resource", noun, "kind", string(ce.Kind), "error", err)
	WriteError(w, ce.Status, ce.Message)
}
