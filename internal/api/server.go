// Package api exposes the runtime configuration and session counters over
// HTTP.
//
// The pipeline endpoint is how the source registry is mutated at runtime:
// a POST takes effect on the very next built frame, with no staleness,
// because the builder reads the registry at build time.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/openmoveio/posestream/internal/httputil"
	"github.com/openmoveio/posestream/internal/registry"
	"github.com/openmoveio/posestream/internal/session"
)

// Server holds the handlers' shared state.
type Server struct {
	reg      *registry.Registry
	sessions []*session.Session
}

// NewServer creates an API server over the given registry and sessions.
func NewServer(reg *registry.Registry, sessions []*session.Session) *Server {
	return &Server{reg: reg, sessions: sessions}
}

// Handler returns the API route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/pipeline", s.handlePipeline)
	mux.HandleFunc("/api/sessions", s.handleSessions)
	return mux
}

// pipelineUpdate is the POST body for /api/pipeline. Both fields are
// optional; omitted fields are left unchanged.
type pipelineUpdate struct {
	AnalysisSource      *string `json:"analysis_source,omitempty"`
	VisualizationSource *string `json:"visualization_source,omitempty"`
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		httputil.WriteJSON(w, http.StatusOK, s.reg.Snapshot())

	case http.MethodPost:
		var upd pipelineUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			httputil.BadRequest(w, "invalid JSON body: "+err.Error())
			return
		}
		if upd.AnalysisSource != nil {
			a := registry.AnalysisSource(*upd.AnalysisSource)
			if !registry.ValidAnalysis(a) {
				httputil.BadRequest(w, "unknown analysis_source")
				return
			}
			s.reg.SetAnalysis(a)
		}
		if upd.VisualizationSource != nil {
			v := registry.VisualizationSource(*upd.VisualizationSource)
			if !registry.ValidVisualization(v) {
				httputil.BadRequest(w, "unknown visualization_source")
				return
			}
			s.reg.SetVisualization(v)
		}
		httputil.WriteJSON(w, http.StatusOK, s.reg.Snapshot())

	default:
		httputil.MethodNotAllowed(w)
	}
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	stats := make([]session.Stats, 0, len(s.sessions))
	for _, sess := range s.sessions {
		stats = append(stats, sess.Stats())
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}
