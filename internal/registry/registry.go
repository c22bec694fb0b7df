// Package registry holds the runtime selection of which underlying tracking
// source feeds each pipeline.
//
// A single Registry is created at startup and handed to every component that
// needs it; there is no package-level global. Writes are rare (editor or
// HTTP configuration changes), reads happen once per emitted frame, and the
// HTTP endpoint writes from a different goroutine than the tick loop, so
// access is guarded by an RWMutex. Any reader observes the latest write.
package registry

import "sync"

// VisualizationSource selects what feeds the visualization pipeline.
type VisualizationSource string

const (
	VisMovementSDKOnly      VisualizationSource = "movementsdk"
	VisMovementSDKMediaPipe VisualizationSource = "movementsdk+mediapipe"
)

// AnalysisSource selects what feeds the analysis pipeline.
type AnalysisSource string

const (
	AnalysisOpenXRMediaPipe AnalysisSource = "openxr+mediapipe"
	AnalysisMediaPipeOnly   AnalysisSource = "mediapipe"
)

// Snapshot is a consistent read of both selections.
type Snapshot struct {
	Visualization VisualizationSource `json:"visualization_source"`
	Analysis      AnalysisSource      `json:"analysis_source"`
}

// Registry is the shared, mutable record of the active source configuration.
type Registry struct {
	mu  sync.RWMutex
	cur Snapshot
}

// New creates a Registry initialized with the caller-supplied defaults.
func New(vis VisualizationSource, analysis AnalysisSource) *Registry {
	return &Registry{cur: Snapshot{Visualization: vis, Analysis: analysis}}
}

// Snapshot returns the current configuration.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cur
}

// SetVisualization switches the visualization pipeline's source.
func (r *Registry) SetVisualization(v VisualizationSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cur.Visualization = v
}

// SetAnalysis switches the analysis pipeline's source.
func (r *Registry) SetAnalysis(a AnalysisSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cur.Analysis = a
}

// ValidVisualization reports whether s names a known visualization source.
func ValidVisualization(s VisualizationSource) bool {
	return s == VisMovementSDKOnly || s == VisMovementSDKMediaPipe
}

// ValidAnalysis reports whether s names a known analysis source.
func ValidAnalysis(s AnalysisSource) bool {
	return s == AnalysisOpenXRMediaPipe || s == AnalysisMediaPipeOnly
}
