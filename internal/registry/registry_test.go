package registry

import "testing"

func TestSnapshotReturnsDefaults(t *testing.T) {
	r := New(VisMovementSDKOnly, AnalysisOpenXRMediaPipe)
	snap := r.Snapshot()
	if snap.Visualization != VisMovementSDKOnly {
		t.Errorf("Visualization = %q, want %q", snap.Visualization, VisMovementSDKOnly)
	}
	if snap.Analysis != AnalysisOpenXRMediaPipe {
		t.Errorf("Analysis = %q, want %q", snap.Analysis, AnalysisOpenXRMediaPipe)
	}
}

func TestWritesVisibleToNextSnapshot(t *testing.T) {
	r := New(VisMovementSDKOnly, AnalysisOpenXRMediaPipe)

	r.SetAnalysis(AnalysisMediaPipeOnly)
	if got := r.Snapshot().Analysis; got != AnalysisMediaPipeOnly {
		t.Errorf("Analysis after write = %q, want %q", got, AnalysisMediaPipeOnly)
	}

	r.SetVisualization(VisMovementSDKMediaPipe)
	snap := r.Snapshot()
	if snap.Visualization != VisMovementSDKMediaPipe {
		t.Errorf("Visualization after write = %q, want %q", snap.Visualization, VisMovementSDKMediaPipe)
	}
	// The earlier analysis write is still in effect.
	if snap.Analysis != AnalysisMediaPipeOnly {
		t.Errorf("Analysis = %q, want %q", snap.Analysis, AnalysisMediaPipeOnly)
	}
}

func TestValidSources(t *testing.T) {
	if !ValidAnalysis(AnalysisOpenXRMediaPipe) || !ValidAnalysis(AnalysisMediaPipeOnly) {
		t.Error("known analysis sources reported invalid")
	}
	if ValidAnalysis("kinect") {
		t.Error("unknown analysis source reported valid")
	}
	if !ValidVisualization(VisMovementSDKOnly) || !ValidVisualization(VisMovementSDKMediaPipe) {
		t.Error("known visualization sources reported invalid")
	}
	if ValidVisualization("") {
		t.Error("empty visualization source reported valid")
	}
}
