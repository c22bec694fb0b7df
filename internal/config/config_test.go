package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, "sender.json", `{
		"destination": "10.0.0.5:9100",
		"rate_hz": 60,
		"analysis_source": "mediapipe",
		"visualization_source": "movementsdk+mediapipe",
		"node_bindings": [
			{"joint": "head", "node": "hmd_root"}
		],
		"hmd_node": "hmd_root",
		"recorder_path": "frames.db",
		"listen": ":9091"
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := cfg.GetDestination(); got != "10.0.0.5:9100" {
		t.Errorf("GetDestination() = %q", got)
	}
	if got := cfg.GetRateHz(); got != 60 {
		t.Errorf("GetRateHz() = %d", got)
	}
	if got := string(cfg.GetAnalysisSource()); got != "mediapipe" {
		t.Errorf("GetAnalysisSource() = %q", got)
	}
	if got := string(cfg.GetVisualizationSource()); got != "movementsdk+mediapipe" {
		t.Errorf("GetVisualizationSource() = %q", got)
	}
	bindings := cfg.GetNodeBindings()
	if len(bindings) != 1 || bindings[0].Node != "hmd_root" {
		t.Errorf("GetNodeBindings() = %+v", bindings)
	}
	if got := cfg.GetHMDNode(); got != "hmd_root" {
		t.Errorf("GetHMDNode() = %q", got)
	}
	if got := cfg.GetRecorderPath(); got != "frames.db" {
		t.Errorf("GetRecorderPath() = %q", got)
	}
	if got := cfg.GetListen(); got != ":9091" {
		t.Errorf("GetListen() = %q", got)
	}
}

func TestPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "partial.json", `{"rate_hz": 15}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := cfg.GetRateHz(); got != 15 {
		t.Errorf("GetRateHz() = %d", got)
	}
	if got := cfg.GetDestination(); got != "127.0.0.1:9000" {
		t.Errorf("default destination = %q", got)
	}
	if got := cfg.GetHMDNode(); got != "center_eye" {
		t.Errorf("default HMD node = %q", got)
	}
	if got := cfg.GetRecorderPath(); got != "" {
		t.Errorf("default recorder path = %q, want disabled", got)
	}
	if got := len(cfg.GetNodeBindings()); got != 4 {
		t.Errorf("default bindings = %d, want 4", got)
	}
}

func TestLoadRejections(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad extension", "sender.yaml", `{}`},
		{"invalid JSON", "sender.json", `{not json`},
		{"unparsable destination", "sender.json", `{"destination": "€€€:port"}`},
		{"unknown analysis source", "sender.json", `{"analysis_source": "kinect"}`},
		{"unknown visualization source", "sender.json", `{"visualization_source": "hologram"}`},
		{"incomplete binding", "sender.json", `{"node_bindings": [{"joint": "head"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load accepted an invalid config")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load accepted a missing file")
	}
}
