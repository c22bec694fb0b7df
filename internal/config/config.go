// Package config loads the sender's JSON configuration file.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"encoding/json"

	"github.com/openmoveio/posestream/internal/registry"
	"github.com/openmoveio/posestream/internal/track"
)

// Config is the sender configuration. All fields are optional; the Get*
// accessors supply defaults, so partial config files are safe.
type Config struct {
	// Destination is the "host:port" the telemetry datagrams go to.
	Destination *string `json:"destination,omitempty"`

	// RateHz limits frame emission. Zero or negative means the default.
	RateHz *int `json:"rate_hz,omitempty"`

	// AnalysisSource and VisualizationSource are the registry defaults
	// applied at startup.
	AnalysisSource      *string `json:"analysis_source,omitempty"`
	VisualizationSource *string `json:"visualization_source,omitempty"`

	// NodeBindings configures the node-pose adapter. Empty means the
	// default head/hands/center-eye set.
	NodeBindings []track.NodeBinding `json:"node_bindings,omitempty"`

	// HMDNode names the center-eye/HMD-proxy node.
	HMDNode *string `json:"hmd_node,omitempty"`

	// RecorderPath is the SQLite file for the frame log. Empty disables
	// recording.
	RecorderPath *string `json:"recorder_path,omitempty"`

	// Listen is the HTTP listen address for the runtime API.
	Listen *string `json:"listen,omitempty"`
}

// Load reads and validates a JSON config file. Fields omitted from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable. An unparsable
// destination is rejected here: no valid destination can ever be derived
// from it, so the process must not start a session with it.
func (c *Config) Validate() error {
	if c.Destination != nil {
		if _, err := net.ResolveUDPAddr("udp", *c.Destination); err != nil {
			return fmt.Errorf("invalid destination %q: %w", *c.Destination, err)
		}
	}
	if c.AnalysisSource != nil && !registry.ValidAnalysis(registry.AnalysisSource(*c.AnalysisSource)) {
		return fmt.Errorf("unknown analysis_source %q", *c.AnalysisSource)
	}
	if c.VisualizationSource != nil && !registry.ValidVisualization(registry.VisualizationSource(*c.VisualizationSource)) {
		return fmt.Errorf("unknown visualization_source %q", *c.VisualizationSource)
	}
	for _, b := range c.NodeBindings {
		if b.Joint == "" || b.Node == "" {
			return fmt.Errorf("node binding must set both joint and node, got %+v", b)
		}
	}
	return nil
}

// GetDestination returns the telemetry destination or the default.
func (c *Config) GetDestination() string {
	if c.Destination == nil || *c.Destination == "" {
		return "127.0.0.1:9000"
	}
	return *c.Destination
}

// GetRateHz returns the emission rate or zero, which the scheduler treats
// as its implicit default.
func (c *Config) GetRateHz() int {
	if c.RateHz == nil {
		return 0
	}
	return *c.RateHz
}

// GetAnalysisSource returns the startup analysis source.
func (c *Config) GetAnalysisSource() registry.AnalysisSource {
	if c.AnalysisSource == nil {
		return registry.AnalysisOpenXRMediaPipe
	}
	return registry.AnalysisSource(*c.AnalysisSource)
}

// GetVisualizationSource returns the startup visualization source.
func (c *Config) GetVisualizationSource() registry.VisualizationSource {
	if c.VisualizationSource == nil {
		return registry.VisMovementSDKOnly
	}
	return registry.VisualizationSource(*c.VisualizationSource)
}

// GetNodeBindings returns the node-pose adapter bindings or the default set.
func (c *Config) GetNodeBindings() []track.NodeBinding {
	if len(c.NodeBindings) > 0 {
		return c.NodeBindings
	}
	return []track.NodeBinding{
		{Joint: "head", Node: "head"},
		{Joint: "left_hand", Node: "left_hand"},
		{Joint: "right_hand", Node: "right_hand"},
		{Joint: "center_eye", Node: "center_eye"},
	}
}

// GetHMDNode returns the center-eye/HMD-proxy node name.
func (c *Config) GetHMDNode() string {
	if c.HMDNode == nil || *c.HMDNode == "" {
		return "center_eye"
	}
	return *c.HMDNode
}

// GetRecorderPath returns the frame log path, empty when recording is off.
func (c *Config) GetRecorderPath() string {
	if c.RecorderPath == nil {
		return ""
	}
	return *c.RecorderPath
}

// GetListen returns the HTTP listen address for the runtime API.
func (c *Config) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return ":8080"
	}
	return *c.Listen
}
