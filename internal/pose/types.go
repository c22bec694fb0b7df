// Package pose defines the pose telemetry data model and its wire encoding.
//
// A PoseFrame is one complete, independently decodable telemetry snapshot:
// the HMD transform plus a variable-length set of named joints, tagged with
// the pipeline it feeds and the source configuration active at build time.
// Frames are constructed fresh each tick, encoded, sent and discarded; no
// history is retained.
package pose

// PipelineKind identifies which downstream consumer a frame is built for.
type PipelineKind string

const (
	// PipelineAnalysis feeds the authoritative joint-geometry pipeline.
	PipelineAnalysis PipelineKind = "Analysis"

	// PipelineVisualization feeds the rendering-oriented pipeline.
	PipelineVisualization PipelineKind = "Visualization"
)

// Vec3 is a position in meters, host world space.
type Vec3 struct {
	X float32 `cbor:"x"`
	Y float32 `cbor:"y"`
	Z float32 `cbor:"z"`
}

// Quat is a unit quaternion (x, y, z, w). This layer does not renormalize:
// whatever magnitude the host runtime reports is passed through.
type Quat struct {
	X float32 `cbor:"x"`
	Y float32 `cbor:"y"`
	Z float32 `cbor:"z"`
	W float32 `cbor:"w"`
}

// Transform is a single pose: position plus orientation.
type Transform struct {
	Position Vec3 `cbor:"position"`
	Rotation Quat `cbor:"rotation"`
}

// Identity returns the identity transform with a unit rotation.
func Identity() Transform {
	return Transform{Rotation: Quat{W: 1}}
}

// Joint is one named joint sample within a frame. Names are stable
// identifiers unique within a frame. Confidence is in [0,1]; sources
// without a native confidence model report 1.0 when tracked.
type Joint struct {
	Name       string    `cbor:"name"`
	Pose       Transform `cbor:"pose"`
	Confidence float32   `cbor:"confidence"`
}

// Metadata carries the full source configuration active when the frame was
// built. Both source labels are always stamped, regardless of which pipeline
// the frame belongs to, so any single frame reveals the whole configuration.
// Notes is freeform diagnostic text, never machine-parsed.
type Metadata struct {
	VisualizationOnly   bool   `cbor:"visualization_only"`
	AnalysisSource      string `cbor:"analysis_source"`
	VisualizationSource string `cbor:"visualization_source"`
	Notes               string `cbor:"notes,omitempty"`
}

// Frame is one telemetry snapshot sent as a single datagram.
//
// Timestamp is seconds on the sender's local clock; it is not synchronized
// with the receiver. HMD is always present, falling back to the identity
// transform when the headset pose is unavailable. Joint order is emission
// order and carries no meaning; length varies frame to frame.
type Frame struct {
	Pipeline  PipelineKind `cbor:"pipeline"`
	Source    string       `cbor:"pipeline_source"`
	Timestamp float64      `cbor:"timestamp"`
	HMD       Transform    `cbor:"hmd"`
	Joints    []Joint      `cbor:"joints"`
	Metadata  Metadata     `cbor:"metadata"`
}
