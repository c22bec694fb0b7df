package track

import "github.com/openmoveio/posestream/internal/pose"

// NodeBinding maps a wire joint name to a host spatial-tracking node.
type NodeBinding struct {
	// Joint is the name stamped on the wire (e.g. "head", "left_hand").
	Joint string `json:"joint"`

	// Node is the host runtime's node identifier.
	Node string `json:"node"`
}

// NodeAdapter samples a fixed, caller-configured list of named node bindings
// from the host's generic spatial-tracking input.
//
// Each binding independently reports tracked or untracked; untracked
// bindings are omitted from the joint sequence. There is no confidence
// gradation in this model: a tracked node is reported at 1.0, an untracked
// node is simply absent.
type NodeAdapter struct {
	resolver NodeResolver
	bindings []NodeBinding
	hmd      HMDConfig
}

// NewNodeAdapter creates a node adapter over the given resolver and
// bindings.
func NewNodeAdapter(resolver NodeResolver, bindings []NodeBinding, hmd HMDConfig) *NodeAdapter {
	return &NodeAdapter{resolver: resolver, bindings: bindings, hmd: hmd}
}

// Available reports whether any configured binding currently resolves to a
// tracked pose.
func (a *NodeAdapter) Available() bool {
	for _, b := range a.bindings {
		if _, ok := a.resolver.Resolve(b.Node); ok {
			return true
		}
	}
	return false
}

// Joints returns one sample per currently tracked binding, in binding
// order. Untracked bindings are omitted.
func (a *NodeAdapter) Joints() []pose.Joint {
	joints := make([]pose.Joint, 0, len(a.bindings))
	for _, b := range a.bindings {
		p, ok := a.resolver.Resolve(b.Node)
		if !ok {
			continue
		}
		joints = append(joints, pose.Joint{
			Name:       b.Joint,
			Pose:       p,
			Confidence: 1.0,
		})
	}
	return joints
}

// HMD returns the headset transform via the configured fallback chain.
func (a *NodeAdapter) HMD() pose.Transform {
	return a.hmd.resolve(a.resolver)
}
