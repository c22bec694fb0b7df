// Package track adapts host tracking runtimes into the common pose-sample
// shape consumed by the packet builder.
//
// Two adapters exist: SkeletonAdapter samples every bone of a body skeleton
// exposed by the host SDK, and NodeAdapter samples a fixed list of named
// spatial-tracking nodes. They deliberately do not agree on joint taxonomy
// or confidence semantics; the wire schema normalizes both into one shape so
// a consumer can treat either source uniformly.
package track

import (
	"github.com/openmoveio/posestream/internal/geom"
	"github.com/openmoveio/posestream/internal/pose"
)

// Source is the capability contract shared by both adapters. The packet
// builder and session depend only on this interface, never on a concrete
// adapter type.
type Source interface {
	// Available reports whether the underlying source can currently
	// produce a tracked pose. When false the tick is skipped entirely;
	// this is not an error.
	Available() bool

	// Joints returns the current joint samples. It fails soft: in the
	// first frames after session start, before bones or nodes are
	// populated, it returns an empty slice rather than an error.
	Joints() []pose.Joint

	// HMD returns the current headset transform. It never fails: when no
	// tracked pose is available it falls back to the configured fallback
	// transform, and past that to the identity pose.
	HMD() pose.Transform
}

// NodeResolver is the host runtime's generic spatial-tracking input: it maps
// a node name to its current pose, reporting whether the node is tracked.
type NodeResolver interface {
	Resolve(node string) (pose.Transform, bool)
}

// HMDConfig describes how an adapter derives the headset transform.
//
// Resolution order: the proxy node (with the optional local offset composed
// on), then the fallback transform, then identity.
type HMDConfig struct {
	// ProxyNode names the center-eye or HMD-proxy node to resolve.
	ProxyNode string

	// Offset, when non-nil, is a local transform composed onto the proxy
	// node's pose (e.g. deriving center-eye from a head node).
	Offset *pose.Transform

	// Fallback, when non-nil, is used when the proxy node does not
	// resolve.
	Fallback *pose.Transform
}

// resolve walks the fallback chain against the given resolver, which may be
// nil for sources without node access.
func (c HMDConfig) resolve(r NodeResolver) pose.Transform {
	if r != nil && c.ProxyNode != "" {
		if p, ok := r.Resolve(c.ProxyNode); ok {
			if c.Offset != nil {
				return geom.Compose(p, *c.Offset)
			}
			return p
		}
	}
	if c.Fallback != nil {
		return *c.Fallback
	}
	return pose.Identity()
}
