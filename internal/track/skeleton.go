package track

import "github.com/openmoveio/posestream/internal/pose"

// Bone is one bone of the host SDK's body skeleton. ID is the SDK's stable
// bone identifier and becomes the joint name on the wire.
type Bone struct {
	ID   string
	Pose pose.Transform
}

// SkeletonSnapshot is the host SDK's current view of the body skeleton.
// Valid and HighConfidence are the SDK's skeleton-wide flag pair; there is
// no per-bone confidence in this model.
type SkeletonSnapshot struct {
	Valid          bool
	HighConfidence bool
	Bones          []Bone
}

// SkeletonProvider is the host SDK surface the skeleton adapter polls.
type SkeletonProvider interface {
	Skeleton() SkeletonSnapshot
}

// SkeletonAdapter samples every bone of a hierarchical body skeleton.
//
// Confidence is a single skeleton-wide scalar: when the SDK's validity and
// confidence flags both hold, every joint is reported at 1.0; when either
// flag is down the whole frame is suppressed via Available. Partial
// per-joint confidence is not modeled by this source.
type SkeletonAdapter struct {
	provider SkeletonProvider
	resolver NodeResolver
	hmd      HMDConfig
}

// NewSkeletonAdapter creates a skeleton adapter over the given provider.
// resolver may be nil when the host offers no node access; the HMD then
// comes from the config's fallback chain.
func NewSkeletonAdapter(provider SkeletonProvider, resolver NodeResolver, hmd HMDConfig) *SkeletonAdapter {
	return &SkeletonAdapter{provider: provider, resolver: resolver, hmd: hmd}
}

// Available reports whether the skeleton is structurally valid and the SDK
// has sufficient tracking confidence.
func (a *SkeletonAdapter) Available() bool {
	snap := a.provider.Skeleton()
	return snap.Valid && snap.HighConfidence
}

// Joints returns one sample per bone at confidence 1.0. Before the SDK
// populates the skeleton it returns an empty slice.
func (a *SkeletonAdapter) Joints() []pose.Joint {
	snap := a.provider.Skeleton()
	if len(snap.Bones) == 0 {
		return nil
	}
	joints := make([]pose.Joint, 0, len(snap.Bones))
	for _, b := range snap.Bones {
		joints = append(joints, pose.Joint{
			Name:       b.ID,
			Pose:       b.Pose,
			Confidence: 1.0,
		})
	}
	return joints
}

// HMD returns the headset transform via the configured fallback chain.
func (a *SkeletonAdapter) HMD() pose.Transform {
	return a.hmd.resolve(a.resolver)
}
