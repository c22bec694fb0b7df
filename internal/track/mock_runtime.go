package track

import (
	"math"
	"sync"

	"github.com/openmoveio/posestream/internal/pose"
)

// MockRuntime implements SkeletonProvider and NodeResolver for tests and
// for running the sender without a real host runtime attached (dev mode).
type MockRuntime struct {
	mu sync.Mutex

	// SkeletonState is returned by Skeleton.
	SkeletonState SkeletonSnapshot

	// Nodes maps node names to poses. A node absent from the map is
	// untracked.
	Nodes map[string]pose.Transform
}

// NewMockRuntime creates an empty mock runtime: invalid skeleton, no
// tracked nodes.
func NewMockRuntime() *MockRuntime {
	return &MockRuntime{Nodes: map[string]pose.Transform{}}
}

// Skeleton returns the current mock skeleton snapshot.
func (m *MockRuntime) Skeleton() SkeletonSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SkeletonState
}

// Resolve returns the mock pose for a node, reporting whether it is set.
func (m *MockRuntime) Resolve(node string) (pose.Transform, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Nodes[node]
	return p, ok
}

// SetSkeleton replaces the mock skeleton snapshot.
func (m *MockRuntime) SetSkeleton(s SkeletonSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SkeletonState = s
}

// SetNode marks a node tracked at the given pose.
func (m *MockRuntime) SetNode(node string, p pose.Transform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Nodes[node] = p
}

// ClearNode marks a node untracked.
func (m *MockRuntime) ClearNode(node string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Nodes, node)
}

// defaultMockBones is a minimal upper-body chain for synthesized motion.
var defaultMockBones = []string{
	"Hips", "SpineLower", "SpineUpper", "Chest", "Neck", "Head",
	"LeftShoulder", "LeftArmUpper", "LeftArmLower", "LeftHandWrist",
	"RightShoulder", "RightArmUpper", "RightArmLower", "RightHandWrist",
}

// Animate fills the mock with smoothly varying tracked state for elapsed
// seconds t: a valid, confident skeleton swaying sinusoidally plus tracked
// head, hand and center-eye nodes. Useful for driving the sender end to end
// without hardware.
func (m *MockRuntime) Animate(t float64) {
	bones := make([]Bone, 0, len(defaultMockBones))
	for i, id := range defaultMockBones {
		phase := t + float64(i)*0.3
		bones = append(bones, Bone{
			ID: id,
			Pose: pose.Transform{
				Position: pose.Vec3{
					X: float32(0.1 * math.Sin(phase)),
					Y: float32(1.0 + 0.05*float64(i)),
					Z: float32(0.1 * math.Cos(phase*0.7)),
				},
				Rotation: pose.Quat{W: 1},
			},
		})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.SkeletonState = SkeletonSnapshot{Valid: true, HighConfidence: true, Bones: bones}

	head := pose.Transform{
		Position: pose.Vec3{
			X: float32(0.05 * math.Sin(t*0.5)),
			Y: 1.7,
			Z: float32(0.05 * math.Cos(t*0.5)),
		},
		Rotation: pose.Quat{W: 1},
	}
	m.Nodes["head"] = head
	m.Nodes["center_eye"] = head
	m.Nodes["left_hand"] = pose.Transform{
		Position: pose.Vec3{X: -0.3, Y: float32(1.2 + 0.2*math.Sin(t)), Z: 0.2},
		Rotation: pose.Quat{W: 1},
	}
	m.Nodes["right_hand"] = pose.Transform{
		Position: pose.Vec3{X: 0.3, Y: float32(1.2 + 0.2*math.Cos(t)), Z: 0.2},
		Rotation: pose.Quat{W: 1},
	}
}
