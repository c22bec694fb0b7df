package track

import (
	"testing"

	"github.com/openmoveio/posestream/internal/pose"
)

func testBones() []Bone {
	return []Bone{
		{ID: "Hips", Pose: pose.Transform{Position: pose.Vec3{Y: 1.0}, Rotation: pose.Quat{W: 1}}},
		{ID: "Head", Pose: pose.Transform{Position: pose.Vec3{Y: 1.7}, Rotation: pose.Quat{W: 1}}},
	}
}

func TestSkeletonAvailability(t *testing.T) {
	tests := []struct {
		name       string
		valid      bool
		confidence bool
		want       bool
	}{
		{"valid and confident", true, true, true},
		{"valid but low confidence", true, false, false},
		{"invalid but confident", false, true, false},
		{"neither", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := NewMockRuntime()
			rt.SetSkeleton(SkeletonSnapshot{
				Valid:          tt.valid,
				HighConfidence: tt.confidence,
				Bones:          testBones(),
			})
			a := NewSkeletonAdapter(rt, rt, HMDConfig{})
			if got := a.Available(); got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSkeletonJointsCarryFullConfidence(t *testing.T) {
	rt := NewMockRuntime()
	rt.SetSkeleton(SkeletonSnapshot{Valid: true, HighConfidence: true, Bones: testBones()})
	a := NewSkeletonAdapter(rt, rt, HMDConfig{})

	joints := a.Joints()
	if len(joints) != 2 {
		t.Fatalf("got %d joints, want 2", len(joints))
	}
	for _, j := range joints {
		if j.Confidence != 1.0 {
			t.Errorf("joint %s confidence = %v, want 1.0", j.Name, j.Confidence)
		}
	}
	if joints[0].Name != "Hips" || joints[1].Name != "Head" {
		t.Errorf("joint names = %s, %s; want bone IDs in order", joints[0].Name, joints[1].Name)
	}
}

func TestSkeletonJointsEmptyBeforePopulation(t *testing.T) {
	// First frames after session start: flags may be up before bones are.
	rt := NewMockRuntime()
	rt.SetSkeleton(SkeletonSnapshot{Valid: true, HighConfidence: true})
	a := NewSkeletonAdapter(rt, rt, HMDConfig{})

	if joints := a.Joints(); len(joints) != 0 {
		t.Errorf("Joints() before population = %v, want empty", joints)
	}
}

func TestSkeletonHMDFallbackChain(t *testing.T) {
	eye := pose.Transform{Position: pose.Vec3{Y: 1.7}, Rotation: pose.Quat{W: 1}}
	fallback := pose.Transform{Position: pose.Vec3{Y: 1.6}, Rotation: pose.Quat{W: 1}}

	t.Run("proxy node wins", func(t *testing.T) {
		rt := NewMockRuntime()
		rt.SetNode("center_eye", eye)
		a := NewSkeletonAdapter(rt, rt, HMDConfig{ProxyNode: "center_eye", Fallback: &fallback})
		if got := a.HMD(); got != eye {
			t.Errorf("HMD() = %+v, want center-eye pose", got)
		}
	})

	t.Run("fallback when node untracked", func(t *testing.T) {
		rt := NewMockRuntime()
		a := NewSkeletonAdapter(rt, rt, HMDConfig{ProxyNode: "center_eye", Fallback: &fallback})
		if got := a.HMD(); got != fallback {
			t.Errorf("HMD() = %+v, want fallback pose", got)
		}
	})

	t.Run("identity when nothing configured", func(t *testing.T) {
		rt := NewMockRuntime()
		a := NewSkeletonAdapter(rt, rt, HMDConfig{ProxyNode: "center_eye"})
		if got := a.HMD(); got != pose.Identity() {
			t.Errorf("HMD() = %+v, want identity", got)
		}
	})

	t.Run("identity with nil resolver", func(t *testing.T) {
		rt := NewMockRuntime()
		a := NewSkeletonAdapter(rt, nil, HMDConfig{ProxyNode: "center_eye"})
		if got := a.HMD(); got != pose.Identity() {
			t.Errorf("HMD() = %+v, want identity", got)
		}
	})
}
