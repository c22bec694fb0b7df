// Package geom provides the small amount of transform arithmetic the
// adapters need: composing a local offset onto a tracked pose.
package geom

import (
	"gonum.org/v1/gonum/num/quat"

	"github.com/openmoveio/posestream/internal/pose"
)

func toQuat(q pose.Quat) quat.Number {
	return quat.Number{Real: float64(q.W), Imag: float64(q.X), Jmag: float64(q.Y), Kmag: float64(q.Z)}
}

func fromQuat(q quat.Number) pose.Quat {
	return pose.Quat{
		X: float32(q.Imag),
		Y: float32(q.Jmag),
		Z: float32(q.Kmag),
		W: float32(q.Real),
	}
}

// Rotate applies rotation r to vector v. r is assumed to be (close to) a
// unit quaternion; no normalization is performed.
func Rotate(r pose.Quat, v pose.Vec3) pose.Vec3 {
	q := toQuat(r)
	p := quat.Number{Imag: float64(v.X), Jmag: float64(v.Y), Kmag: float64(v.Z)}
	out := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return pose.Vec3{X: float32(out.Imag), Y: float32(out.Jmag), Z: float32(out.Kmag)}
}

// Compose applies a local offset to a base transform: the offset position is
// rotated into the base's orientation and added to the base position, and the
// rotations are multiplied (base first, offset second). Used to derive a
// center-eye proxy pose from a head node plus a fixed local offset.
func Compose(base, offset pose.Transform) pose.Transform {
	rotated := Rotate(base.Rotation, offset.Position)
	return pose.Transform{
		Position: pose.Vec3{
			X: base.Position.X + rotated.X,
			Y: base.Position.Y + rotated.Y,
			Z: base.Position.Z + rotated.Z,
		},
		Rotation: fromQuat(quat.Mul(toQuat(base.Rotation), toQuat(offset.Rotation))),
	}
}
