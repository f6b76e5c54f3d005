package motion

import "github.com/nagadomi/motion-supporter/internal/geom"

// Keyframe is a single explicit key on a bone's track: a unit quaternion
// rotation, a translation, and the interpolation curve that eases into this
// key from the previous one. Translation and the interpolation curve are
// largely opaque to the geometry/IK core, but RegistBF still
// needs to split curves to keep densified motion visually unchanged.
type Keyframe struct {
	Frame       int
	Rotation    geom.Quaternion
	Translation geom.Vector3
	Interp      CubicBezier
}

// identityKeyframe is what CalcBF returns for a bone with no explicit keys.
func identityKeyframe(frame int) Keyframe {
	return Keyframe{Frame: frame, Rotation: geom.Identity, Interp: Linear}
}

func (k Keyframe) clone() Keyframe { return k }
