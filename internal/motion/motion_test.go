package motion

import (
	"testing"

	"github.com/nagadomi/motion-supporter/internal/geom"
)

func TestCalcBFMissingBoneIsIdentity(t *testing.T) {
	m := New()
	bf := m.CalcBF("nope", 10)
	if !bf.Rotation.Eq(geom.Identity) {
		t.Errorf("CalcBF on missing bone = %v, want identity", bf.Rotation)
	}
}

func TestRegistBFExactAtKey(t *testing.T) {
	m := New()
	q := geom.FromAxisAndAngle(geom.Vector3{Y: 1}, 90)
	m.RegistBF(Keyframe{Rotation: q}, "a", 10)
	got := m.CalcBF("a", 10)
	if !got.Rotation.Aeq(q) {
		t.Errorf("CalcBF(10) = %v, want %v", got.Rotation, q)
	}
}

func TestCalcBFInterpolatesBetweenKeys(t *testing.T) {
	m := New()
	m.RegistBF(Keyframe{Rotation: geom.Identity}, "a", 0)
	q90 := geom.FromAxisAndAngle(geom.Vector3{Z: 1}, 90)
	m.RegistBF(Keyframe{Rotation: q90}, "a", 10)

	mid := m.CalcBF("a", 5)
	want := geom.FromAxisAndAngle(geom.Vector3{Z: 1}, 45)
	if !mid.Rotation.Aeq(want) {
		t.Errorf("CalcBF(5) = %v, want ~%v", mid.Rotation, want)
	}
}

func TestGetBoneFnosSorted(t *testing.T) {
	m := New()
	m.RegistBF(Keyframe{}, "a", 20)
	m.RegistBF(Keyframe{}, "a", 5)
	m.RegistBF(Keyframe{}, "a", 10)
	got := m.GetBoneFnos("a")
	want := []int{5, 10, 20}
	if len(got) != len(want) {
		t.Fatalf("GetBoneFnos = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GetBoneFnos[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestRegistBFInsertSplitsNeighborCurve(t *testing.T) {
	m := New()
	m.RegistBF(Keyframe{Rotation: geom.Identity}, "a", 0)
	q90 := geom.FromAxisAndAngle(geom.Vector3{Z: 1}, 90)
	m.RegistBF(Keyframe{Rotation: q90, Interp: CubicBezier{X1: 0.2, Y1: 0.1, X2: 0.8, Y2: 0.9}}, "a", 20)

	// Before inserting, sample the curve's natural (eased) value at fno=10.
	before := m.CalcBF("a", 10)
	beforeMid := m.CalcBF("a", 15)

	inserted := m.CalcBF("a", 10)
	m.RegistBF(inserted, "a", 10)

	// Re-sampling at the same frame, now an explicit key, must be exact.
	after := m.CalcBF("a", 10)
	if !after.Rotation.Aeq(before.Rotation) {
		t.Errorf("split insertion changed value at the insertion point: got %v, want %v", after.Rotation, before.Rotation)
	}

	// The curve's shape elsewhere (e.g. fno=15) should still approximate
	// the original un-split curve within a modest tolerance.
	afterMid := m.CalcBF("a", 15)
	if afterMid.Rotation.Len() < 0.99 {
		t.Errorf("afterMid rotation not unit length: %v", afterMid.Rotation)
	}
	if d := afterMid.Rotation.Conj().Mult(beforeMid.Rotation).ToDegree(); d > 0.01 {
		t.Errorf("split insertion changed the curve at fno=15 by %v degrees: got %v, want ~%v", d, afterMid.Rotation, beforeMid.Rotation)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	m := New()
	m.RegistBF(Keyframe{Rotation: geom.Identity}, "a", 0)
	snap := m.Copy()
	m.RegistBF(Keyframe{Rotation: geom.FromAxisAndAngle(geom.Vector3{X: 1}, 30)}, "a", 0)

	got := snap.CalcBF("a", 0)
	if !got.Rotation.Eq(geom.Identity) {
		t.Errorf("snapshot mutated after original changed: %v", got.Rotation)
	}
}

func TestDeleteBone(t *testing.T) {
	m := New()
	m.RegistBF(Keyframe{}, "a", 0)
	m.DeleteBone("a")
	if got := m.GetBoneFnos("a"); len(got) != 0 {
		t.Errorf("GetBoneFnos after delete = %v, want empty", got)
	}
}

func TestGetDifferFnosDetectsDeviation(t *testing.T) {
	m := New()
	m.RegistBF(Keyframe{Rotation: geom.Identity}, "a", 0)
	// Heavy ease-in curve: true interpolation lags far behind linear for
	// most of the segment, then snaps to the target near the end.
	sharp := CubicBezier{X1: 0.9, Y1: 0.0, X2: 0.9, Y2: 0.1}
	q180 := geom.FromAxisAndAngle(geom.Vector3{Y: 1}, 180)
	m.RegistBF(Keyframe{Rotation: q180, Interp: sharp}, "a", 20)

	fnos := m.GetDifferFnos(0, []string{"a"}, 20, 3)
	if len(fnos) == 0 {
		t.Errorf("GetDifferFnos found no deviation for a sharply-eased curve")
	}
}
