// Package motion implements the sparse keyframed rotation store each bake
// job reads from and writes to: CalcBF (interpolated lookup), RegistBF
// (exact insertion with curve-preserving splits), and the densification
// pre-pass (GetDifferFnos).
//
// Concurrency: the store is shared across bake jobs under a
// disjointness invariant (each job only ever touches the bones in its own
// ik_links plus its transferee). The per-bone-name shard lock below is the
// "fine-grained per-bone locks, the bone-name map is the natural shard key"
// strategy the design notes call for — a plain Go map is not safe for
// concurrent access even across distinct keys, so the top-level index uses
// sync.Map and each track carries its own mutex for defense in depth.
package motion

import (
	"sort"
	"sync"

	"github.com/nagadomi/motion-supporter/internal/geom"
)

// track is one bone's sorted keyframe set.
type track struct {
	mu     sync.Mutex
	frames []Keyframe // sorted ascending by Frame.
}

// Motion is the keyframed rotation/translation store for every bone.
type Motion struct {
	tracks sync.Map // string -> *track
}

// New returns an empty motion store.
func New() *Motion { return &Motion{} }

func (m *Motion) trackFor(name string) *track {
	v, _ := m.tracks.LoadOrStore(name, &track{})
	return v.(*track)
}

func (m *Motion) existingTrack(name string) (*track, bool) {
	v, ok := m.tracks.Load(name)
	if !ok {
		return nil, false
	}
	return v.(*track), true
}

// CalcBF returns the interpolated keyframe for name at fno. A bone with no
// keys at all returns an identity keyframe (zero translation, identity
// rotation).
func (m *Motion) CalcBF(name string, fno int) Keyframe {
	tr, ok := m.existingTrack(name)
	if !ok {
		return identityKeyframe(fno)
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return interpolate(tr.frames, fno)
}

// interpolate assumes frames is sorted ascending by Frame and tr is locked.
func interpolate(frames []Keyframe, fno int) Keyframe {
	if len(frames) == 0 {
		return identityKeyframe(fno)
	}
	i := sort.Search(len(frames), func(i int) bool { return frames[i].Frame >= fno })
	if i < len(frames) && frames[i].Frame == fno {
		return frames[i]
	}
	if i == 0 {
		return Keyframe{Frame: fno, Rotation: frames[0].Rotation, Translation: frames[0].Translation, Interp: Linear}
	}
	if i == len(frames) {
		last := frames[len(frames)-1]
		return Keyframe{Frame: fno, Rotation: last.Rotation, Translation: last.Translation, Interp: Linear}
	}
	prev, next := frames[i-1], frames[i]
	ratio := float64(fno-prev.Frame) / float64(next.Frame-prev.Frame)
	eased := next.Interp.EvaluateY(ratio)
	return Keyframe{
		Frame:       fno,
		Rotation:    geom.Slerp(prev.Rotation, next.Rotation, eased),
		Translation: prev.Translation.Scale(1 - eased).Add(next.Translation.Scale(eased)),
		Interp:      Linear,
	}
}

// RegistBF inserts or replaces the keyframe at fno. When fno lands strictly
// between two existing keys, the following key's interpolation curve is
// split (CubicBezier.Split) at the insertion point so the new key is exact
// while the surrounding curve's shape is preserved.
func (m *Motion) RegistBF(bf Keyframe, name string, fno int) {
	bf.Frame = fno
	tr := m.trackFor(name)
	tr.mu.Lock()
	defer tr.mu.Unlock()

	frames := tr.frames
	i := sort.Search(len(frames), func(i int) bool { return frames[i].Frame >= fno })
	if i < len(frames) && frames[i].Frame == fno {
		bf.Interp = frames[i].Interp
		frames[i] = bf
		tr.frames = frames
		return
	}

	// Splitting only makes sense strictly between two existing keys; at the
	// ends the new key simply extends the track with a linear lead-in.
	if i > 0 && i < len(frames) {
		prev, next := frames[i-1], frames[i]
		ratio := float64(fno-prev.Frame) / float64(next.Frame-prev.Frame)
		left, right := next.Interp.Split(ratio)
		bf.Interp = left
		next.Interp = right
		frames[i] = next
	} else if bf.Interp == (CubicBezier{}) {
		bf.Interp = Linear
	}

	frames = append(frames, Keyframe{})
	copy(frames[i+1:], frames[i:])
	frames[i] = bf
	tr.frames = frames
}

// GetBoneFnos returns the sorted frame numbers that have an explicit key on
// the named bone's track.
func (m *Motion) GetBoneFnos(name string) []int {
	tr, ok := m.existingTrack(name)
	if !ok {
		return nil
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	fnos := make([]int, len(tr.frames))
	for i, f := range tr.frames {
		fnos[i] = f.Frame
	}
	return fnos
}

// HasKeys reports whether the named bone has at least one explicit key.
func (m *Motion) HasKeys(name string) bool {
	tr, ok := m.existingTrack(name)
	if !ok {
		return false
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return len(tr.frames) > 0
}

// DeleteBone removes a bone's entire track. Used after baking: the IK
// bone's own authored rotation has been absorbed into its transferee, so
// its track is dropped from the working motion.
func (m *Motion) DeleteBone(name string) {
	m.tracks.Delete(name)
}

// Copy returns a deep snapshot of m, used to capture org_motion before the
// working copy is mutated.
func (m *Motion) Copy() *Motion {
	out := New()
	m.tracks.Range(func(key, value interface{}) bool {
		tr := value.(*track)
		tr.mu.Lock()
		frames := make([]Keyframe, len(tr.frames))
		copy(frames, tr.frames)
		tr.mu.Unlock()
		out.tracks.Store(key, &track{frames: frames})
		return true
	})
	return out
}

// BoneNames returns the names of every bone with a track (keyed or not).
func (m *Motion) BoneNames() []string {
	var names []string
	m.tracks.Range(func(key, _ interface{}) bool {
		names = append(names, key.(string))
		return true
	})
	sort.Strings(names)
	return names
}
