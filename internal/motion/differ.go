package motion

import (
	"sort"

	"github.com/nagadomi/motion-supporter/internal/geom"
)

// GetDifferFnos returns the sorted frames, at or after start, where any of
// the named bones' actual (Bezier-eased) interpolated pose differs from a
// naive piecewise-linear interpolation of the same two bracketing keys by
// more than limitDegrees of rotation or limitLength of translation. The
// bake engine uses this to "densify" a track before baking so CCD samples
// the authored motion finely enough to reproduce it.
func (m *Motion) GetDifferFnos(start int, names []string, limitDegrees, limitLength float64) []int {
	seen := make(map[int]struct{})
	for _, name := range names {
		tr, ok := m.existingTrack(name)
		if !ok {
			continue
		}
		tr.mu.Lock()
		frames := make([]Keyframe, len(tr.frames))
		copy(frames, tr.frames)
		tr.mu.Unlock()

		for i := 1; i < len(frames); i++ {
			f0, f1 := frames[i-1], frames[i]
			for fno := f0.Frame + 1; fno < f1.Frame; fno++ {
				if fno < start {
					continue
				}
				actual := interpolate(frames, fno)
				linear := linearBlend(f0, f1, fno)
				if rotationDiffDegrees(actual.Rotation, linear.Rotation) > limitDegrees {
					seen[fno] = struct{}{}
					continue
				}
				if actual.Translation.Sub(linear.Translation).Len() > limitLength {
					seen[fno] = struct{}{}
				}
			}
		}
	}
	fnos := make([]int, 0, len(seen))
	for fno := range seen {
		fnos = append(fnos, fno)
	}
	sort.Ints(fnos)
	return fnos
}

// linearBlend interpolates prev/next using a plain (un-eased) ratio,
// standing in for "linear interpolation of its existing keys" independent
// of whatever Bezier curve actually governs the segment.
func linearBlend(prev, next Keyframe, fno int) Keyframe {
	ratio := float64(fno-prev.Frame) / float64(next.Frame-prev.Frame)
	return Keyframe{
		Frame:       fno,
		Rotation:    geom.Slerp(prev.Rotation, next.Rotation, ratio),
		Translation: prev.Translation.Scale(1 - ratio).Add(next.Translation.Scale(ratio)),
	}
}

// rotationDiffDegrees returns the angular distance between a and b, in
// degrees.
func rotationDiffDegrees(a, b geom.Quaternion) float64 {
	return a.Conj().Mult(b).ToDegree()
}
