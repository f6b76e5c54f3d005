package motion

import "github.com/nagadomi/motion-supporter/internal/geom"

// CubicBezier is the interpolation curve leading into a keyframe: a cubic
// Bezier over the unit square with fixed endpoints P0=(0,0), P3=(1,1) and
// caller-supplied control points P1, P2. Evaluating it at a normalized
// frame ratio x returns the eased ratio y used to blend rotation/position
// between the previous keyframe and this one.
//
// RegistBF needs this to split a neighbor's curve so an inserted key is
// exact while the curve's surrounding shape is preserved.
type CubicBezier struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Linear is the identity interpolation curve (no easing).
var Linear = CubicBezier{X1: 0, Y1: 0, X2: 1, Y2: 1}

func (b CubicBezier) pointAt(t float64) (x, y float64) {
	mt := 1 - t
	// Cubic Bezier with P0=(0,0), P3=(1,1).
	x = 3*mt*mt*t*b.X1 + 3*mt*t*t*b.X2 + t*t*t
	y = 3*mt*mt*t*b.Y1 + 3*mt*t*t*b.Y2 + t*t*t
	return x, y
}

// EvaluateY returns the eased y for a given normalized x in [0, 1], solving
// for the Bezier parameter t via bisection (the curve's x(t) is monotonic
// for any well-formed interpolation control points).
func (b CubicBezier) EvaluateY(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < 32; i++ {
		mid := (lo + hi) / 2
		cx, _ := b.pointAt(mid)
		if cx < x {
			lo = mid
		} else {
			hi = mid
		}
	}
	t := (lo + hi) / 2
	_, y := b.pointAt(t)
	return y
}

// Split divides the curve at normalized x into a left curve (covering
// [0, x] reparameterized to the unit square) and a right curve (covering
// [x, 1]), using de Casteljau subdivision at the parameter t where the
// curve's x(t) equals x. The two curves glued back together along their
// shared point reproduce the original curve's shape, which is what lets
// RegistBF insert an exact keyframe without visibly kinking the motion.
func (b CubicBezier) Split(x float64) (left, right CubicBezier) {
	t := b.paramAtX(x)

	p0x, p0y := 0.0, 0.0
	p1x, p1y := b.X1, b.Y1
	p2x, p2y := b.X2, b.Y2
	p3x, p3y := 1.0, 1.0

	// de Casteljau subdivision at parameter t.
	q0x, q0y := lerp2(p0x, p0y, p1x, p1y, t)
	q1x, q1y := lerp2(p1x, p1y, p2x, p2y, t)
	q2x, q2y := lerp2(p2x, p2y, p3x, p3y, t)

	r0x, r0y := lerp2(q0x, q0y, q1x, q1y, t)
	r1x, r1y := lerp2(q1x, q1y, q2x, q2y, t)

	sx, sy := lerp2(r0x, r0y, r1x, r1y, t)

	left = normalizeControl(p0x, p0y, q0x, q0y, r0x, r0y, sx, sy)
	right = normalizeControl(sx, sy, r1x, r1y, q2x, q2y, p3x, p3y)
	return left, right
}

func (b CubicBezier) paramAtX(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < 32; i++ {
		mid := (lo + hi) / 2
		cx, _ := b.pointAt(mid)
		if cx < x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func lerp2(x0, y0, x1, y1, t float64) (float64, float64) {
	return geom.Lerp(x0, x1, t), geom.Lerp(y0, y1, t)
}

// normalizeControl rescales a subdivided cubic Bezier segment (p0..p3, not
// necessarily spanning the unit square) back onto the unit square so it can
// be stored as a CubicBezier with implicit P0=(0,0)/P3=(1,1) endpoints.
func normalizeControl(p0x, p0y, p1x, p1y, p2x, p2y, p3x, p3y float64) CubicBezier {
	dx, dy := p3x-p0x, p3y-p0y
	if dx == 0 {
		dx = 1
	}
	if dy == 0 {
		dy = 1
	}
	return CubicBezier{
		X1: (p1x - p0x) / dx,
		Y1: (p1y - p0y) / dy,
		X2: (p2x - p0x) / dx,
		Y2: (p2y - p0y) / dy,
	}
}
