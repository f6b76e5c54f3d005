package geom

// SeparateLocalQQ splits qq into a twist about localXAxis (qx) and a swing
// perpendicular to it (qyz), then further resolves qyz into a twist about
// the axis orthogonal to localXAxis in the XZ-free plane (qy) and the
// remaining swing (qz). fno and name are accepted purely for diagnostic
// logging at the call site; they do not affect the result.
//
// Contract: qq ~= qx.Mult(qyz), and qyz ~= qy.Mult(qz) (swing-twist
// decomposition).
func SeparateLocalQQ(fno int, name string, qq Quaternion, localXAxis Vector3) (qx, qy, qz, qyz Quaternion) {
	localZAxis := Vector3{0, 0, -1}
	localYAxis := localXAxis.Cross(localZAxis).Unit()

	qx = twistAbout(qq, localXAxis)
	qyz = qx.Conj().Mult(qq)

	qy = twistAbout(qyz, localYAxis)
	qz = qy.Conj().Mult(qyz)
	return qx, qy, qz, qyz
}

// twistAbout extracts the component of rotation q that is a pure rotation
// about axis, using the standard swing-twist projection. A degenerate axis
// or a q whose twist component has zero magnitude both yield Identity.
func twistAbout(q Quaternion, axis Vector3) Quaternion {
	if axis.AeqZ() {
		return Identity
	}
	a := axis.Unit()
	proj := Vector3{q.X, q.Y, q.Z}.Dot(a)
	p := a.Scale(proj)
	twist := Quaternion{p.X, p.Y, p.Z, q.W}
	if AeqZ(twist.Dot(twist)) {
		return Identity
	}
	return twist.Unit()
}
