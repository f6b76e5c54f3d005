package skeleton

// BoneLinks is an ordered sequence of bones, derived (never persisted) for a
// single evaluation pass. Model.LinkToTop builds it in FK evaluation order:
// root-to-tip, last entry is the bone of interest (the IK bone or its
// effector). The bake engine's CCD solve order (ik_links) is a separate
// []ik.Link, ordered tip-to-root with the effector first.
type BoneLinks []*Bone

// Last returns the final bone in the chain, or nil if the chain is empty.
func (l BoneLinks) Last() *Bone {
	if len(l) == 0 {
		return nil
	}
	return l[len(l)-1]
}

// Names returns the bone names in chain order.
func (l BoneLinks) Names() []string {
	names := make([]string, len(l))
	for i, b := range l {
		names[i] = b.Name
	}
	return names
}
