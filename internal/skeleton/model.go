package skeleton

import (
	"fmt"
	"sort"

	"github.com/nagadomi/motion-supporter/internal/geom"
)

// Model is the full rest-pose skeleton: every bone, indexed both by name and
// by integer index so link-building and IK validation are O(1) lookups.
type Model struct {
	bones   []*Bone
	byName  map[string]*Bone
	byIndex map[int]*Bone
}

// NewModel indexes bones by name and validates that every ParentIndex
// resolves to either -1 (root) or another bone in the slice.
func NewModel(bones []*Bone) (*Model, error) {
	m := &Model{
		bones:   bones,
		byName:  make(map[string]*Bone, len(bones)),
		byIndex: make(map[int]*Bone, len(bones)),
	}
	for _, b := range bones {
		m.byName[b.Name] = b
		m.byIndex[b.Index] = b
	}
	for _, b := range bones {
		if b.ParentIndex >= 0 {
			if _, ok := m.BoneByIndex(b.ParentIndex); !ok {
				return nil, fmt.Errorf("skeleton: bone %q has unresolved parent index %d", b.Name, b.ParentIndex)
			}
		}
		if b.HasIK() {
			if _, ok := m.BoneByIndex(b.IK.TargetIndex); !ok {
				return nil, fmt.Errorf("skeleton: ik bone %q targets unresolved bone index %d", b.Name, b.IK.TargetIndex)
			}
			for _, link := range b.IK.Links {
				if _, ok := m.BoneByIndex(link.BoneIndex); !ok {
					return nil, fmt.Errorf("skeleton: ik bone %q has unresolved link index %d", b.Name, link.BoneIndex)
				}
			}
		}
	}
	return m, nil
}

// Bones returns every bone in the skeleton, in the order they were passed
// to NewModel.
func (m *Model) Bones() []*Bone { return m.bones }

// Bone looks up a bone by name.
func (m *Model) Bone(name string) (*Bone, bool) {
	b, ok := m.byName[name]
	return b, ok
}

// BoneByIndex looks up a bone by its integer index.
func (m *Model) BoneByIndex(index int) (*Bone, bool) {
	b, ok := m.byIndex[index]
	return b, ok
}

// ChildBones returns the bones whose ParentIndex == bone.Index, sorted by
// index to keep the "first in child-enumeration order" transferee-selection
// tie-break deterministic.
func (m *Model) ChildBones(bone *Bone) []*Bone {
	var children []*Bone
	for _, b := range m.bones {
		if b.ParentIndex == bone.Index {
			children = append(children, b)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Index < children[j].Index })
	return children
}

// LocalXAxis returns a bone's effective local X axis: its explicit
// LocalXVector override if set, else the direction to its first child (by
// index), else the convention default of world +X.
func (m *Model) LocalXAxis(name string) geom.Vector3 {
	b, ok := m.Bone(name)
	if !ok {
		return geom.Vector3{X: 1}
	}
	if b.LocalXVector != nil {
		return *b.LocalXVector
	}
	if children := m.ChildBones(b); len(children) > 0 {
		dir := children[0].Position.Sub(b.Position)
		if !dir.AeqZ() {
			return dir.Unit()
		}
	}
	return geom.Vector3{X: 1}
}

// LinkToTop builds the BoneLinks chain from boneName up through parents to
// the root, returned in root-to-tip order ready for FK evaluation.
// isDefined is accepted for interface parity with the source tool's naming
// convention filter; this implementation always walks every ancestor
// regardless of naming convention, matching isDefined=false semantics.
func (m *Model) LinkToTop(boneName string, isDefined bool) (BoneLinks, error) {
	b, ok := m.Bone(boneName)
	if !ok {
		return nil, fmt.Errorf("skeleton: unknown bone %q", boneName)
	}
	chain := []*Bone{b}
	for !b.IsRoot() {
		parent, ok := m.BoneByIndex(b.ParentIndex)
		if !ok {
			return nil, fmt.Errorf("skeleton: bone %q has unresolved parent index %d", b.Name, b.ParentIndex)
		}
		chain = append(chain, parent)
		b = parent
	}
	// chain is tip-to-root; reverse to root-to-tip.
	links := make(BoneLinks, len(chain))
	for i, bone := range chain {
		links[len(chain)-1-i] = bone
	}
	return links, nil
}
