package contact

import (
	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/bvh"
	"github.com/san-kum/rigidsim/internal/linalg"
)

// SphereCollisions is the narrow phase behind the broad-phase tree: each
// overlapping pair is tested sphere against sphere and becomes a contact
// whose normal pushes the first body away from the second.
type SphereCollisions struct {
	Tree        *bvh.Tree[body.Body]
	Restitution float64
	// PairBudget caps the broad-phase pairs examined per step. Zero means
	// the contact budget passed to AddContact.
	PairBudget int

	lastPairs int
}

func NewSphereCollisions(tree *bvh.Tree[body.Body], restitution float64, pairBudget int) *SphereCollisions {
	return &SphereCollisions{Tree: tree, Restitution: restitution, PairBudget: pairBudget}
}

// LastPairs is the number of broad-phase pairs examined by the last call.
func (s *SphereCollisions) LastPairs() int { return s.lastPairs }

func (s *SphereCollisions) AddContact(out []Contact) int {
	s.lastPairs = 0
	if len(out) == 0 || s.Tree.Len() < 2 {
		return 0
	}
	s.Tree.Refit()

	budget := s.PairBudget
	if budget <= 0 {
		budget = len(out)
	}
	pairs := s.Tree.PotentialContacts(budget)
	s.lastPairs = len(pairs)

	n := 0
	for _, p := range pairs {
		if n == len(out) {
			break
		}
		if c, ok := s.collide(p.Items[0], p.Items[1]); ok {
			out[n] = c
			n++
		}
	}
	return n
}

func (s *SphereCollisions) collide(a, b body.Body) (Contact, bool) {
	if !a.HasFiniteMass() && !b.HasFiniteMass() {
		return Contact{}, false
	}
	sa, sb := a.BoundingSphere(), b.BoundingSphere()
	offset := sa.Center.Sub(sb.Center)
	penetration := sa.Radius + sb.Radius - offset.Len()
	if penetration < 0 {
		return Contact{}, false
	}

	normal := linalg.Normalized(offset)
	if linalg.IsZero(normal) {
		normal = linalg.Up
	}
	return Contact{
		Bodies:      [2]body.Body{a, b},
		Normal:      normal,
		Penetration: penetration,
		Restitution: s.Restitution,
	}, true
}
