package bvh

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/shape"
)

type ball struct {
	name   string
	center linalg.Vec3
	radius float64
}

func (b *ball) BoundingSphere() shape.BoundingSphere {
	return shape.NewBoundingSphere(b.center, b.radius)
}

func (b *ball) String() string { return b.name }

func newBall(name string, x, y, z, r float64) *ball {
	return &ball{name: name, center: linalg.Vec3{x, y, z}, radius: r}
}

func pairKey(p PotentialContact[*ball]) string {
	a, b := p.Items[0].name, p.Items[1].name
	if a > b {
		a, b = b, a
	}
	return a + "-" + b
}

// checkVolumes verifies every branch encloses both children.
func checkVolumes(g Gomega, tr *Tree[*ball], idx int32) {
	n := &tr.nodes[idx]
	if n.isLeaf() {
		g.Expect(tr.leaves[n.item]).To(Equal(idx))
		return
	}
	for _, c := range n.children {
		g.Expect(tr.nodes[c].parent).To(Equal(idx))
		child := tr.nodes[c].volume
		grown := shape.NewBoundingSphere(n.volume.Center, n.volume.Radius+1e-9)
		g.Expect(grown.Contains(child)).To(BeTrue(), "branch %v does not enclose %v", n.volume, child)
		checkVolumes(g, tr, c)
	}
}

func TestSingleItemHasNoPairs(t *testing.T) {
	g := NewWithT(t)
	tr := New[*ball]()
	tr.Insert(newBall("a", 0, 0, 0, 1))

	g.Expect(tr.PotentialContacts(10)).To(BeEmpty())
	g.Expect(tr.Len()).To(Equal(1))
	g.Expect(tr.NodeCount()).To(Equal(1))
}

func TestTwoOverlappingItems(t *testing.T) {
	g := NewWithT(t)
	a, b := newBall("a", 0, 0, 0, 1), newBall("b", 1.5, 0, 0, 1)
	tr := New[*ball]()
	tr.Insert(a)
	tr.Insert(b)

	pairs := tr.PotentialContacts(10)
	g.Expect(pairs).To(HaveLen(1))
	g.Expect(pairKey(pairs[0])).To(Equal("a-b"))
}

func TestPairBoundary(t *testing.T) {
	tests := []struct {
		name string
		dist float64
		want int
	}{
		{"apart", 2.01, 0},
		{"touching", 2, 1},
		{"overlapping", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			tr := New[*ball]()
			tr.Insert(newBall("a", 0, 0, 0, 1))
			tr.Insert(newBall("b", tt.dist, 0, 0, 1))
			g.Expect(tr.PotentialContacts(4)).To(HaveLen(tt.want))
		})
	}
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	g := NewWithT(t)
	tr := New[*ball]()
	balls := make([]*ball, 0, 8)
	for i := 0; i < 8; i++ {
		b := newBall(fmt.Sprintf("b%d", i), float64(i), float64(i%3), 0, 0.75)
		balls = append(balls, b)
		tr.Insert(b)
		checkVolumes(g, tr, tr.root)
	}
	g.Expect(tr.Len()).To(Equal(8))
	g.Expect(tr.NodeCount()).To(Equal(15))

	for i, b := range balls {
		g.Expect(tr.Remove(b)).To(BeTrue())
		if tr.root != nilNode {
			checkVolumes(g, tr, tr.root)
		}
		g.Expect(tr.Len()).To(Equal(7 - i))
	}

	g.Expect(tr.NodeCount()).To(Equal(0))
	g.Expect(tr.PotentialContacts(10)).To(BeEmpty())
	_, ok := tr.Bounds()
	g.Expect(ok).To(BeFalse())
}

func TestRemoveAbsent(t *testing.T) {
	g := NewWithT(t)
	tr := New[*ball]()
	tr.Insert(newBall("a", 0, 0, 0, 1))
	before := tr.String()

	g.Expect(tr.Remove(newBall("ghost", 0, 0, 0, 1))).To(BeFalse())
	g.Expect(tr.String()).To(Equal(before))
	g.Expect(tr.Len()).To(Equal(1))
}

func TestArenaReusesSlots(t *testing.T) {
	g := NewWithT(t)
	tr := New[*ball]()
	a, b, c := newBall("a", 0, 0, 0, 1), newBall("b", 5, 0, 0, 1), newBall("c", 10, 0, 0, 1)
	tr.Insert(a)
	tr.Insert(b)
	tr.Insert(c)
	g.Expect(tr.nodes).To(HaveLen(5))

	g.Expect(tr.Remove(b)).To(BeTrue())
	g.Expect(tr.NodeCount()).To(Equal(3))

	tr.Insert(newBall("d", 20, 0, 0, 1))
	g.Expect(tr.nodes).To(HaveLen(5))
	g.Expect(tr.NodeCount()).To(Equal(5))
	checkVolumes(g, tr, tr.root)
}

func TestInsertTieGoesToSecondChild(t *testing.T) {
	g := NewWithT(t)
	tr := New[*ball]()
	a, b, c := newBall("a", 0, 0, 0, 1), newBall("b", 10, 0, 0, 1), newBall("c", 5, 0, 0, 1)
	tr.Insert(a)
	tr.Insert(b)
	tr.Insert(c)

	root := tr.nodes[tr.root]
	g.Expect(tr.nodes[root.children[0]].item).To(Equal(a))
	second := tr.nodes[root.children[1]]
	g.Expect(second.isLeaf()).To(BeFalse())
	g.Expect(tr.nodes[second.children[0]].item).To(Equal(b))
	g.Expect(tr.nodes[second.children[1]].item).To(Equal(c))
}

func TestInsertPrefersLeastGrowth(t *testing.T) {
	g := NewWithT(t)
	tr := New[*ball]()
	a, b := newBall("a", 0, 0, 0, 1), newBall("b", 10, 0, 0, 1)
	tr.Insert(a)
	tr.Insert(b)
	tr.Insert(newBall("near-a", 1, 0, 0, 1))

	first := tr.nodes[tr.nodes[tr.root].children[0]]
	g.Expect(first.isLeaf()).To(BeFalse())
	g.Expect(tr.nodes[first.children[0]].item).To(Equal(a))
}

func TestPotentialContactsMatchBruteForce(t *testing.T) {
	g := NewWithT(t)
	rng := rand.New(rand.NewSource(7))
	tr := New[*ball]()
	balls := make([]*ball, 40)
	for i := range balls {
		balls[i] = newBall(fmt.Sprintf("b%02d", i), rng.Float64()*10, rng.Float64()*10, rng.Float64()*10, 0.5+rng.Float64())
		tr.Insert(balls[i])
	}

	want := map[string]bool{}
	for i := range balls {
		for j := i + 1; j < len(balls); j++ {
			if balls[i].BoundingSphere().Overlaps(balls[j].BoundingSphere()) {
				want[pairKey(PotentialContact[*ball]{Items: [2]*ball{balls[i], balls[j]}})] = true
			}
		}
	}

	got := map[string]bool{}
	for _, p := range tr.PotentialContacts(10000) {
		key := pairKey(p)
		g.Expect(got).NotTo(HaveKey(key), "duplicate pair %s", key)
		got[key] = true
	}
	g.Expect(got).To(Equal(want))
}

func TestPotentialContactsHonourLimit(t *testing.T) {
	g := NewWithT(t)
	tr := New[*ball]()
	for i := 0; i < 4; i++ {
		tr.Insert(newBall(fmt.Sprintf("b%d", i), float64(i)*0.1, 0, 0, 1))
	}

	g.Expect(tr.PotentialContacts(100)).To(HaveLen(6))
	g.Expect(tr.PotentialContacts(3)).To(HaveLen(3))
	g.Expect(tr.PotentialContacts(0)).To(BeEmpty())
}

func TestUpdateAfterMove(t *testing.T) {
	g := NewWithT(t)
	tr := New[*ball]()
	a, b := newBall("a", 0, 0, 0, 1), newBall("b", 1, 0, 0, 1)
	tr.Insert(a)
	tr.Insert(b)
	g.Expect(tr.PotentialContacts(4)).To(HaveLen(1))

	b.center = linalg.Vec3{50, 0, 0}
	g.Expect(tr.Update(b)).To(BeTrue())
	g.Expect(tr.PotentialContacts(4)).To(BeEmpty())

	bounds, ok := tr.Bounds()
	g.Expect(ok).To(BeTrue())
	g.Expect(bounds.Radius).To(BeNumerically("~", 26, 1e-9))

	g.Expect(tr.Update(newBall("ghost", 0, 0, 0, 1))).To(BeFalse())
}

func TestStringDump(t *testing.T) {
	g := NewWithT(t)
	tr := New[*ball]()
	g.Expect(tr.String()).To(Equal("(empty)\n"))

	tr.Insert(newBall("a", 0, 0, 0, 1))
	tr.Insert(newBall("b", 4, 0, 0, 1))
	lines := strings.Split(strings.TrimSpace(tr.String()), "\n")
	g.Expect(lines).To(Equal([]string{"BoundingSphere(r=3.000)", "| a", "| b"}))
}

func TestClear(t *testing.T) {
	g := NewWithT(t)
	tr := New[*ball]()
	a := newBall("a", 0, 0, 0, 1)
	tr.Insert(a)
	tr.Insert(newBall("b", 1, 0, 0, 1))
	tr.Clear()

	g.Expect(tr.Len()).To(Equal(0))
	g.Expect(tr.NodeCount()).To(Equal(0))
	g.Expect(tr.Contains(a)).To(BeFalse())
	g.Expect(tr.PotentialContacts(4)).To(BeEmpty())
}

func TestRefit(t *testing.T) {
	g := NewWithT(t)
	tr := New[*ball]()
	a, b, c := newBall("a", 0, 0, 0, 1), newBall("b", 10, 0, 0, 1), newBall("c", 20, 0, 0, 1)
	tr.Insert(a)
	tr.Insert(b)
	tr.Insert(c)
	g.Expect(tr.Refit()).To(Equal(0))
	g.Expect(tr.PotentialContacts(4)).To(BeEmpty())

	c.center = linalg.Vec3{1, 0, 0}
	g.Expect(tr.Refit()).To(Equal(1))
	checkVolumes(g, tr, tr.root)

	pairs := tr.PotentialContacts(4)
	g.Expect(pairs).To(HaveLen(1))
	g.Expect(pairKey(pairs[0])).To(Equal("a-c"))
}
