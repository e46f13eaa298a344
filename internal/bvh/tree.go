package bvh

import (
	"fmt"
	"strings"

	"github.com/san-kum/rigidsim/internal/shape"
)

// Item is anything that can report the sphere bounding it.
type Item interface {
	comparable
	BoundingSphere() shape.BoundingSphere
}

const nilNode int32 = -1

type node[T Item] struct {
	parent   int32
	children [2]int32
	volume   shape.BoundingSphere
	item     T
}

func (n *node[T]) isLeaf() bool { return n.children[0] == nilNode }

// PotentialContact is a pair of items whose bounding volumes overlap.
type PotentialContact[T Item] struct {
	Items [2]T
}

type Tree[T Item] struct {
	nodes  []node[T]
	free   []int32
	root   int32
	leaves map[T]int32
}

func New[T Item]() *Tree[T] {
	return &Tree[T]{
		root:   nilNode,
		leaves: make(map[T]int32),
	}
}

// Len is the number of items in the tree.
func (t *Tree[T]) Len() int { return len(t.leaves) }

// NodeCount is the number of live nodes, leaves and branches.
func (t *Tree[T]) NodeCount() int { return len(t.nodes) - len(t.free) }

func (t *Tree[T]) Contains(item T) bool {
	_, ok := t.leaves[item]
	return ok
}

// Bounds returns the root volume, or false for an empty tree.
func (t *Tree[T]) Bounds() (shape.BoundingSphere, bool) {
	if t.root == nilNode {
		return shape.BoundingSphere{}, false
	}
	return t.nodes[t.root].volume, true
}

// Insert adds item under its current bounding sphere. Inserting an item that
// is already present refreshes its volume instead.
func (t *Tree[T]) Insert(item T) {
	if t.Contains(item) {
		t.Update(item)
		return
	}

	volume := item.BoundingSphere()
	if t.root == nilNode {
		t.root = t.alloc(nilNode, volume, item)
		t.leaves[item] = t.root
		return
	}

	idx := t.root
	for !t.nodes[idx].isLeaf() {
		c := t.nodes[idx].children
		if t.nodes[c[0]].volume.Growth(volume) < t.nodes[c[1]].volume.Growth(volume) {
			idx = c[0]
		} else {
			idx = c[1]
		}
	}

	old := t.nodes[idx]
	left := t.alloc(idx, old.volume, old.item)
	right := t.alloc(idx, volume, item)

	var zero T
	n := &t.nodes[idx]
	n.children = [2]int32{left, right}
	n.item = zero

	t.leaves[old.item] = left
	t.leaves[item] = right
	t.refit(idx)
}

// Remove deletes item and promotes its sibling into the parent. It reports
// false, leaving the tree untouched, if the item is absent.
func (t *Tree[T]) Remove(item T) bool {
	idx, ok := t.leaves[item]
	if !ok {
		return false
	}
	delete(t.leaves, item)

	parent := t.nodes[idx].parent
	if parent == nilNode {
		t.release(idx)
		t.root = nilNode
		return true
	}

	siblingIdx := t.nodes[parent].children[0]
	if siblingIdx == idx {
		siblingIdx = t.nodes[parent].children[1]
	}
	sibling := t.nodes[siblingIdx]

	p := &t.nodes[parent]
	p.volume = sibling.volume
	p.item = sibling.item
	p.children = sibling.children
	if sibling.isLeaf() {
		t.leaves[sibling.item] = parent
	} else {
		for _, c := range sibling.children {
			t.nodes[c].parent = parent
		}
	}

	t.release(siblingIdx)
	t.release(idx)
	t.refit(t.nodes[parent].parent)
	return true
}

// Update re-seats item after it has moved.
func (t *Tree[T]) Update(item T) bool {
	if !t.Remove(item) {
		return false
	}
	t.Insert(item)
	return true
}

// Refit re-seats every item whose bounding sphere changed since it was
// stored and returns how many moved. Leaves are visited in arena order so
// the resulting shape is reproducible.
func (t *Tree[T]) Refit() int {
	var moved []T
	for i := range t.nodes {
		n := &t.nodes[i]
		if !n.isLeaf() {
			continue
		}
		if idx, ok := t.leaves[n.item]; !ok || idx != int32(i) {
			continue
		}
		if n.item.BoundingSphere() != n.volume {
			moved = append(moved, n.item)
		}
	}
	for _, item := range moved {
		t.Update(item)
	}
	return len(moved)
}

func (t *Tree[T]) Clear() {
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.root = nilNode
	t.leaves = make(map[T]int32)
}

func (t *Tree[T]) alloc(parent int32, volume shape.BoundingSphere, item T) int32 {
	n := node[T]{
		parent:   parent,
		children: [2]int32{nilNode, nilNode},
		volume:   volume,
		item:     item,
	}
	if last := len(t.free) - 1; last >= 0 {
		idx := t.free[last]
		t.free = t.free[:last]
		t.nodes[idx] = n
		return idx
	}
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

func (t *Tree[T]) release(idx int32) {
	t.nodes[idx] = node[T]{parent: nilNode, children: [2]int32{nilNode, nilNode}}
	t.free = append(t.free, idx)
}

// refit recomputes branch volumes from idx up to the root.
func (t *Tree[T]) refit(idx int32) {
	for idx != nilNode {
		n := &t.nodes[idx]
		if !n.isLeaf() {
			n.volume = shape.Enclose(t.nodes[n.children[0]].volume, t.nodes[n.children[1]].volume)
		}
		idx = n.parent
	}
}

// String dumps the tree one node per line, indented by depth.
func (t *Tree[T]) String() string {
	if t.root == nilNode {
		return "(empty)\n"
	}
	var b strings.Builder
	t.print(&b, t.root, 0)
	return b.String()
}

func (t *Tree[T]) print(b *strings.Builder, idx int32, level int) {
	b.WriteString(strings.Repeat("| ", level))
	n := &t.nodes[idx]
	if n.isLeaf() {
		fmt.Fprintf(b, "%v\n", n.item)
		return
	}
	fmt.Fprintf(b, "BoundingSphere(r=%.3f)\n", n.volume.Radius)
	t.print(b, n.children[0], level+1)
	t.print(b, n.children[1], level+1)
}
