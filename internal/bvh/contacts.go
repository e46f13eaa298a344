package bvh

// PotentialContacts lists every pair of items whose bounding volumes
// overlap, stopping once limit pairs have been found.
func (t *Tree[T]) PotentialContacts(limit int) []PotentialContact[T] {
	if t.root == nilNode || limit <= 0 {
		return nil
	}
	out := make([]PotentialContact[T], 0, min(limit, len(t.leaves)))
	t.potentialContacts(t.root, &out, limit)
	return out
}

func (t *Tree[T]) potentialContacts(idx int32, out *[]PotentialContact[T], limit int) int {
	n := &t.nodes[idx]
	if limit == 0 || n.isLeaf() {
		return 0
	}
	left, right := n.children[0], n.children[1]

	count := t.between(left, right, out, limit)
	if count < limit {
		count += t.potentialContacts(left, out, limit-count)
		if count < limit {
			count += t.potentialContacts(right, out, limit-count)
		}
	}
	return count
}

func (t *Tree[T]) between(a, b int32, out *[]PotentialContact[T], limit int) int {
	na, nb := &t.nodes[a], &t.nodes[b]
	if limit == 0 || !na.volume.Overlaps(nb.volume) {
		return 0
	}

	if na.isLeaf() && nb.isLeaf() {
		*out = append(*out, PotentialContact[T]{Items: [2]T{na.item, nb.item}})
		return 1
	}

	// Descend into the branch; between two branches, into the larger one.
	split, other := b, a
	if nb.isLeaf() || (!na.isLeaf() && na.volume.Radius >= nb.volume.Radius) {
		split, other = a, b
	}
	children := t.nodes[split].children

	count := t.between(children[0], other, out, limit)
	if count < limit {
		count += t.between(children[1], other, out, limit-count)
	}
	return count
}
