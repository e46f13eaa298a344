package contact

import (
	"math"

	"github.com/san-kum/rigidsim/internal/linalg"
)

// Resolver runs the sequential contact solver. It is not safe for
// concurrent use.
type Resolver struct {
	iterations     int
	iterationsUsed int
}

func NewResolver(iterations int) *Resolver {
	return &Resolver{iterations: iterations}
}

func (r *Resolver) SetIterations(n int) { r.iterations = n }
func (r *Resolver) Iterations() int     { return r.iterations }

// IterationsUsed reports how many contacts the last Resolve call resolved.
func (r *Resolver) IterationsUsed() int { return r.iterationsUsed }

// Resolve repeatedly resolves the contact with the lowest separating
// velocity among those still closing or penetrating, until none remain or
// the iteration budget is spent. Contacts between two immovable bodies are
// never selected.
func (r *Resolver) Resolve(contacts []Contact) int {
	r.iterationsUsed = 0
	for r.iterationsUsed < r.iterations {
		worst := -1
		minSepVel := math.MaxFloat64
		for i := range contacts {
			if contacts[i].totalInverseMass() <= 0 {
				continue
			}
			sepVel := contacts[i].SeparatingVelocity()
			if sepVel < minSepVel && (sepVel < 0 || contacts[i].Penetration > 0) {
				minSepVel = sepVel
				worst = i
			}
		}
		if worst < 0 {
			break
		}

		moved := contacts[worst].resolve()
		adjustPenetration(contacts, &contacts[worst], moved)
		r.iterationsUsed++
	}
	return r.iterationsUsed
}

// adjustPenetration updates every contact touching a body that resolved just
// moved. The resolved contact itself ends with no penetration.
func adjustPenetration(contacts []Contact, resolved *Contact, moved [2]linalg.Vec3) {
	if linalg.IsZero(moved[0]) && linalg.IsZero(moved[1]) {
		resolved.Penetration = 0
		return
	}
	for i := range contacts {
		c := &contacts[i]
		for j, b := range resolved.Bodies {
			if b == nil {
				continue
			}
			if c.Bodies[0] == b {
				c.Penetration -= moved[j].Dot(c.Normal)
			}
			if c.Bodies[1] == b {
				c.Penetration += moved[j].Dot(c.Normal)
			}
		}
	}
	resolved.Penetration = 0
}
