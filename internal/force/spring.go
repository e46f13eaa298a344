package force

import (
	"fmt"
	"math"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
)

// DefaultSpringDamping bleeds spring energy so oscillations settle.
const DefaultSpringDamping = 0.75

type anchorKind int

const (
	anchorFixed anchorKind = iota
	anchorBody
)

// Anchor is the far end of a spring: either a fixed world point or a point
// on another body.
type Anchor struct {
	kind  anchorKind
	body  body.Body
	point linalg.Vec3
}

func FixedAnchor(p linalg.Vec3) Anchor {
	return Anchor{kind: anchorFixed, point: p}
}

// BodyAnchor attaches to the body-space point local on b.
func BodyAnchor(b body.Body, local linalg.Vec3) Anchor {
	return Anchor{kind: anchorBody, body: b, point: local}
}

// Position resolves the anchor to a world-space point.
func (a Anchor) Position() linalg.Vec3 {
	switch a.kind {
	case anchorBody:
		return a.body.LocalToWorld(a.point)
	default:
		return a.point
	}
}

// Body returns the anchoring body, or nil for a fixed anchor.
func (a Anchor) Body() body.Body {
	if a.kind == anchorBody {
		return a.body
	}
	return nil
}

func (a Anchor) String() string {
	if a.kind == anchorBody {
		return fmt.Sprintf("body(%s)+%v", a.body.Kind(), a.point)
	}
	return fmt.Sprintf("fixed%v", a.point)
}

// Spring pulls the body point Connection toward Anchor following Hooke's
// law. Damping in (0, 1) scales the magnitude by Damping^dt; zero disables
// it. When ShouldPush is false a compressed spring exerts no force.
type Spring struct {
	Anchor     Anchor
	Connection linalg.Vec3
	K          float64
	RestLength float64
	Damping    float64
	ShouldPush bool
}

func NewSpring(anchor Anchor, k, restLength float64, shouldPush bool) *Spring {
	return &Spring{
		Anchor:     anchor,
		K:          k,
		RestLength: restLength,
		Damping:    DefaultSpringDamping,
		ShouldPush: shouldPush,
	}
}

// NewSpringPair connects two bodies with one spring. The first generator
// must be registered against a, the second against b.
func NewSpringPair(a body.Body, aLocal linalg.Vec3, b body.Body, bLocal linalg.Vec3, k, restLength float64, shouldPush bool) (*Spring, *Spring) {
	forA := NewSpring(BodyAnchor(b, bLocal), k, restLength, shouldPush)
	forA.Connection = aLocal
	forB := NewSpring(BodyAnchor(a, aLocal), k, restLength, shouldPush)
	forB.Connection = bLocal
	return forA, forB
}

func (s *Spring) UpdateForce(b body.Body, dt float64) {
	connection := b.LocalToWorld(s.Connection)
	d := connection.Sub(s.Anchor.Position())

	magnitude := (d.Len() - s.RestLength) * s.K
	if magnitude < 0 && !s.ShouldPush {
		return
	}
	if s.Damping > 0 && s.Damping < 1 {
		magnitude *= math.Pow(s.Damping, dt)
	}

	b.AddForceAtPoint(linalg.Normalized(d).Mul(-magnitude), connection)
}
