package force

import (
	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
)

// Generator computes a force for b over the next dt seconds and adds it to
// b's accumulator.
type Generator interface {
	UpdateForce(b body.Body, dt float64)
}

// Gravity applies a constant acceleration.
type Gravity struct {
	G linalg.Vec3
}

func NewGravity(g linalg.Vec3) *Gravity { return &Gravity{G: g} }

func (g *Gravity) UpdateForce(b body.Body, _ float64) {
	if !b.HasFiniteMass() {
		return
	}
	b.AddForce(g.G.Mul(b.Mass()))
}

// Drag opposes motion with a linear and a quadratic speed term.
type Drag struct {
	K1, K2 float64
}

func NewDrag(k1, k2 float64) *Drag { return &Drag{K1: k1, K2: k2} }

func (d *Drag) UpdateForce(b body.Body, _ float64) {
	v := b.Velocity()
	speed := v.Len()
	if speed == 0 {
		return
	}
	magnitude := d.K1*speed + d.K2*speed*speed
	b.AddForce(v.Mul(-magnitude / speed))
}

// Attraction pulls a body toward Source with magnitude
// G / (invMass * sourceInvMass * distance^3) along the unnormalized
// displacement, which gives an inverse-square law overall.
type Attraction struct {
	Source body.Body
	G      float64
}

func NewAttraction(source body.Body, g float64) *Attraction {
	return &Attraction{Source: source, G: g}
}

func (a *Attraction) UpdateForce(b body.Body, _ float64) {
	if !b.HasFiniteMass() || !a.Source.HasFiniteMass() || b == a.Source {
		return
	}
	d := a.Source.Position().Sub(b.Position())
	dist := d.Len()
	if dist == 0 {
		return
	}
	magnitude := a.G / (b.InverseMass() * a.Source.InverseMass() * dist * dist * dist)
	b.AddForce(d.Mul(magnitude))
}

// Buoyancy models a liquid filling everything below WaterHeight. A body is
// fully submerged once its centre is MaxDepth below the surface and out of
// the liquid once it is MaxDepth above it; in between the lift scales
// linearly.
type Buoyancy struct {
	MaxDepth      float64
	Volume        float64
	WaterHeight   float64
	LiquidDensity float64
}

func NewBuoyancy(maxDepth, volume, waterHeight, liquidDensity float64) *Buoyancy {
	return &Buoyancy{
		MaxDepth:      maxDepth,
		Volume:        volume,
		WaterHeight:   waterHeight,
		LiquidDensity: liquidDensity,
	}
}

func (f *Buoyancy) UpdateForce(b body.Body, _ float64) {
	y := b.Position()[1]
	if y >= f.WaterHeight+f.MaxDepth {
		return
	}

	lift := f.LiquidDensity * f.Volume
	if y > f.WaterHeight-f.MaxDepth && f.MaxDepth > 0 {
		lift *= (f.WaterHeight + f.MaxDepth - y) / (2 * f.MaxDepth)
	}
	b.AddForce(linalg.Vec3{0, lift, 0})
}
