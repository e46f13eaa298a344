package config

import (
	"math"
	"sort"
)

func ptr(f float64) *float64 { return &f }

var gravity = ForceConfig{Type: ForceGravity, G: Vec{0, -9.81, 0}}

var Presets = map[string]*Scenario{
	"bounce": {
		Name:        "bounce",
		Description: "a ball dropped from 10 m onto a floor with restitution 0.5",
		Dt:          0.001, Duration: 6.0,
		World: WorldConfig{MaxContacts: 16},
		Bodies: []BodyConfig{
			{Name: "ball", Kind: KindParticle, Position: Vec{0, 10, 0}, Mass: ptr(1),
				Shape: ShapeConfig{Type: ShapeSphere, Radius: 0.5}},
		},
		Forces:   []ForceConfig{gravity},
		Contacts: []ContactConfig{{Type: ContactFloor, Bodies: []string{"ball"}, Restitution: 0.5}},
	},
	"rod": {
		Name:        "rod",
		Description: "two particles flying apart, held together by a 1 m rod",
		Dt:          0.01, Duration: 5.0,
		World: WorldConfig{MaxContacts: 16},
		Bodies: []BodyConfig{
			{Name: "a", Kind: KindParticle, Position: Vec{0, 2, 0}, Velocity: Vec{-1, 0.5, 0}, Mass: ptr(1)},
			{Name: "b", Kind: KindParticle, Position: Vec{1.5, 2, 0}, Velocity: Vec{1, 0, 0}, Mass: ptr(1)},
		},
		Contacts: []ContactConfig{{Type: ContactRod, Bodies: []string{"a", "b"}, Length: 1}},
	},
	"cable": {
		Name:        "cable",
		Description: "a bob falling until a 2 m cable to a fixed hook goes taut",
		Dt:          0.005, Duration: 10.0,
		World: WorldConfig{MaxContacts: 16},
		Bodies: []BodyConfig{
			{Name: "hook", Kind: KindParticle, Position: Vec{0, 5, 0}, InverseMass: ptr(0)},
			{Name: "bob", Kind: KindParticle, Position: Vec{1, 5, 0}, Mass: ptr(2)},
		},
		Forces:   []ForceConfig{{Type: ForceGravity, Bodies: []string{"bob"}, G: Vec{0, -9.81, 0}}},
		Contacts: []ContactConfig{{Type: ContactCable, Bodies: []string{"hook", "bob"}, Length: 2, Restitution: 0.3}},
		Track:    []string{"bob"},
	},
	"spring": {
		Name:        "spring",
		Description: "a bob hanging from a fixed spring",
		Dt:          0.005, Duration: 10.0,
		World: WorldConfig{MaxContacts: 16},
		Bodies: []BodyConfig{
			{Name: "bob", Kind: KindParticle, Position: Vec{0, 2, 0}, Mass: ptr(1)},
		},
		Forces: []ForceConfig{
			gravity,
			{Type: ForceSpring, Bodies: []string{"bob"}, Anchor: &Vec{0, 5, 0}, K: 20, RestLength: 2},
		},
	},
	"orbit": {
		Name:        "orbit",
		Description: "a light planet on a circular orbit around a heavy star",
		Dt:          0.001, Duration: 10.0,
		World: WorldConfig{MaxContacts: 16},
		Bodies: []BodyConfig{
			{Name: "star", Kind: KindParticle, Position: Vec{0, 0, 0}, Mass: ptr(1000)},
			{Name: "planet", Kind: KindParticle, Position: Vec{10, 0, 0}, Velocity: Vec{0, 10, 0}, Mass: ptr(1)},
		},
		Forces: []ForceConfig{
			{Type: ForceAttraction, Bodies: []string{"planet"}, Source: "star", Strength: 1},
			{Type: ForceAttraction, Bodies: []string{"star"}, Source: "planet", Strength: 1},
		},
	},
	"tumble": {
		Name:        "tumble",
		Description: "a spinning box thrown onto the floor",
		Dt:          0.002, Duration: 6.0,
		World: WorldConfig{MaxContacts: 16},
		Bodies: []BodyConfig{
			{Name: "box", Kind: KindRigid, Position: Vec{0, 4, 0}, Velocity: Vec{2, 3, 0}, Mass: ptr(3),
				Shape:           ShapeConfig{Type: ShapeBox, Size: Vec{1, 0.5, 2}},
				Orientation:     Vec{0.3, math.Pi / 6, 0},
				AngularVelocity: Vec{1, 3, 0.5}, Damping: true},
		},
		Forces:   []ForceConfig{gravity},
		Contacts: []ContactConfig{{Type: ContactFloor, Bodies: []string{"box"}, Restitution: 0.4}},
	},
	"pile": {
		Name:        "pile",
		Description: "five spheres dropped on top of each other",
		Dt:          0.002, Duration: 8.0,
		World: WorldConfig{
			MaxContacts: 64,
			Collisions:  CollisionConfig{Enabled: true, Restitution: 0.2},
		},
		Bodies: []BodyConfig{
			{Name: "s1", Kind: KindParticle, Position: Vec{0, 1, 0}, Mass: ptr(1), Shape: ShapeConfig{Type: ShapeSphere, Radius: 0.5}},
			{Name: "s2", Kind: KindParticle, Position: Vec{0.3, 2.5, 0}, Mass: ptr(1), Shape: ShapeConfig{Type: ShapeSphere, Radius: 0.5}},
			{Name: "s3", Kind: KindParticle, Position: Vec{-0.3, 4, 0}, Mass: ptr(1), Shape: ShapeConfig{Type: ShapeSphere, Radius: 0.5}},
			{Name: "s4", Kind: KindParticle, Position: Vec{0.1, 5.5, 0.2}, Mass: ptr(1), Shape: ShapeConfig{Type: ShapeSphere, Radius: 0.5}},
			{Name: "s5", Kind: KindParticle, Position: Vec{-0.1, 7, -0.2}, Mass: ptr(1), Shape: ShapeConfig{Type: ShapeSphere, Radius: 0.5}},
		},
		Forces: []ForceConfig{gravity, {Type: ForceDrag, K1: 0.1}},
		Contacts: []ContactConfig{
			{Type: ContactFloor, Bodies: []string{"s1", "s2", "s3", "s4", "s5"}, FloorY: 0.5, Restitution: 0.3},
		},
	},
	"buoyancy": {
		Name:        "buoyancy",
		Description: "a float dropped into water settling at its waterline",
		Dt:          0.005, Duration: 15.0,
		World: WorldConfig{MaxContacts: 16},
		Bodies: []BodyConfig{
			{Name: "float", Kind: KindParticle, Position: Vec{0, 3, 0}, Mass: ptr(5),
				Shape: ShapeConfig{Type: ShapeSphere, Radius: 0.5}},
		},
		Forces: []ForceConfig{
			gravity,
			{Type: ForceDrag, K1: 2},
			{Type: ForceBuoyancy, Bodies: []string{"float"}, MaxDepth: 0.5, Volume: 0.1, WaterHeight: 0, LiquidDensity: 1000},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Scenario {
	s, ok := Presets[name]
	if !ok {
		return nil
	}
	c := s.Clone()
	if c.World.MaxContacts == 0 {
		c.World.MaxContacts = DefaultMaxContacts
	}
	return c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
