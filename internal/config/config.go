package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigidsim/internal/linalg"
)

const (
	DefaultDt          = 0.01
	DefaultDuration    = 10.0
	DefaultMaxContacts = 256
)

const (
	KindParticle = "particle"
	KindRigid    = "rigid"

	ShapePoint  = "point"
	ShapeSphere = "sphere"
	ShapeBox    = "box"

	ForceGravity    = "gravity"
	ForceDrag       = "drag"
	ForceSpring     = "spring"
	ForceAttraction = "attraction"
	ForceBuoyancy   = "buoyancy"

	ContactFloor = "floor"
	ContactCable = "cable"
	ContactRod   = "rod"
)

// Vec is a 3-vector written as a YAML sequence, e.g. [0, 9.81, 0].
type Vec [3]float64

func (v Vec) Vec3() linalg.Vec3 { return linalg.Vec3(v) }

// IsZero lets omitempty drop unset vectors.
func (v Vec) IsZero() bool { return v == Vec{} }

type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	Dt          float64         `yaml:"dt"`
	Duration    float64         `yaml:"duration"`
	Seed        int64           `yaml:"seed,omitempty"`
	// Jitter offsets each movable body's start position by up to this much
	// along every axis, drawn from Seed.
	Jitter      float64         `yaml:"jitter,omitempty"`
	World       WorldConfig     `yaml:"world"`
	Bodies      []BodyConfig    `yaml:"bodies"`
	Forces      []ForceConfig   `yaml:"forces,omitempty"`
	Contacts    []ContactConfig `yaml:"contacts,omitempty"`
	// Track names the bodies whose trajectories are recorded. Empty tracks all.
	Track       []string        `yaml:"track,omitempty"`
}

type WorldConfig struct {
	MaxContacts       int             `yaml:"max_contacts"`
	ContactIterations int             `yaml:"contact_iterations"`
	Collisions        CollisionConfig `yaml:"collisions"`
}

type CollisionConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Restitution float64 `yaml:"restitution"`
	PairBudget  int     `yaml:"pair_budget,omitempty"`
}

type BodyConfig struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Position Vec    `yaml:"position"`
	Velocity Vec    `yaml:"velocity,omitempty"`

	// InverseMass wins over Mass. Zero inverse mass makes the body immovable.
	InverseMass *float64    `yaml:"inverse_mass,omitempty"`
	Mass        *float64    `yaml:"mass,omitempty"`
	Damping     bool        `yaml:"damping,omitempty"`
	Shape       ShapeConfig `yaml:"shape,omitempty"`

	// Orientation is yaw, pitch, roll in radians.
	Orientation     Vec `yaml:"orientation,omitempty"`
	AngularVelocity Vec `yaml:"angular_velocity,omitempty"`
}

// ResolvedInverseMass picks the inverse mass from whichever field is set,
// defaulting to a unit mass.
func (b BodyConfig) ResolvedInverseMass() float64 {
	switch {
	case b.InverseMass != nil:
		return *b.InverseMass
	case b.Mass != nil && *b.Mass > 0:
		return 1 / *b.Mass
	default:
		return 1
	}
}

type ShapeConfig struct {
	Type   string  `yaml:"type,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
	Size   Vec     `yaml:"size,omitempty"`
}

// ForceConfig describes one force generator. Bodies lists the bodies it acts
// on; an empty list applies gravity and drag to every body.
type ForceConfig struct {
	Type   string   `yaml:"type"`
	Bodies []string `yaml:"bodies,omitempty"`

	G Vec `yaml:"g,omitempty"`

	K1 float64 `yaml:"k1,omitempty"`
	K2 float64 `yaml:"k2,omitempty"`

	// Spring: exactly one of Anchor and Other.
	Anchor          *Vec     `yaml:"anchor,omitempty"`
	Other           string   `yaml:"other,omitempty"`
	Connection      Vec      `yaml:"connection,omitempty"`
	OtherConnection Vec      `yaml:"other_connection,omitempty"`
	K               float64  `yaml:"k,omitempty"`
	RestLength      float64  `yaml:"rest_length,omitempty"`
	SpringDamping   *float64 `yaml:"spring_damping,omitempty"`
	Push            bool     `yaml:"push,omitempty"`

	Source   string  `yaml:"source,omitempty"`
	Strength float64 `yaml:"strength,omitempty"`

	MaxDepth      float64 `yaml:"max_depth,omitempty"`
	Volume        float64 `yaml:"volume,omitempty"`
	WaterHeight   float64 `yaml:"water_height,omitempty"`
	LiquidDensity float64 `yaml:"liquid_density,omitempty"`
}

// ContactConfig describes one contact generator. A floor adds one generator
// per listed body; cables and rods join exactly two bodies.
type ContactConfig struct {
	Type        string   `yaml:"type"`
	Bodies      []string `yaml:"bodies"`
	FloorY      float64  `yaml:"floor_y,omitempty"`
	Restitution float64  `yaml:"restitution,omitempty"`
	Length      float64  `yaml:"length,omitempty"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		World: WorldConfig{
			MaxContacts: DefaultMaxContacts,
		},
	}
}

// Parse decodes a scenario over the defaults and validates it.
func Parse(data []byte) (*Scenario, error) {
	s := DefaultScenario()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "decoding scenario")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return s, nil
}

func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encoding scenario")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing scenario %s", path)
	}
	return nil
}

// TrackedBodies returns Track, or every body name when Track is empty.
func (s *Scenario) TrackedBodies() []string {
	if len(s.Track) > 0 {
		return s.Track
	}
	names := make([]string, len(s.Bodies))
	for i, b := range s.Bodies {
		names[i] = b.Name
	}
	return names
}

// Clone returns a copy whose slices can be edited without touching s.
func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Bodies = append([]BodyConfig(nil), s.Bodies...)
	c.Forces = make([]ForceConfig, len(s.Forces))
	for i, f := range s.Forces {
		f.Bodies = append([]string(nil), f.Bodies...)
		c.Forces[i] = f
	}
	c.Contacts = make([]ContactConfig, len(s.Contacts))
	for i, ct := range s.Contacts {
		ct.Bodies = append([]string(nil), ct.Bodies...)
		c.Contacts[i] = ct
	}
	c.Track = append([]string(nil), s.Track...)
	return &c
}
