package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/world"
)

// PeakHeight records the height of a body each time it stops rising.
type PeakHeight struct {
	name   string
	body   body.Body
	rising bool
	last   float64
	apexes []float64
}

func NewPeakHeight(b body.Body) *PeakHeight {
	return &PeakHeight{name: "peak_height", body: b}
}

func (p *PeakHeight) Name() string { return p.name }

func (p *PeakHeight) Observe(w *world.World, t float64) {
	y, vy := p.body.Position()[1], p.body.Velocity()[1]
	if p.rising && vy <= 0 {
		p.apexes = append(p.apexes, max(y, p.last))
	}
	p.rising = vy > 0
	p.last = y
}

// Value is the highest apex seen, or 0 if the body never rose.
func (p *PeakHeight) Value() float64 {
	if len(p.apexes) == 0 {
		return 0
	}
	return floats.Max(p.apexes)
}

func (p *PeakHeight) Apexes() []float64 { return p.apexes }

func (p *PeakHeight) Reset() {
	p.rising = false
	p.last = 0
	p.apexes = p.apexes[:0]
}

// Separation tracks the distance between two bodies.
type Separation struct {
	name      string
	a, b      body.Body
	distances []float64
}

func NewSeparation(a, b body.Body) *Separation {
	return &Separation{name: "separation", a: a, b: b}
}

func (s *Separation) Name() string { return s.name }

func (s *Separation) Observe(w *world.World, t float64) {
	s.distances = append(s.distances, s.a.Position().Sub(s.b.Position()).Len())
}

// Value is the mean distance.
func (s *Separation) Value() float64 {
	if len(s.distances) == 0 {
		return 0
	}
	return stat.Mean(s.distances, nil)
}

func (s *Separation) Min() float64 {
	if len(s.distances) == 0 {
		return 0
	}
	return floats.Min(s.distances)
}

func (s *Separation) Max() float64 {
	if len(s.distances) == 0 {
		return 0
	}
	return floats.Max(s.distances)
}

func (s *Separation) Reset() { s.distances = s.distances[:0] }

// ContactLoad is the mean number of contacts produced per step.
type ContactLoad struct {
	name   string
	counts []float64
}

func NewContactLoad() *ContactLoad {
	return &ContactLoad{name: "contact_load"}
}

func (c *ContactLoad) Name() string { return c.name }

func (c *ContactLoad) Observe(w *world.World, t float64) {
	c.counts = append(c.counts, float64(w.Stats().Contacts))
}

func (c *ContactLoad) Value() float64 {
	if len(c.counts) == 0 {
		return 0
	}
	return stat.Mean(c.counts, nil)
}

func (c *ContactLoad) Peak() float64 {
	if len(c.counts) == 0 {
		return 0
	}
	return floats.Max(c.counts)
}

func (c *ContactLoad) Reset() { c.counts = c.counts[:0] }
