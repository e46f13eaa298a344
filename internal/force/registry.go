package force

import "github.com/san-kum/rigidsim/internal/body"

type Registration struct {
	Body      body.Body
	Generator Generator
}

// Registry is an ordered list of (body, generator) pairs. It does not own
// either side.
type Registry struct {
	registrations []Registration
}

func NewRegistry() *Registry {
	return &Registry{registrations: make([]Registration, 0)}
}

func (r *Registry) Add(b body.Body, g Generator) {
	r.registrations = append(r.registrations, Registration{Body: b, Generator: g})
}

// Remove drops every registration matching both b and g by identity and
// reports whether any was found.
func (r *Registry) Remove(b body.Body, g Generator) bool {
	return r.filter(func(reg Registration) bool {
		return reg.Body == b && reg.Generator == g
	}) > 0
}

// RemoveBody drops all registrations of b and returns how many there were.
func (r *Registry) RemoveBody(b body.Body) int {
	return r.filter(func(reg Registration) bool { return reg.Body == b })
}

func (r *Registry) filter(drop func(Registration) bool) int {
	kept := r.registrations[:0]
	removed := 0
	for _, reg := range r.registrations {
		if drop(reg) {
			removed++
			continue
		}
		kept = append(kept, reg)
	}
	for i := len(kept); i < len(r.registrations); i++ {
		r.registrations[i] = Registration{}
	}
	r.registrations = kept
	return removed
}

func (r *Registry) Clear() {
	r.registrations = r.registrations[:0]
}

func (r *Registry) Len() int { return len(r.registrations) }

func (r *Registry) Registrations() []Registration {
	out := make([]Registration, len(r.registrations))
	copy(out, r.registrations)
	return out
}

// UpdateForces runs every generator once, in registration order.
func (r *Registry) UpdateForces(dt float64) {
	for _, reg := range r.registrations {
		reg.Generator.UpdateForce(reg.Body, dt)
	}
}
