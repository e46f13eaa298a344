package automation

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/san-kum/rigidsim/internal/config"
)

var (
	ErrUnknownParam = errors.New("automation: unknown parameter")
	// ErrParamNotApplicable means the scenario has nothing the parameter acts on.
	ErrParamNotApplicable = errors.New("automation: parameter does not apply to scenario")
)

const (
	ParamRestitution    = "restitution"
	ParamSpringConstant = "spring_constant"
	ParamDragK1         = "drag_k1"
	ParamRodLength      = "rod_length"
)

type paramSetter func(sc *config.Scenario, value float64) int

var params = map[string]paramSetter{
	ParamRestitution: func(sc *config.Scenario, value float64) int {
		n := 0
		for i := range sc.Contacts {
			if sc.Contacts[i].Type == config.ContactRod {
				continue
			}
			sc.Contacts[i].Restitution = value
			n++
		}
		if sc.World.Collisions.Enabled {
			sc.World.Collisions.Restitution = value
			n++
		}
		return n
	},
	ParamSpringConstant: func(sc *config.Scenario, value float64) int {
		return setForces(sc, config.ForceSpring, func(f *config.ForceConfig) { f.K = value })
	},
	ParamDragK1: func(sc *config.Scenario, value float64) int {
		return setForces(sc, config.ForceDrag, func(f *config.ForceConfig) { f.K1 = value })
	},
	ParamRodLength: func(sc *config.Scenario, value float64) int {
		n := 0
		for i := range sc.Contacts {
			if sc.Contacts[i].Type == config.ContactRod {
				sc.Contacts[i].Length = value
				n++
			}
		}
		return n
	},
}

func setForces(sc *config.Scenario, kind string, set func(f *config.ForceConfig)) int {
	n := 0
	for i := range sc.Forces {
		if sc.Forces[i].Type == kind {
			set(&sc.Forces[i])
			n++
		}
	}
	return n
}

// ApplyParam sets a sweepable parameter everywhere it appears in sc.
func ApplyParam(sc *config.Scenario, name string, value float64) error {
	set, ok := params[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	if set(sc, value) == 0 {
		return fmt.Errorf("%w: %s in %s", ErrParamNotApplicable, name, sc.Name)
	}
	return nil
}

func ListParams() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
