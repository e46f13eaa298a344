package export

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/viz"
)

func TestCanvasSVG(t *testing.T) {
	g := NewWithT(t)
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	var buf bytes.Buffer
	g.Expect(CanvasSVG(&buf, c, 10)).To(Succeed())
	out := buf.String()
	g.Expect(out).To(ContainSubstring(`width="40" height="40"`))
	g.Expect(strings.Count(out, "<circle")).To(Equal(2))
	g.Expect(out).To(ContainSubstring(`cx="5.0" cy="5.0"`))
	g.Expect(out).To(ContainSubstring(`cx="35.0" cy="35.0"`))

	g.Expect(CanvasSVG(&buf, nil, 1)).To(MatchError(ErrNoSamples))
}

func TestTrajectorySVG(t *testing.T) {
	g := NewWithT(t)
	result := &sim.Result{
		Order: []string{"a", "b"},
		Tracks: map[string][]sim.Sample{
			"a": {{Position: linalg.Vec3{0, 0, 0}}, {Position: linalg.Vec3{1, 1, 0}}},
			"b": {{Position: linalg.Vec3{1, 0, 0}}, {Position: linalg.Vec3{0, 1, 0}}},
		},
	}

	var buf bytes.Buffer
	g.Expect(TrajectorySVG(&buf, result, 120, 120)).To(Succeed())
	out := buf.String()
	g.Expect(strings.Count(out, "<path")).To(Equal(2))
	g.Expect(out).To(ContainSubstring(`id="a"`))
	// (0, 0) lands 10% in from the bottom left corner
	g.Expect(out).To(ContainSubstring(`d="M10.0,110.0 L110.0,10.0 "`))
}

func TestTrajectorySVGEmpty(t *testing.T) {
	g := NewWithT(t)
	var buf bytes.Buffer
	g.Expect(TrajectorySVG(&buf, &sim.Result{}, 10, 10)).To(MatchError(ErrNoSamples))
}
