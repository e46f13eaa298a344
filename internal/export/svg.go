package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/viz"
)

var ErrNoSamples = errors.New("export: nothing to draw")

var palette = []string{"#00ffff", "#ff00ff", "#ffff00", "#00ff88", "#ff8800", "#8888ff"}

// CanvasSVG draws every lit braille dot of c as a circle of the given pixel
// scale.
func CanvasSVG(w io.Writer, c *viz.Canvas, scale float64) error {
	if c == nil {
		return ErrNoSamples
	}
	width := float64(c.PixelWidth()) * scale
	height := float64(c.PixelHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height)

	r := scale * 0.4
	for y := 0; y < c.PixelHeight(); y++ {
		for x := 0; x < c.PixelWidth(); x++ {
			if c.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
			}
		}
	}
	sb.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "writing svg")
}

// TrajectorySVG draws the x/y path of every tracked body in result, sharing
// one set of axes, y up.
func TrajectorySVG(w io.Writer, result *sim.Result, width, height int) error {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	samples := 0
	for _, name := range result.Order {
		for _, s := range result.Track(name) {
			if !s.IsValid() {
				continue
			}
			minX, maxX = math.Min(minX, s.Position[0]), math.Max(maxX, s.Position[0])
			minY, maxY = math.Min(minY, s.Position[1]), math.Max(maxY, s.Position[1])
			samples++
		}
	}
	if samples < 2 {
		return ErrNoSamples
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, name := range result.Order {
		track := result.Track(name)
		if len(track) == 0 {
			continue
		}
		fmt.Fprintf(&sb, `<path id="%s" fill="none" stroke="%s" stroke-width="1.5" d="`, name, palette[i%len(palette)])
		cmd := "M"
		for _, s := range track {
			if !s.IsValid() {
				cmd = "M"
				continue
			}
			x := (s.Position[0] - minX) / rangeX * float64(width)
			y := float64(height) - (s.Position[1]-minY)/rangeY*float64(height)
			fmt.Fprintf(&sb, "%s%.1f,%.1f ", cmd, x, y)
			cmd = "L"
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "writing svg")
}
