package viz

import (
	"math"
	"sort"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/shape"
)

// Camera orbits a target at a fixed distance and projects with a simple
// perspective divide.
type Camera struct {
	Target     linalg.Vec3
	Distance   float64
	Near       float64
	Yaw, Pitch float64
	Zoom       float64
}

func NewCamera(target linalg.Vec3, distance float64) *Camera {
	return &Camera{Target: target, Distance: distance, Near: 0.1, Pitch: -0.3, Zoom: 1}
}

func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.Pitch+dpitch))
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// view moves p into camera space, looking down -z.
func (c *Camera) view(p linalg.Vec3) linalg.Vec3 {
	p = p.Sub(c.Target)
	cy, sy := math.Cos(c.Yaw), math.Sin(c.Yaw)
	p[0], p[2] = p[0]*cy+p[2]*sy, -p[0]*sy+p[2]*cy
	cp, sp := math.Cos(c.Pitch), math.Sin(c.Pitch)
	p[1], p[2] = p[1]*cp-p[2]*sp, p[1]*sp+p[2]*cp
	return p.Mul(c.Zoom)
}

// Project maps a world point to pixel coordinates on a sw by sh surface.
// It also returns the camera-space depth and whether the point is on screen.
func (c *Camera) Project(p linalg.Vec3, sw, sh int) (int, int, float64, bool) {
	v := c.view(p)
	if v[2] >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	scale := c.Distance / (c.Distance - v[2])
	px := float64(min(sw, sh)) / 8
	sx := int(v[0]*scale*px) + sw/2
	sy := int(-v[1]*scale*px) + sh/2
	return sx, sy, v[2], sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct{ Start, End linalg.Vec3 }

type Wireframe struct{ Edges []Edge }

func (w *Wireframe) AddEdge(s, e linalg.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p linalg.Vec3)   { w.Edges = append(w.Edges, Edge{p, p}) }

// Render3D draws w onto c, far edges first.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	type projected struct {
		x1, y1, x2, y2 int
		depth          float64
	}

	pw, ph := c.PixelWidth(), c.PixelHeight()
	out := make([]projected, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, pw, ph)
		x2, y2, d2, v2 := cam.Project(e.End, pw, ph)
		if v1 || v2 {
			out = append(out, projected{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].depth < out[j].depth })
	for _, e := range out {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

var boxEdges = [12][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}

const ringSegments = 16

// AddBody appends the outline of b in its current world pose: box edges,
// three great circles for a sphere, or a single point.
func (w *Wireframe) AddBody(b body.Body) {
	m := b.WorldTransform()
	switch s := b.Shape().(type) {
	case shape.Box:
		h := s.Size.Mul(0.5)
		var v [8]linalg.Vec3
		for i := range v {
			local := linalg.Vec3{-h[0], -h[1], -h[2]}
			if i&1 != i>>1&1 {
				local[0] = h[0]
			}
			if i&2 != 0 {
				local[1] = h[1]
			}
			if i&4 != 0 {
				local[2] = h[2]
			}
			v[i] = linalg.TransformPoint(m, local)
		}
		for _, e := range boxEdges {
			w.AddEdge(v[e[0]], v[e[1]])
		}
	case shape.Sphere:
		for axis := 0; axis < 3; axis++ {
			prev := linalg.TransformPoint(m, ringPoint(axis, 0, s.Radius))
			for i := 1; i <= ringSegments; i++ {
				next := linalg.TransformPoint(m, ringPoint(axis, i, s.Radius))
				w.AddEdge(prev, next)
				prev = next
			}
		}
	default:
		w.AddPoint(b.Position())
	}
}

func ringPoint(axis, i int, r float64) linalg.Vec3 {
	a := 2 * math.Pi * float64(i) / ringSegments
	u, v := r*math.Cos(a), r*math.Sin(a)
	switch axis {
	case 0:
		return linalg.Vec3{0, u, v}
	case 1:
		return linalg.Vec3{u, 0, v}
	default:
		return linalg.Vec3{u, v, 0}
	}
}

// AddFloor appends a square grid in the plane y = height.
func (w *Wireframe) AddFloor(center linalg.Vec3, half float64, lines int, height float64) {
	if lines < 2 {
		lines = 2
	}
	for i := 0; i < lines; i++ {
		t := -half + 2*half*float64(i)/float64(lines-1)
		w.AddEdge(linalg.Vec3{center[0] + t, height, center[2] - half}, linalg.Vec3{center[0] + t, height, center[2] + half})
		w.AddEdge(linalg.Vec3{center[0] - half, height, center[2] + t}, linalg.Vec3{center[0] + half, height, center[2] + t})
	}
}
