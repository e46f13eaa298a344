// Package viz draws a running scene in the terminal.
//
// [Model] is a Bubble Tea program that owns the fixed-timestep loop: every
// frame its [Clock] converts elapsed wall time into whole world updates of the
// scenario's dt, discarding time it cannot catch up on. Bodies are drawn on a
// braille [Canvas], either as a side view of the x/y plane with trails or as
// a 3D wireframe through a [Camera].
//
// # Key Bindings
//
//	Space  pause or resume
//	N      single step while paused
//	R      rebuild the scene
//	M      toggle side and 3D view
//	T      cycle color themes
//	?      show help overlay
package viz
