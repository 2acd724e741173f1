// Package grid implements the toroidal edge grid behind a sketch.
//
// A [Grid] is a square torus of size×size cells. Every cell owns four
// toggleable edges, one per [Layer]:
//
//	(x,y) ──H── (x+1,y)
//	  │ ╲     ╱
//	  V  SE SW
//	  │ ╱     ╲
//	(x,y+1)     (x+1,y+1)
//
// H joins (x,y)-(x+1,y), V joins (x,y)-(x,y+1), SE joins (x,y)-(x+1,y+1)
// and SW joins (x,y+1)-(x+1,y).
//
// The grid is also partitioned into divisions×divisions square regions
// ("divisions"). A division is started once an edge inside it has been
// drawn; the focus is the division currently shown in the zoomed view, and
// [Grid.SetRandomFocus] moves it towards unstarted divisions that border
// existing work.
//
// # Encoding
//
// [Grid.Serialize] produces the canonical text form: four strings of '0'
// and '1' (H, V, SE, SW) where character x*size+y holds cell (x,y).
// [Grid.Load] reads it back.
//
// # Concurrency
//
// A Grid is not safe for concurrent use. Callers that share one across
// goroutines must hold a single lock around every call, as
// [github.com/matzehuels/sketchgrid/pkg/session] does.
package grid
