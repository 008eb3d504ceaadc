// Package engine provides the host contract shared by every animation effect.
//
// The package defines the types an effect needs to be driven frame by frame:
//
//   - [Frame]: per-tick input (surface extents, delta time, random source, surface)
//   - [Surface]: the draw capability (clear, style, put glyph)
//   - [Random]: injectable pseudo-random source
//   - [Effect]: update/render/finished contract
//   - [Runner]: headless fixed-step driver with metrics and observers
//   - [Grid]: in-memory cell buffer implementing [Surface]
//
// # Example
//
//	grid := engine.NewGrid(24, 80)
//	r := engine.NewRunner(effect, grid)
//	result, _ := r.Run(ctx, engine.RunConfig{Dt: 1.0 / 60, Frames: 600})
//
// # Thread Safety
//
// Effects are driven from a single goroutine. Nothing in this package locks.
package engine
