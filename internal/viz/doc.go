// Package viz hosts an effect in a Bubble Tea program.
//
// [Model] drives the effect at a fixed frame rate, draws it into an
// [engine.Grid] and renders the grid with lipgloss. The grid follows the
// terminal size.
//
// # Key Bindings
//
//	Space      - Pause/Resume
//	R          - Restart with a fresh effect
//	Q/Esc      - Quit
//
// The program also quits once the effect reports it is finished.
package viz
