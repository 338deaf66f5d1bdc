// Package viz draws particle scenes and sampled curves in the terminal.
//
// [Canvas] is a braille pixel grid; [Viewport] maps 2D curve samples onto
// it and [Camera] projects 3D particles and collider outlines. [Model] is
// a Bubble Tea live view of a running particle system.
//
// # Key Bindings
//
//	Space  - Pause/Resume the view
//	S      - Stop/Start the emitter
//	R      - Clear all particles
//	N      - Single step
//	Arrows - Orbit the camera
//	+/-    - Zoom
//	T      - Cycle color themes
//	?      - Show help overlay
package viz
