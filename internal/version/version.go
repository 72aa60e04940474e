// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - HTTP surface with SVG frames, named presets, audio file tap
// 0.2.0 - Audio-reactive designer, tempo sync, ring editing
// 0.1.0 - Initial release: orrery canvas, motion integrator, undo history
