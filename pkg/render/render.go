// Package render provides output renderers for stat-bar scenes.
package render

import "github.com/dkoosis/statbar/pkg/scene"

// Renderer converts a scene frame to formatted output.
type Renderer interface {
	Render(frame scene.Frame) string
}
