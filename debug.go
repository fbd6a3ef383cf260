package feather2d

import "github.com/go-gl/mathgl/mgl64"

// Color of a debug line, channels in [0, 1]
type Color struct {
	R, G, B float64
}

var (
	RED    = Color{R: 1}
	GREEN  = Color{G: 1}
	YELLOW = Color{R: 1, G: 1}
)

// DebugSink receives the debug draw requests of a World.
// Calls are fire-and-forget, the world never reads anything back.
type DebugSink interface {
	DrawLine(from, to mgl64.Vec2, color Color)
	DisplayText(text string)
	DisplayTextWorld(text string, at mgl64.Vec2)
}

func (w *World) debugEnabled() bool {
	return w.Config.Debug && w.Debug != nil
}
