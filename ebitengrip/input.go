// Package ebitengrip connects a gripedit.Controller to [Ebitengine]: it polls
// the mouse and keyboard once per tick and draws entities and grips as a
// screen-space overlay.
//
// [Ebitengine]: https://ebitengine.org
package ebitengrip

import (
	"github.com/phanxgames/gripedit"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Sample is the raw input state of one tick.
type Sample struct {
	X, Y   int
	Left   bool // primary button held
	Right  bool // secondary button pressed this tick
	Escape bool // Escape pressed this tick
}

// Input turns per-tick input samples into controller events. The zero value
// is ready to use.
type Input struct {
	started  bool
	lastX    int
	lastY    int
	leftDown bool
}

// Poll reads ebiten's input state and forwards it to c. Call it from
// ebiten.Game.Update. It reports whether the controller consumed any event,
// so the caller can skip its own pan or selection handling.
func (in *Input) Poll(c *gripedit.Controller) bool {
	mx, my := ebiten.CursorPosition()
	return in.Apply(c, Sample{
		X:      mx,
		Y:      my,
		Left:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		Escape: inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	})
}

// Apply forwards one sample to c. Moves are sent only when the cursor
// changed; press and release are edge-triggered on Left.
func (in *Input) Apply(c *gripedit.Controller, s Sample) bool {
	screen := gripedit.Vec2{X: float64(s.X), Y: float64(s.Y)}
	consumed := false

	if !in.started || s.X != in.lastX || s.Y != in.lastY {
		in.started = true
		in.lastX, in.lastY = s.X, s.Y
		if c.HandleScreenMove(screen) {
			consumed = true
		}
	}

	switch {
	case s.Left && !in.leftDown:
		if c.HandleScreenDown(screen) {
			consumed = true
		}
	case !s.Left && in.leftDown:
		if c.HandleScreenUp(screen) {
			consumed = true
		}
	}
	in.leftDown = s.Left

	if s.Escape && c.Escape() {
		consumed = true
	}
	if s.Right && c.RightClick() {
		consumed = true
	}
	return consumed
}
