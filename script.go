package gripedit

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep represents a single action in an interaction script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Millis int     `json:"ms,omitempty"`
}

// script is the top-level JSON structure.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Script is a recorded sequence of pointer and keyboard input in screen
// coordinates. Replaying it through a Controller converts every position with
// the controller's view, exactly like live input. Supported actions:
//
//	move, press, release, click  {x, y}
//	drag                         {fromX, fromY, toX, toY, frames}
//	escape, rightclick
//	wait                         {ms}
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON interaction script.
func LoadScript(data []byte) (*Script, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "move", "press", "release", "click", "drag", "escape", "rightclick", "wait":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: s.Steps}, nil
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// Run replays every step through c, advancing c by frame after each input
// event. It returns, per input event, whether the controller consumed it.
func (s *Script) Run(c *Controller, frame time.Duration) []bool {
	var consumed []bool
	record := func(ok bool) {
		consumed = append(consumed, ok)
		c.Update(frame)
	}

	for _, st := range s.steps {
		switch st.Action {
		case "move":
			record(c.HandleScreenMove(Vec2{st.X, st.Y}))
		case "press":
			record(c.HandleScreenDown(Vec2{st.X, st.Y}))
		case "release":
			record(c.HandleScreenUp(Vec2{st.X, st.Y}))
		case "click":
			record(c.HandleScreenDown(Vec2{st.X, st.Y}))
			record(c.HandleScreenUp(Vec2{st.X, st.Y}))
		case "drag":
			frames := st.Frames
			if frames < 2 {
				frames = 2
			}
			from := Vec2{st.FromX, st.FromY}
			to := Vec2{st.ToX, st.ToY}
			record(c.HandleScreenDown(from))
			steps := frames - 2
			for i := 1; i <= steps; i++ {
				record(c.HandleScreenMove(from.Lerp(to, float64(i)/float64(steps+1))))
			}
			record(c.HandleScreenMove(to))
			record(c.HandleScreenUp(to))
		case "escape":
			record(c.Escape())
		case "rightclick":
			record(c.RightClick())
		case "wait":
			c.Update(time.Duration(st.Millis) * time.Millisecond)
		}
	}
	return consumed
}
