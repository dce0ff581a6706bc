// Package gripedit implements direct-manipulation grip editing for 2D CAD
// entities: lines, circles, polylines, arcs, text anchors and angle
// measurements.
//
// Selected entities expose grips, small draggable control points computed by
// [ComputeGrips]. Pointer input runs through a [StateMachine] that moves
// between idle, hovering, warm and dragging. Completed drags become
// reversible [Command] values executed through a [CommandHistory], so every
// edit can be undone exactly.
//
// # Quick start
//
// Create a [Controller] per canvas over any [SceneStore]:
//
//	store := gripedit.NewMemoryStore(gripedit.NewLine(a, b))
//	history := gripedit.NewHistory(0)
//	ctrl, err := gripedit.NewController(store, history, gripedit.DefaultConfig())
//	ctrl.SetSelection(ids...)
//
// Then feed it input and time once per frame:
//
//	ctrl.HandleScreenMove(cursor)
//	ctrl.HandleScreenDown(cursor)
//	ctrl.HandleScreenUp(cursor)
//	ctrl.Update(frameDuration)
//
// After an undo or redo, call [Controller.Refresh] so grips follow the new
// geometry.
//
// # Coordinates
//
// Entities and grips live in world space. The pointer arrives in screen
// space and is converted with [ScreenToWorld] through the controller's
// [ViewTransform]. The hit tolerance is configured in screen pixels and
// divided by the view scale, so grips are equally easy to pick at every zoom.
//
// # Warm grips
//
// Resting the pointer on a grip for [Config.WarmDelay] turns it warm. The
// warm timer runs on a [FrameClock], advanced by [Controller.Update], and the
// highlight fades in with a [gween] tween. Moving off the grip always cancels
// the pending timer.
//
// # Adapters
//
// Subpackages connect the controller to its surroundings:
//
//   - gripedit/ecs keeps entities in a [Donburi] world and forwards grip
//     events as Donburi events.
//   - gripedit/sqlitestore persists entities in SQLite.
//   - gripedit/ebitengrip polls [Ebitengine] input and draws the grip overlay.
//
// # Logging
//
// The package logs state transitions and commits through [log/slog]. It is
// silent until [SetLogger] installs a logger.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
// [Ebitengine]: https://ebitengine.org
package gripedit
