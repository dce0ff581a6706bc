// Package ecs provides ECS adapters for gripedit.
//
// [DonburiStore] keeps drawing entities as a component in a [Donburi] world
// and serves them to a [gripedit.Controller] as its scene store. Grip
// interaction events can be bridged into the same world with
// [NewEventSink]; subscribe to [GripEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	ctrl, _ := gripedit.NewController(store, gripedit.NewHistory(0), cfg)
//	ctrl.SetEventSink(ecs.NewEventSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
