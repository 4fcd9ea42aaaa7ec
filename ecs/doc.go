// Package ecs provides ECS adapters for gesture's event stream.
//
// The primary adapter is [NewDonburiSink], which forwards every delivered
// gesture event (tap, doubletap, hold, and the raw pointer events) into a
// [Donburi] world as a typed event. Subscribe to [GestureEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	session.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
