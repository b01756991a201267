// Package ecs provides ECS adapters for artistloader's change events.
//
// The primary adapter is [NewDonburiStore], which bridges node change events
// (rows added, removed, moved, edited) into a [Donburi] world as typed
// events and keeps one entity per node whose [NodeArtists] component mirrors
// the node's artist values. Subscribe to [ChangeEventType] in your ECS
// systems to receive the events.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
