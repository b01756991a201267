package ecs

import (
	"slices"

	"github.com/phanxgames/artistloader"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ChangeEventType is the Donburi event type for artistloader change events.
var ChangeEventType = events.NewEventType[artistloader.ChangeEvent]()

// NodeArtists mirrors one node's artist values in order.
type NodeArtists struct {
	NodeID uint32
	Values []artistloader.ArtistValue
}

// NodeArtistsComponent holds a node's mirrored values.
var NodeArtistsComponent = donburi.NewComponentType[NodeArtists]()

// DonburiStore is an EntityStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[uint32]donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Change events are published to ChangeEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{world: world, entities: make(map[uint32]donburi.Entity)}
}

var _ artistloader.EntityStore = (*DonburiStore)(nil)

// EmitEvent updates the node's entity and publishes the event.
func (s *DonburiStore) EmitEvent(event artistloader.ChangeEvent) {
	s.apply(event)
	ChangeEventType.Publish(s.world, event)
}

// Entity returns the entity mirroring node id.
func (s *DonburiStore) Entity(nodeID uint32) (donburi.Entity, bool) {
	e, ok := s.entities[nodeID]
	return e, ok && s.world.Valid(e)
}

// Values returns the mirrored values of node id.
func (s *DonburiStore) Values(nodeID uint32) []artistloader.ArtistValue {
	e, ok := s.Entity(nodeID)
	if !ok {
		return nil
	}
	return slices.Clone(NodeArtistsComponent.Get(s.world.Entry(e)).Values)
}

func (s *DonburiStore) entry(nodeID uint32) *donburi.Entry {
	if e, ok := s.Entity(nodeID); ok {
		return s.world.Entry(e)
	}
	e := s.world.Create(NodeArtistsComponent)
	s.entities[nodeID] = e
	entry := s.world.Entry(e)
	NodeArtistsComponent.SetValue(entry, NodeArtists{NodeID: nodeID})
	return entry
}

func (s *DonburiStore) apply(ev artistloader.ChangeEvent) {
	if ev.Type == artistloader.ChangeNodeRemoved {
		if e, ok := s.Entity(ev.NodeID); ok {
			s.world.Remove(e)
		}
		delete(s.entities, ev.NodeID)
		return
	}

	na := NodeArtistsComponent.Get(s.entry(ev.NodeID))
	n := len(na.Values)
	switch ev.Type {
	case artistloader.ChangeAdded:
		if ev.Index >= 0 && ev.Index <= n {
			na.Values = slices.Insert(na.Values, ev.Index, ev.Value)
		}
	case artistloader.ChangeRemoved:
		if ev.Index >= 0 && ev.Index < n {
			na.Values = slices.Delete(na.Values, ev.Index, ev.Index+1)
		}
	case artistloader.ChangeMoved:
		if ev.Index >= 0 && ev.Index < n && ev.From >= 0 && ev.From < n {
			na.Values[ev.Index], na.Values[ev.From] = na.Values[ev.From], na.Values[ev.Index]
		}
	case artistloader.ChangeValue:
		if ev.Index >= 0 && ev.Index < n {
			na.Values[ev.Index] = ev.Value
		}
	case artistloader.ChangeToggleAll:
		for i := range na.Values {
			na.Values[i].On = ev.Value.On
		}
	case artistloader.ChangeReset:
		na.Values = na.Values[:0]
	}
}
