package sim

import "log"

// HookPosStorePut marks when an item is accepted into the store.
var HookPosStorePut = &HookPos{Name: "StorePut"}

// HookPosStoreGet marks when an item is handed to a getter.
var HookPosStoreGet = &HookPos{Name: "StoreGet"}

// A Store is a bounded FIFO queue of opaque items with separate FIFO
// queues of pending get and put requests. A put fires only when the store
// has spare capacity; a get fires only when an item is available. When a
// put arrives while a getter is waiting, the item is handed to the getter
// within the same virtual instant.
type Store struct {
	HookableBase

	env      *Environment
	capacity int

	items []any
	gets  []*Event
	puts  []*storePut
}

type storePut struct {
	evt  *Event
	item any
}

// NewStore creates a Store with the given capacity. A capacity below one
// is a programming error and panics.
func NewStore(env *Environment, capacity int) *Store {
	if capacity < 1 {
		log.Panicf("store capacity must be positive, got %d", capacity)
	}

	return &Store{
		env:      env,
		capacity: capacity,
	}
}

// Put offers an item to the store. The returned event fires once the item
// is accepted; with spare capacity that is within the same step.
func (s *Store) Put(item any) *Event {
	evt := s.env.NewEvent()
	s.puts = append(s.puts, &storePut{evt: evt, item: item})
	s.balance()

	return evt
}

// Get requests the oldest item of the store. The returned event fires with
// the item as its value, immediately if one is present, otherwise once a
// later put provides one.
func (s *Store) Get() *Event {
	evt := s.env.NewEvent()
	s.gets = append(s.gets, evt)
	s.balance()

	return evt
}

// balance advances the heads of both waiter queues until neither can move,
// so every request that became satisfiable resolves within the same
// virtual instant. Getters drain before puts refill, keeping item order
// FIFO across the hand-off.
func (s *Store) balance() {
	for {
		progress := false

		for len(s.gets) > 0 && len(s.items) > 0 {
			evt := s.gets[0]
			s.gets = s.gets[1:]

			item := s.items[0]
			s.items = s.items[1:]

			evt.Succeed(item)
			progress = true

			if s.NumHooks() > 0 {
				s.InvokeHook(HookCtx{
					Domain: s,
					Pos:    HookPosStoreGet,
					Item:   item,
					Detail: len(s.items),
				})
			}
		}

		for len(s.puts) > 0 && len(s.items) < s.capacity {
			put := s.puts[0]
			s.puts = s.puts[1:]

			s.items = append(s.items, put.item)
			put.evt.Succeed(nil)
			progress = true

			if s.NumHooks() > 0 {
				s.InvokeHook(HookCtx{
					Domain: s,
					Pos:    HookPosStorePut,
					Item:   put.item,
					Detail: len(s.items),
				})
			}
		}

		if !progress {
			return
		}
	}
}

// Len returns the number of items currently in the store.
func (s *Store) Len() int {
	return len(s.items)
}

// Capacity returns the capacity of the store.
func (s *Store) Capacity() int {
	return s.capacity
}

// PendingGets returns the number of get requests waiting for an item.
func (s *Store) PendingGets() int {
	return len(s.gets)
}

// PendingPuts returns the number of put requests waiting for capacity.
func (s *Store) PendingPuts() int {
	return len(s.puts)
}
