// internal/room/store.go
package room

import (
	"sync"

	"github.com/google/uuid"
)

// Store manages active rooms in memory with thread-safe access.
type Store struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*Room
}

// NewStore initializes and returns an empty Store.
func NewStore() *Store {
	return &Store{rooms: make(map[uuid.UUID]*Room)}
}

// Add registers a room. An existing room with the same ID is left in
// place.
func (s *Store) Add(r *Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rooms[r.ID]; exists {
		return
	}
	s.rooms[r.ID] = r
}

// Get retrieves a room by ID.
func (s *Store) Get(id uuid.UUID) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Delete closes the room and removes it from the store.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	r, ok := s.rooms[id]
	delete(s.rooms, id)
	s.mu.Unlock()
	if ok {
		r.Close()
	}
}

// List returns a snapshot of the active rooms.
func (s *Store) List() []*Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	return out
}

// CloseAll tears down every room; used on shutdown.
func (s *Store) CloseAll() {
	s.mu.Lock()
	rooms := make([]*Room, 0, len(s.rooms))
	for id, r := range s.rooms {
		rooms = append(rooms, r)
		delete(s.rooms, id)
	}
	s.mu.Unlock()
	for _, r := range rooms {
		r.Close()
	}
}
