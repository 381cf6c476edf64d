package booking

import (
	"context"
	"sync"
)

// Store persists accepted bookings keyed by full name.
//
// Create is a conditional write: it succeeds only when no record exists
// under the key, performed as a single atomic operation so that concurrent
// requests for the same name cannot both succeed. Implementations must
// acknowledge durability before returning.
type Store interface {
	Get(ctx context.Context, fullName string) (*Booking, error)
	Create(ctx context.Context, b *Booking) error
}

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu       sync.Mutex
	bookings map[string]*Booking
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bookings: make(map[string]*Booking)}
}

// Get retrieves a booking by full name.
func (s *MemoryStore) Get(ctx context.Context, fullName string) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[fullName]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

// Create stores a booking if no record exists under its full name.
func (s *MemoryStore) Create(ctx context.Context, b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[b.FullName]; exists {
		return ErrDuplicateBooking
	}
	copied := *b
	s.bookings[b.FullName] = &copied
	return nil
}

var _ Store = (*MemoryStore)(nil)
