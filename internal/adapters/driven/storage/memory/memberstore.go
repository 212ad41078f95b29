package memory

import (
	"context"
	"sync"

	"github.com/tanelv/libris/internal/core/domain"
	"github.com/tanelv/libris/internal/core/ports/driven"
)

// Ensure MemberStore implements the interface.
var _ driven.MemberStore = (*MemberStore)(nil)

// MemberStore is an in-memory implementation of driven.MemberStore.
type MemberStore struct {
	mu      sync.RWMutex
	members map[string]domain.Member
}

// NewMemberStore creates a new in-memory member store.
func NewMemberStore() *MemberStore {
	return &MemberStore{
		members: make(map[string]domain.Member),
	}
}

// Save stores or updates a member.
func (s *MemberStore) Save(_ context.Context, member domain.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[member.ID] = member
	return nil
}

// Get retrieves a member by ID.
func (s *MemberStore) Get(_ context.Context, id string) (*domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &member, nil
}

// Delete removes a member.
func (s *MemberStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, id)
	return nil
}

// List returns all registered members.
func (s *MemberStore) List(_ context.Context) ([]domain.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Member, 0, len(s.members))
	for _, member := range s.members {
		result = append(result, member)
	}
	return result, nil
}

// Exists reports whether a member with the given ID exists.
func (s *MemberStore) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[id]
	return ok, nil
}
