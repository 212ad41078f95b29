package driven

import (
	"context"

	"github.com/tanelv/libris/internal/core/domain"
)

// MemberStore persists members.
type MemberStore interface {
	// Save stores or updates a member.
	Save(ctx context.Context, member domain.Member) error

	// Get retrieves a member by ID. Returns domain.ErrNotFound when the
	// member does not exist.
	Get(ctx context.Context, id string) (*domain.Member, error)

	// Delete removes a member. Lending state referencing the member is
	// intentionally left untouched; the engine treats missing members as
	// ineligible wherever it encounters them.
	Delete(ctx context.Context, id string) error

	// List returns all registered members.
	List(ctx context.Context) ([]domain.Member, error)

	// Exists reports whether a member with the given ID exists.
	Exists(ctx context.Context, id string) (bool, error)
}
