package ticket

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	// GetByID returns (nil, nil) when the ticket does not exist.
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	// TouchUpdatedAt sets updated_at to at unless the stored value is already
	// later. Returns a not-found error when the ticket does not exist.
	TouchUpdatedAt(ctx context.Context, id uint, at time.Time) error
}
