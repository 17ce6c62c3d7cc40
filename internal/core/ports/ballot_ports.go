package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

type SelectionStore interface {
	Put(sel domain.Selection)
	Get(session uuid.UUID, pollID int64) (domain.Selection, bool)
	Delete(session uuid.UUID, pollID int64)
}

type BallotService interface {
	Select(ctx context.Context, session uuid.UUID, pollID, competitorID int64) (domain.Selection, error)
	Selection(ctx context.Context, session uuid.UUID, pollID int64) (domain.Selection, error)
	Cast(ctx context.Context, session uuid.UUID, pollID int64) error
}
