package ports

import (
	"context"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

type PollService interface {
	Create(ctx context.Context, input domain.CreatePollInput) (*domain.Poll, error)
	List(ctx context.Context, category string) ([]domain.PollSummary, error)
}

type CustomPollService interface {
	Create(ctx context.Context, input domain.CreateCustomPollInput) (*domain.CustomPoll, error)
	Competitors(ctx context.Context, pollID int64) ([]domain.CustomCompetitor, error)
	Results(ctx context.Context, pollID int64) (domain.CustomPollResult, error)
	Vote(ctx context.Context, pollID, competitorID int64) error
}
