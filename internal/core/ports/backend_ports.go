package ports

import (
	"context"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

// PollBackend is the external service that owns persistence and vote integrity.
type PollBackend interface {
	FetchPoll(ctx context.Context, pollID int64) (*domain.Poll, error)
	FetchResponses(ctx context.Context, pollID int64) ([]domain.SurveyResponse, error)
	SubmitSurvey(ctx context.Context, submission domain.SurveySubmission) error
	CastVote(ctx context.Context, vote domain.Vote) error
	CreatePoll(ctx context.Context, input domain.CreatePollInput) (*domain.Poll, error)
	ListPolls(ctx context.Context, category string) ([]domain.PollSummary, error)

	CreateCustomPoll(ctx context.Context, input domain.CreateCustomPollInput) (*domain.CustomPoll, error)
	FetchCustomPollCompetitors(ctx context.Context, pollID int64) ([]domain.CustomCompetitor, error)
	FetchCustomPollResults(ctx context.Context, pollID int64) (*domain.CustomPoll, error)
	CastCustomVote(ctx context.Context, vote domain.CustomVote) error
}
