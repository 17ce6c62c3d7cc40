package ports

import (
	"context"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

// DashboardStore holds the latest derived results. Put replaces the stored
// value for a poll wholesale. PollIDs lists the polls the refresh loop should
// keep current: the ones pinned with Track plus, depending on the store, the
// ones read recently.
type DashboardStore interface {
	PutDashboard(d domain.PollDashboard)
	Dashboard(pollID int64) (domain.PollDashboard, bool)
	PutAnalytics(a domain.OpinionAnalytics)
	Analytics(pollID int64) (domain.OpinionAnalytics, bool)
	Track(pollID int64)
	PollIDs() []int64
}

type DashboardService interface {
	RefreshPoll(ctx context.Context, pollID int64) error
	Dashboard(ctx context.Context, pollID int64) (domain.PollDashboard, error)
	Analytics(ctx context.Context, pollID int64) (domain.OpinionAnalytics, error)
	CategoryDashboard(ctx context.Context, category string) (domain.PollDashboard, error)
	Responses(ctx context.Context, pollID int64) ([]domain.SurveyResponse, error)
}

type RefreshService interface {
	RefreshAll(ctx context.Context) error
	Run(ctx context.Context)
}
