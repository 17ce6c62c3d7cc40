package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type ballotService struct {
	backend    ports.PollBackend
	selections ports.SelectionStore
	dashboards ports.DashboardStore
}

func NewBallotService(backend ports.PollBackend, selections ports.SelectionStore, dashboards ports.DashboardStore) ports.BallotService {
	return &ballotService{
		backend:    backend,
		selections: selections,
		dashboards: dashboards,
	}
}

// Select records the session's pick. When results for the poll are already
// known the competitor must be one of them; otherwise the backend decides on cast.
func (s *ballotService) Select(ctx context.Context, session uuid.UUID, pollID, competitorID int64) (domain.Selection, error) {
	if d, ok := s.dashboards.Dashboard(pollID); ok && !hasCandidate(d.Result, competitorID) {
		return domain.Selection{}, fmt.Errorf("%w: %d", domain.ErrUnknownCompetitor, competitorID)
	}

	sel := domain.Selection{Session: session, PollID: pollID, CompetitorID: competitorID}
	s.selections.Put(sel)
	return sel, nil
}

func (s *ballotService) Selection(ctx context.Context, session uuid.UUID, pollID int64) (domain.Selection, error) {
	sel, ok := s.selections.Get(session, pollID)
	if !ok {
		return domain.Selection{}, domain.ErrNoSelection
	}
	return sel, nil
}

func (s *ballotService) Cast(ctx context.Context, session uuid.UUID, pollID int64) error {
	sel, ok := s.selections.Get(session, pollID)
	if !ok {
		return domain.ErrNoSelection
	}

	vote := domain.Vote{PollID: sel.PollID, CompetitorID: sel.CompetitorID}
	if err := s.backend.CastVote(ctx, vote); err != nil {
		return fmt.Errorf("failed to cast vote on poll %d: %w", pollID, err)
	}

	s.selections.Delete(session, pollID)
	return nil
}

func hasCandidate(result domain.PollResult, competitorID int64) bool {
	for _, c := range result.Results {
		if c.CandidateID == competitorID {
			return true
		}
	}
	return false
}
