package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
	"github.com/vncsmyrnk/pollboard/internal/core/tally"
)

type customPollService struct {
	backend ports.PollBackend
}

func NewCustomPollService(backend ports.PollBackend) ports.CustomPollService {
	return &customPollService{
		backend: backend,
	}
}

// Create drops blank competitor names and requires a title and at least one
// named competitor.
func (s *customPollService) Create(ctx context.Context, input domain.CreateCustomPollInput) (*domain.CustomPoll, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidPoll)
	}

	names := make([]string, 0, len(input.Competitors))
	for _, name := range input.Competitors {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one competitor is required", domain.ErrInvalidPoll)
	}
	input.Competitors = names

	return s.backend.CreateCustomPoll(ctx, input)
}

func (s *customPollService) Competitors(ctx context.Context, pollID int64) ([]domain.CustomCompetitor, error) {
	competitors, err := s.backend.FetchCustomPollCompetitors(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch competitors of custom poll %d: %w", pollID, err)
	}
	return competitors, nil
}

// Results recomputes the percentages from the backend's raw counts.
func (s *customPollService) Results(ctx context.Context, pollID int64) (domain.CustomPollResult, error) {
	poll, err := s.backend.FetchCustomPollResults(ctx, pollID)
	if err != nil {
		return domain.CustomPollResult{}, fmt.Errorf("failed to fetch results of custom poll %d: %w", pollID, err)
	}

	candidates := make([]domain.Competitor, 0, len(poll.Competitors))
	counts := make(map[int64]int64, len(poll.Competitors))
	for _, c := range poll.Competitors {
		candidates = append(candidates, domain.Competitor{ID: c.ID, Name: c.Name})
		counts[c.ID] = c.VoteCount
	}

	result := tally.TallyCounts(candidates, counts)
	// Custom polls have no parties.
	for i := range result.Results {
		result.Results[i].Party = ""
	}

	return domain.CustomPollResult{
		PollID:     poll.ID,
		Title:      poll.Title,
		Result:     result,
		ComputedAt: time.Now(),
	}, nil
}

// Vote checks the competitor against the poll before casting, since the
// backend's vote endpoint only takes the competitor id.
func (s *customPollService) Vote(ctx context.Context, pollID, competitorID int64) error {
	competitors, err := s.Competitors(ctx, pollID)
	if err != nil {
		return err
	}

	known := false
	for _, c := range competitors {
		if c.ID == competitorID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %d", domain.ErrUnknownCompetitor, competitorID)
	}

	if err := s.backend.CastCustomVote(ctx, domain.CustomVote{CompetitorID: competitorID}); err != nil {
		return fmt.Errorf("failed to cast vote on custom poll %d: %w", pollID, err)
	}
	return nil
}
