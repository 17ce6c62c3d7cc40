package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type pollService struct {
	backend ports.PollBackend
}

func NewPollService(backend ports.PollBackend) ports.PollService {
	return &pollService{
		backend: backend,
	}
}

// Create requires every poll detail of the region chain and a name and party
// for each competitor, matching what the authoring form enforces.
func (s *pollService) Create(ctx context.Context, input domain.CreatePollInput) (*domain.Poll, error) {
	required := []struct {
		field string
		value *string
	}{
		{"title", &input.Title},
		{"presidential", &input.Presidential},
		{"category", &input.Category},
		{"region", &input.Region},
		{"county", &input.County},
		{"constituency", &input.Constituency},
		{"ward", &input.Ward},
	}
	for _, r := range required {
		*r.value = strings.TrimSpace(*r.value)
		if *r.value == "" {
			return nil, fmt.Errorf("%w: %s is required", domain.ErrInvalidPoll, r.field)
		}
	}

	if len(input.Competitors) == 0 {
		return nil, fmt.Errorf("%w: at least one competitor is required", domain.ErrInvalidPoll)
	}
	competitors := make([]domain.Competitor, len(input.Competitors))
	for i, c := range input.Competitors {
		c.Name = strings.TrimSpace(c.Name)
		c.Party = strings.TrimSpace(c.Party)
		if c.Name == "" || c.Party == "" {
			return nil, fmt.Errorf("%w: competitor %d needs a name and a party", domain.ErrInvalidPoll, i+1)
		}
		competitors[i] = c
	}
	input.Competitors = competitors

	return s.backend.CreatePoll(ctx, input)
}

func (s *pollService) List(ctx context.Context, category string) ([]domain.PollSummary, error) {
	polls, err := s.backend.ListPolls(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	return polls, nil
}
