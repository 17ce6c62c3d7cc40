package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
	"github.com/vncsmyrnk/pollboard/internal/core/survey"
	"github.com/vncsmyrnk/pollboard/internal/core/tally"
)

type dashboardService struct {
	backend ports.PollBackend
	store   ports.DashboardStore
}

func NewDashboardService(backend ports.PollBackend, store ports.DashboardStore) ports.DashboardService {
	return &dashboardService{
		backend: backend,
		store:   store,
	}
}

// RefreshPoll recomputes the dashboard and the opinion analytics of a poll
// from freshly fetched records and replaces whatever the store held.
func (s *dashboardService) RefreshPoll(ctx context.Context, pollID int64) error {
	poll, err := s.backend.FetchPoll(ctx, pollID)
	if err != nil {
		return fmt.Errorf("failed to fetch poll %d: %w", pollID, err)
	}

	now := time.Now()
	s.store.PutDashboard(buildDashboard(poll, now))

	responses, err := s.backend.FetchResponses(ctx, pollID)
	if err != nil {
		return fmt.Errorf("failed to fetch responses of poll %d: %w", pollID, err)
	}
	s.store.PutAnalytics(buildAnalytics(poll, responses, now))

	return nil
}

func (s *dashboardService) Dashboard(ctx context.Context, pollID int64) (domain.PollDashboard, error) {
	if d, ok := s.store.Dashboard(pollID); ok {
		return d, nil
	}
	if err := s.RefreshPoll(ctx, pollID); err != nil {
		if d, ok := s.store.Dashboard(pollID); ok {
			return d, nil
		}
		return domain.PollDashboard{}, err
	}

	d, ok := s.store.Dashboard(pollID)
	if !ok {
		return domain.PollDashboard{}, domain.ErrPollNotFound
	}
	return d, nil
}

func (s *dashboardService) Analytics(ctx context.Context, pollID int64) (domain.OpinionAnalytics, error) {
	if a, ok := s.store.Analytics(pollID); ok {
		return a, nil
	}
	if err := s.RefreshPoll(ctx, pollID); err != nil {
		return domain.OpinionAnalytics{}, err
	}

	a, ok := s.store.Analytics(pollID)
	if !ok {
		return domain.OpinionAnalytics{}, domain.ErrPollNotFound
	}
	return a, nil
}

// CategoryDashboard returns the dashboard of the first poll the backend lists
// for the category.
func (s *dashboardService) CategoryDashboard(ctx context.Context, category string) (domain.PollDashboard, error) {
	polls, err := s.backend.ListPolls(ctx, category)
	if err != nil {
		return domain.PollDashboard{}, fmt.Errorf("failed to list polls of category %q: %w", category, err)
	}
	if len(polls) == 0 {
		return domain.PollDashboard{}, fmt.Errorf("no poll in category %q: %w", category, domain.ErrPollNotFound)
	}
	return s.Dashboard(ctx, polls[0].ID)
}

func (s *dashboardService) Responses(ctx context.Context, pollID int64) ([]domain.SurveyResponse, error) {
	responses, err := s.backend.FetchResponses(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch responses of poll %d: %w", pollID, err)
	}
	return responses, nil
}

func buildDashboard(poll *domain.Poll, now time.Time) domain.PollDashboard {
	counts := make(map[int64]int64, len(poll.Results))
	for _, r := range poll.Results {
		counts[r.ID] = r.VoteCount
	}

	result := tally.TallyCounts(poll.Candidates(), counts)
	result.SpoiledVotes = poll.SpoiledVotes

	return domain.PollDashboard{
		PollID:       poll.ID,
		Title:        poll.Title,
		Category:     poll.Category,
		Region:       poll.Region,
		County:       poll.County,
		Constituency: poll.Constituency,
		Ward:         poll.Ward,
		Result:       result,
		Turnout:      tally.ComputeTurnout(result.TotalVotes, result.SpoiledVotes, poll.RegisteredVoters),
		LastUpdated:  poll.LastUpdated,
		ComputedAt:   now,
	}
}

func buildAnalytics(poll *domain.Poll, responses []domain.SurveyResponse, now time.Time) domain.OpinionAnalytics {
	return domain.OpinionAnalytics{
		PollID:             poll.ID,
		Title:              poll.Title,
		Category:           poll.Category,
		Region:             poll.Region,
		TotalResponses:     len(responses),
		AgeDistribution:    tally.HistogramByAge(tally.RespondentAges(responses)),
		CompetitorQuestion: tally.QuestionText(responses, survey.CandidateQuestionID, domain.VariantSingleChoice, tally.NoQuestionText),
		CompetitorVotes:    tally.TallySingleChoiceAnswers(responses, survey.CandidateQuestionID, poll.CompetitorNames()),
		SentimentQuestion:  tally.QuestionText(responses, survey.SentimentQuestionID, domain.VariantYesNoNotSure, tally.NoQuestionText),
		SentimentCounts:    tally.TallyFixedChoiceAnswers(responses, survey.SentimentQuestionID),
		ComputedAt:         now,
	}
}
