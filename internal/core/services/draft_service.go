package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
	"github.com/vncsmyrnk/pollboard/internal/core/survey"
)

// maxSaveAttempts bounds how often an edit is replayed on a fresh copy of the
// draft after losing a race with another edit.
const maxSaveAttempts = 5

type draftService struct {
	repo    ports.DraftRepository
	backend ports.PollBackend
}

func NewDraftService(repo ports.DraftRepository, backend ports.PollBackend) ports.DraftService {
	return &draftService{
		repo:    repo,
		backend: backend,
	}
}

// Create starts a draft for a poll with the three core questions filled in
// from the poll's category and competitors.
func (s *draftService) Create(ctx context.Context, pollID int64) (*domain.SurveyDraft, error) {
	poll, err := s.backend.FetchPoll(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch poll %d: %w", pollID, err)
	}

	now := time.Now()
	draft := &domain.SurveyDraft{
		ID:        uuid.New(),
		PollID:    poll.ID,
		Questions: survey.BuildInitialQuestions(poll.Category, poll.CompetitorNames(), poll.PresidentialOrTitle()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *draftService) Get(ctx context.Context, id uuid.UUID) (*domain.SurveyDraft, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *draftService) AppendQuestion(ctx context.Context, id uuid.UUID, variant string) (*domain.SurveyDraft, int, error) {
	v, err := domain.ParseVariant(variant)
	if err != nil {
		return nil, 0, err
	}

	var questionID int
	draft, err := s.update(ctx, id, func(draft *domain.SurveyDraft) error {
		draft.Questions, questionID = survey.AppendQuestion(draft.Questions, v)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return draft, questionID, nil
}

func (s *draftService) RemoveQuestion(ctx context.Context, id uuid.UUID, questionID int) (*domain.SurveyDraft, error) {
	return s.edit(ctx, id, questionID, true, func(questions []domain.Question, _ domain.Question) ([]domain.Question, error) {
		return survey.RemoveQuestion(questions, questionID), nil
	})
}

func (s *draftService) UpdateQuestionText(ctx context.Context, id uuid.UUID, questionID int, text string) (*domain.SurveyDraft, error) {
	return s.edit(ctx, id, questionID, true, func(questions []domain.Question, _ domain.Question) ([]domain.Question, error) {
		return survey.UpdateQuestionText(questions, questionID, text), nil
	})
}

func (s *draftService) UpdateOption(ctx context.Context, id uuid.UUID, input ports.EditOptionInput) (*domain.SurveyDraft, error) {
	return s.edit(ctx, id, input.QuestionID, true, func(questions []domain.Question, q domain.Question) ([]domain.Question, error) {
		sc, ok := q.Kind.(domain.SingleChoice)
		if !ok {
			return nil, domain.ErrOptionsFixed
		}
		if input.OptionIndex < 0 || input.OptionIndex >= len(sc.Options) {
			return nil, domain.ErrOptionNotFound
		}
		return survey.UpdateOption(questions, input.QuestionID, input.OptionIndex, input.Text), nil
	})
}

func (s *draftService) AddOption(ctx context.Context, id uuid.UUID, questionID int) (*domain.SurveyDraft, error) {
	return s.edit(ctx, id, questionID, true, func(questions []domain.Question, q domain.Question) ([]domain.Question, error) {
		if q.Variant() != domain.VariantSingleChoice {
			return nil, domain.ErrOptionsFixed
		}
		return survey.AddOption(questions, questionID), nil
	})
}

// SetAnswer is allowed on locked questions: answering is not authoring.
func (s *draftService) SetAnswer(ctx context.Context, id uuid.UUID, questionID int, answer string) (*domain.SurveyDraft, error) {
	return s.edit(ctx, id, questionID, false, func(questions []domain.Question, _ domain.Question) ([]domain.Question, error) {
		return survey.SetAnswer(questions, questionID, answer), nil
	})
}

// Submit validates the draft, posts it to the backend and discards it. The
// draft is kept when the backend rejects it so the respondent can retry.
func (s *draftService) Submit(ctx context.Context, id uuid.UUID, respondent domain.Respondent) error {
	draft, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := survey.ValidateForSubmission(respondent, draft.Questions); err != nil {
		return err
	}

	submission := domain.SurveySubmission{
		PollID:     draft.PollID,
		Respondent: respondent,
		Answers:    survey.Records(draft.Questions),
	}
	if err := s.backend.SubmitSurvey(ctx, submission); err != nil {
		return fmt.Errorf("failed to submit survey for poll %d: %w", draft.PollID, err)
	}

	return s.repo.Delete(ctx, id)
}

type questionEdit func(questions []domain.Question, target domain.Question) ([]domain.Question, error)

func (s *draftService) edit(ctx context.Context, id uuid.UUID, questionID int, authoring bool, fn questionEdit) (*domain.SurveyDraft, error) {
	return s.update(ctx, id, func(draft *domain.SurveyDraft) error {
		q, ok := survey.Find(draft.Questions, questionID)
		if !ok {
			return domain.ErrQuestionNotFound
		}
		if authoring && q.Locked {
			return domain.ErrCoreQuestionLocked
		}

		questions, err := fn(draft.Questions, q)
		if err != nil {
			return err
		}
		draft.Questions = questions
		return nil
	})
}

// update loads the draft, applies fn and saves it. When another edit saved
// the draft in between, fn is applied again to the newer copy.
func (s *draftService) update(ctx context.Context, id uuid.UUID, fn func(draft *domain.SurveyDraft) error) (*domain.SurveyDraft, error) {
	for attempt := 1; ; attempt++ {
		draft, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(draft); err != nil {
			return nil, err
		}

		draft.UpdatedAt = time.Now()
		err = s.repo.Save(ctx, draft)
		if errors.Is(err, domain.ErrDraftConflict) && attempt < maxSaveAttempts {
			continue
		}
		if err != nil {
			return nil, err
		}
		return draft, nil
	}
}
