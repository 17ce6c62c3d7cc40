package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

// DraftRepository stores drafts with optimistic concurrency. Save inserts a
// draft whose Version is zero and otherwise updates it only while the stored
// version still equals draft.Version, returning domain.ErrDraftConflict when
// it does not. On success draft.Version holds the new version.
type DraftRepository interface {
	Save(ctx context.Context, draft *domain.SurveyDraft) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SurveyDraft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type EditOptionInput struct {
	QuestionID  int
	OptionIndex int
	Text        string
}

type DraftService interface {
	Create(ctx context.Context, pollID int64) (*domain.SurveyDraft, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.SurveyDraft, error)
	AppendQuestion(ctx context.Context, id uuid.UUID, variant string) (*domain.SurveyDraft, int, error)
	RemoveQuestion(ctx context.Context, id uuid.UUID, questionID int) (*domain.SurveyDraft, error)
	UpdateQuestionText(ctx context.Context, id uuid.UUID, questionID int, text string) (*domain.SurveyDraft, error)
	UpdateOption(ctx context.Context, id uuid.UUID, input EditOptionInput) (*domain.SurveyDraft, error)
	AddOption(ctx context.Context, id uuid.UUID, questionID int) (*domain.SurveyDraft, error)
	SetAnswer(ctx context.Context, id uuid.UUID, questionID int, answer string) (*domain.SurveyDraft, error)
	Submit(ctx context.Context, id uuid.UUID, respondent domain.Respondent) error
}
