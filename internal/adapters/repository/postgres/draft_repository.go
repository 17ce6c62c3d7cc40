package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type draftRepository struct {
	db *sql.DB
}

func NewDraftRepository(db *sql.DB) ports.DraftRepository {
	return &draftRepository{
		db: db,
	}
}

// Save inserts a new draft or updates an existing one guarded by its version.
// Questions are stored as a single jsonb document in their wire shape.
func (r *draftRepository) Save(ctx context.Context, draft *domain.SurveyDraft) error {
	questions, err := json.Marshal(draft.Questions)
	if err != nil {
		return fmt.Errorf("failed to encode questions: %w", err)
	}

	if draft.Version == 0 {
		return r.insert(ctx, draft, string(questions))
	}

	query := `
		UPDATE survey_drafts
		SET questions = $3, updated_at = $4, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING version
	`
	var version int64
	err = r.db.QueryRowContext(ctx, query, draft.ID, draft.Version, string(questions), draft.UpdatedAt).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r.missingOrConflict(ctx, draft.ID)
		}
		return fmt.Errorf("failed to save draft: %w", err)
	}

	draft.Version = version
	return nil
}

func (r *draftRepository) insert(ctx context.Context, draft *domain.SurveyDraft, questions string) error {
	query := `
		INSERT INTO survey_drafts (id, poll_id, questions, version, created_at, updated_at)
		VALUES ($1, $2, $3, 1, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, draft.ID, draft.PollID, questions, draft.CreatedAt, draft.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	if n == 0 {
		return domain.ErrDraftConflict
	}

	draft.Version = 1
	return nil
}

func (r *draftRepository) missingOrConflict(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM survey_drafts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	if !exists {
		return domain.ErrDraftNotFound
	}
	return domain.ErrDraftConflict
}

func (r *draftRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SurveyDraft, error) {
	query := `
		SELECT id, poll_id, questions, version, created_at, updated_at
		FROM survey_drafts
		WHERE id = $1
	`

	var draft domain.SurveyDraft
	var questions []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&draft.ID, &draft.PollID, &questions, &draft.Version, &draft.CreatedAt, &draft.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	if err := json.Unmarshal(questions, &draft.Questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions of draft %s: %w", id, err)
	}

	return &draft, nil
}

func (r *draftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM survey_drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if n == 0 {
		return domain.ErrDraftNotFound
	}
	return nil
}
