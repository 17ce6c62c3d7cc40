package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type draftRepository struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]domain.SurveyDraft
}

func NewDraftRepository() ports.DraftRepository {
	return &draftRepository{
		drafts: make(map[uuid.UUID]domain.SurveyDraft),
	}
}

func (r *draftRepository) Save(ctx context.Context, draft *domain.SurveyDraft) error {
	d := *draft
	d.Questions = slices.Clone(draft.Questions)

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.drafts[d.ID]
	switch {
	case !ok && d.Version != 0:
		return domain.ErrDraftNotFound
	case ok && stored.Version != d.Version:
		return domain.ErrDraftConflict
	}

	d.Version++
	r.drafts[d.ID] = d
	draft.Version = d.Version
	return nil
}

func (r *draftRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SurveyDraft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	d.Questions = slices.Clone(d.Questions)
	return &d, nil
}

func (r *draftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drafts[id]; !ok {
		return domain.ErrDraftNotFound
	}
	delete(r.drafts, id)
	return nil
}
