package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

func TestDashboardStore_ReplacesWholesale(t *testing.T) {
	store := NewDashboardStore(time.Minute)

	store.PutDashboard(domain.PollDashboard{PollID: 1, Turnout: "10.00", Result: domain.PollResult{
		TotalVotes: 2,
		Results:    []domain.CandidateTally{{CandidateID: 1}, {CandidateID: 2}},
	}})
	store.PutDashboard(domain.PollDashboard{PollID: 1, Turnout: "20.00", Result: domain.PollResult{
		TotalVotes: 1,
		Results:    []domain.CandidateTally{{CandidateID: 3}},
	}})

	d, ok := store.Dashboard(1)
	require.True(t, ok)
	assert.Equal(t, "20.00", d.Turnout)
	assert.Equal(t, []domain.CandidateTally{{CandidateID: 3}}, d.Result.Results)

	_, ok = store.Dashboard(2)
	assert.False(t, ok)
}

func TestDashboardStore_ReturnsCopies(t *testing.T) {
	store := NewDashboardStore(time.Minute)
	results := []domain.CandidateTally{{CandidateID: 1, Name: "Alice"}}
	store.PutDashboard(domain.PollDashboard{PollID: 1, Result: domain.PollResult{Results: results}})
	results[0].Name = "changed"

	d, _ := store.Dashboard(1)
	d.Result.Results[0].Name = "changed again"

	again, _ := store.Dashboard(1)
	assert.Equal(t, "Alice", again.Result.Results[0].Name)

	store.PutAnalytics(domain.OpinionAnalytics{PollID: 1, CompetitorVotes: []domain.OptionCount{{Label: "Alice", Count: 1}}})
	a, ok := store.Analytics(1)
	require.True(t, ok)
	a.CompetitorVotes[0].Count = 99
	a, _ = store.Analytics(1)
	assert.Equal(t, 1, a.CompetitorVotes[0].Count)
}

func TestDashboardStore_Track(t *testing.T) {
	store := NewDashboardStore(time.Minute, 3, 1)
	store.Track(1)
	store.Track(2)
	assert.Equal(t, []int64{3, 1, 2}, store.PollIDs())
}

func TestDashboardStore_ReadPollsExpireWhenIdle(t *testing.T) {
	clock := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	store := NewDashboardStore(time.Minute, 1).(*dashboardStore)
	store.now = func() time.Time { return clock }

	for id := int64(1); id <= 3; id++ {
		store.PutDashboard(domain.PollDashboard{PollID: id})
	}
	assert.Equal(t, []int64{1}, store.PollIDs(), "stored but never read")

	store.Dashboard(3)
	store.Dashboard(2)
	assert.Equal(t, []int64{1, 2, 3}, store.PollIDs())

	clock = clock.Add(45 * time.Second)
	store.Dashboard(2)
	clock = clock.Add(30 * time.Second)
	assert.Equal(t, []int64{1, 2}, store.PollIDs())

	_, ok := store.Dashboard(3)
	assert.False(t, ok, "idle poll is evicted")
	_, ok = store.Dashboard(1)
	assert.True(t, ok, "pinned poll is kept")
}

func TestDashboardStore_ConcurrentAccess(t *testing.T) {
	store := NewDashboardStore(time.Minute)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			store.Track(id % 5)
			store.PutDashboard(domain.PollDashboard{PollID: id % 5})
		}(int64(i))
		go func(id int64) {
			defer wg.Done()
			store.Dashboard(id % 5)
			store.PollIDs()
		}(int64(i))
	}
	wg.Wait()
	assert.ElementsMatch(t, []int64{0, 1, 2, 3, 4}, store.PollIDs())
}

func TestSelectionStore(t *testing.T) {
	store := NewSelectionStore()
	session := uuid.New()

	store.Put(domain.Selection{Session: session, PollID: 1, CompetitorID: 4})
	store.Put(domain.Selection{Session: session, PollID: 2, CompetitorID: 5})

	sel, ok := store.Get(session, 1)
	require.True(t, ok)
	assert.Equal(t, int64(4), sel.CompetitorID)

	_, ok = store.Get(uuid.New(), 1)
	assert.False(t, ok)

	store.Delete(session, 1)
	_, ok = store.Get(session, 1)
	assert.False(t, ok)
	_, ok = store.Get(session, 2)
	assert.True(t, ok)
}

func TestDraftRepository(t *testing.T) {
	repo := NewDraftRepository()
	ctx := context.Background()
	draft := &domain.SurveyDraft{
		ID:     uuid.New(),
		PollID: 7,
		Questions: []domain.Question{
			{ID: 1, Text: "Q1", Kind: domain.OpenEnded{}},
		},
	}

	require.NoError(t, repo.Save(ctx, draft))
	draft.Questions[0].Text = "mutated"

	got, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q1", got.Questions[0].Text)

	require.NoError(t, repo.Delete(ctx, draft.ID))
	_, err = repo.GetByID(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, draft.ID), domain.ErrDraftNotFound)
}

func TestDraftRepository_VersionCheck(t *testing.T) {
	repo := NewDraftRepository()
	ctx := context.Background()
	draft := &domain.SurveyDraft{ID: uuid.New(), PollID: 7}

	require.NoError(t, repo.Save(ctx, draft))
	assert.Equal(t, int64(1), draft.Version)

	first, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)

	first.Questions = []domain.Question{{ID: 4, Kind: domain.OpenEnded{}}}
	require.NoError(t, repo.Save(ctx, first))
	assert.Equal(t, int64(2), first.Version)

	second.Questions = []domain.Question{{ID: 4, Kind: domain.YesNoNotSure{}}}
	assert.ErrorIs(t, repo.Save(ctx, second), domain.ErrDraftConflict)

	got, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VariantOpenEnded, got.Questions[0].Variant())

	fresh := &domain.SurveyDraft{ID: draft.ID}
	assert.ErrorIs(t, repo.Save(ctx, fresh), domain.ErrDraftConflict, "inserting over an existing draft")

	gone := &domain.SurveyDraft{ID: uuid.New(), Version: 3}
	assert.ErrorIs(t, repo.Save(ctx, gone), domain.ErrDraftNotFound)
}
