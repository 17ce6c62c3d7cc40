package services

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
)

type fakeBackend struct {
	mu          sync.Mutex
	polls       map[int64]*domain.Poll
	responses   map[int64][]domain.SurveyResponse
	failPoll    map[int64]error
	submitErr   error
	voteErr     error
	submissions []domain.SurveySubmission
	votes       []domain.Vote
	created     []domain.CreatePollInput
	custom      map[int64]*domain.CustomPoll
	customVotes []domain.CustomVote
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		polls:     map[int64]*domain.Poll{},
		responses: map[int64][]domain.SurveyResponse{},
		failPoll:  map[int64]error{},
		custom:    map[int64]*domain.CustomPoll{},
	}
}

func (b *fakeBackend) FetchPoll(ctx context.Context, pollID int64) (*domain.Poll, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failPoll[pollID]; err != nil {
		return nil, err
	}
	p, ok := b.polls[pollID]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	cp := *p
	return &cp, nil
}

func (b *fakeBackend) FetchResponses(ctx context.Context, pollID int64) ([]domain.SurveyResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.responses[pollID], nil
}

func (b *fakeBackend) SubmitSurvey(ctx context.Context, submission domain.SurveySubmission) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.submitErr != nil {
		return b.submitErr
	}
	b.submissions = append(b.submissions, submission)
	return nil
}

func (b *fakeBackend) CastVote(ctx context.Context, vote domain.Vote) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.voteErr != nil {
		return b.voteErr
	}
	b.votes = append(b.votes, vote)
	return nil
}

func (b *fakeBackend) CreatePoll(ctx context.Context, input domain.CreatePollInput) (*domain.Poll, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, input)
	return &domain.Poll{ID: int64(len(b.created)), Title: input.Title, Category: input.Category, Competitors: input.Competitors}, nil
}

func (b *fakeBackend) ListPolls(ctx context.Context, category string) ([]domain.PollSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []domain.PollSummary
	for _, p := range b.polls {
		if category == "" || p.Category == category {
			out = append(out, domain.PollSummary{ID: p.ID, Title: p.Title, Category: p.Category})
		}
	}
	slices.SortFunc(out, func(x, y domain.PollSummary) int { return cmp.Compare(x.ID, y.ID) })
	return out, nil
}

func (b *fakeBackend) CreateCustomPoll(ctx context.Context, input domain.CreateCustomPollInput) (*domain.CustomPoll, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	poll := &domain.CustomPoll{ID: int64(len(b.custom) + 1), Title: input.Title}
	for i, name := range input.Competitors {
		poll.Competitors = append(poll.Competitors, domain.CustomCompetitor{ID: int64(i + 1), Name: name})
	}
	b.custom[poll.ID] = poll
	return poll, nil
}

func (b *fakeBackend) FetchCustomPollCompetitors(ctx context.Context, pollID int64) ([]domain.CustomCompetitor, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.custom[pollID]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return slices.Clone(p.Competitors), nil
}

func (b *fakeBackend) FetchCustomPollResults(ctx context.Context, pollID int64) (*domain.CustomPoll, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.custom[pollID]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	cp := *p
	cp.Competitors = slices.Clone(p.Competitors)
	return &cp, nil
}

func (b *fakeBackend) CastCustomVote(ctx context.Context, vote domain.CustomVote) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.customVotes = append(b.customVotes, vote)
	return nil
}

func (b *fakeBackend) setPoll(p *domain.Poll) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.polls[p.ID] = p
}

func (b *fakeBackend) setFailure(pollID int64, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failPoll[pollID] = err
}

type fakeStore struct {
	mu         sync.Mutex
	dashboards map[int64]domain.PollDashboard
	analytics  map[int64]domain.OpinionAnalytics
	tracked    []int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		dashboards: map[int64]domain.PollDashboard{},
		analytics:  map[int64]domain.OpinionAnalytics{},
	}
}

func (s *fakeStore) PutDashboard(d domain.PollDashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboards[d.PollID] = d
}

func (s *fakeStore) Dashboard(pollID int64) (domain.PollDashboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dashboards[pollID]
	return d, ok
}

func (s *fakeStore) PutAnalytics(a domain.OpinionAnalytics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analytics[a.PollID] = a
}

func (s *fakeStore) Analytics(pollID int64) (domain.OpinionAnalytics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.analytics[pollID]
	return a, ok
}

func (s *fakeStore) Track(pollID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.tracked {
		if id == pollID {
			return
		}
	}
	s.tracked = append(s.tracked, pollID)
}

func (s *fakeStore) PollIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.tracked...)
}

type fakeDrafts struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]domain.SurveyDraft
	// readDelay widens the window between a read and the following save.
	readDelay time.Duration
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{drafts: map[uuid.UUID]domain.SurveyDraft{}}
}

func (r *fakeDrafts) Save(ctx context.Context, draft *domain.SurveyDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.drafts[draft.ID]; ok && stored.Version != draft.Version {
		return domain.ErrDraftConflict
	}
	draft.Version++
	r.drafts[draft.ID] = *draft
	return nil
}

func (r *fakeDrafts) GetByID(ctx context.Context, id uuid.UUID) (*domain.SurveyDraft, error) {
	r.mu.Lock()
	d, ok := r.drafts[id]
	r.mu.Unlock()
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	time.Sleep(r.readDelay)
	d.Questions = append([]domain.Question(nil), d.Questions...)
	return &d, nil
}

func (r *fakeDrafts) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[id]; !ok {
		return domain.ErrDraftNotFound
	}
	delete(r.drafts, id)
	return nil
}

type fakeSelections struct {
	mu   sync.Mutex
	sels map[uuid.UUID]map[int64]domain.Selection
}

func newFakeSelections() *fakeSelections {
	return &fakeSelections{sels: map[uuid.UUID]map[int64]domain.Selection{}}
}

func (s *fakeSelections) Put(sel domain.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sels[sel.Session] == nil {
		s.sels[sel.Session] = map[int64]domain.Selection{}
	}
	s.sels[sel.Session][sel.PollID] = sel
}

func (s *fakeSelections) Get(session uuid.UUID, pollID int64) (domain.Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel, ok := s.sels[session][pollID]
	return sel, ok
}

func (s *fakeSelections) Delete(session uuid.UUID, pollID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sels[session], pollID)
}

func samplePoll() *domain.Poll {
	return &domain.Poll{
		ID:           7,
		Title:        "Governor race",
		Category:     "Governor",
		Presidential: "Jane Doe",
		Region:       "Coast",
		Competitors: []domain.Competitor{
			{ID: 1, Name: "Alice", Party: "Blue"},
			{ID: 2, Name: "Bob"},
		},
		Results: []domain.BackendCount{
			{ID: 1, Name: "Alice", VoteCount: 2},
			{ID: 2, Name: "Bob", VoteCount: 1},
		},
		TotalVotes:       3,
		SpoiledVotes:     1,
		RegisteredVoters: 8,
	}
}
