package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/pollboard/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/services"
)

type stubBackend struct {
	mu          sync.Mutex
	polls       map[int64]*domain.Poll
	responses   map[int64][]domain.SurveyResponse
	votes       []domain.Vote
	submissions []domain.SurveySubmission
	customVotes []domain.CustomVote
	voteErr     error
}

func (b *stubBackend) FetchPoll(ctx context.Context, pollID int64) (*domain.Poll, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.polls[pollID]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	cp := *p
	return &cp, nil
}

func (b *stubBackend) FetchResponses(ctx context.Context, pollID int64) ([]domain.SurveyResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.polls[pollID]; !ok {
		return nil, domain.ErrPollNotFound
	}
	return b.responses[pollID], nil
}

func (b *stubBackend) SubmitSurvey(ctx context.Context, submission domain.SurveySubmission) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submissions = append(b.submissions, submission)
	return nil
}

func (b *stubBackend) CastVote(ctx context.Context, vote domain.Vote) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.voteErr != nil {
		return b.voteErr
	}
	b.votes = append(b.votes, vote)
	return nil
}

func (b *stubBackend) CreatePoll(ctx context.Context, input domain.CreatePollInput) (*domain.Poll, error) {
	return &domain.Poll{ID: 100, Title: input.Title, Category: input.Category, Competitors: input.Competitors}, nil
}

func (b *stubBackend) ListPolls(ctx context.Context, category string) ([]domain.PollSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	polls := []domain.PollSummary{}
	for _, p := range b.polls {
		if category == "" || p.Category == category {
			polls = append(polls, domain.PollSummary{ID: p.ID, Title: p.Title, Category: p.Category, Region: p.Region})
		}
	}
	return polls, nil
}

func (b *stubBackend) CreateCustomPoll(ctx context.Context, input domain.CreateCustomPollInput) (*domain.CustomPoll, error) {
	poll := &domain.CustomPoll{ID: 200, Title: input.Title}
	for i, name := range input.Competitors {
		poll.Competitors = append(poll.Competitors, domain.CustomCompetitor{ID: int64(i + 1), Name: name})
	}
	return poll, nil
}

func (b *stubBackend) FetchCustomPollCompetitors(ctx context.Context, pollID int64) ([]domain.CustomCompetitor, error) {
	if pollID != 200 {
		return nil, domain.ErrPollNotFound
	}
	return []domain.CustomCompetitor{{ID: 1, Name: "Mahamri"}, {ID: 2, Name: "Viazi karai"}}, nil
}

func (b *stubBackend) FetchCustomPollResults(ctx context.Context, pollID int64) (*domain.CustomPoll, error) {
	if pollID != 200 {
		return nil, domain.ErrPollNotFound
	}
	return &domain.CustomPoll{ID: 200, Title: "Street food", Competitors: []domain.CustomCompetitor{
		{ID: 1, Name: "Mahamri", VoteCount: 1},
		{ID: 2, Name: "Viazi karai", VoteCount: 3},
	}}, nil
}

func (b *stubBackend) CastCustomVote(ctx context.Context, vote domain.CustomVote) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.customVotes = append(b.customVotes, vote)
	return nil
}

type TestApp struct {
	Server  *httptest.Server
	Client  *http.Client
	Backend *stubBackend
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	backend := &stubBackend{
		polls: map[int64]*domain.Poll{
			7: {
				ID:       7,
				Title:    "Governor race",
				Category: "Governor",
				Region:   "Coast",
				Competitors: []domain.Competitor{
					{ID: 1, Name: "Alice", Party: "Blue"},
					{ID: 2, Name: "Bob"},
				},
				Results: []domain.BackendCount{
					{ID: 1, VoteCount: 2},
					{ID: 2, VoteCount: 1},
				},
				RegisteredVoters: 6,
			},
		},
		responses: map[int64][]domain.SurveyResponse{
			7: {
				{ID: 1, Name: "Ann", Gender: "female", Age: 30, Answers: []domain.AnswerRecord{
					{ID: 1, Text: "Who?", Type: domain.VariantSingleChoice, Answer: "Alice"},
					{ID: 2, Text: "Why?", Type: domain.VariantOpenEnded, Answer: "roads, schools"},
				}},
				{ID: 2, Name: "Ben", Gender: "male", Age: 17, Answers: []domain.AnswerRecord{
					{ID: 1, Text: "Who?", Type: domain.VariantSingleChoice, Answer: "Bob"},
				}},
			},
		},
	}

	store := memory.NewDashboardStore(time.Minute)
	dashboards := services.NewDashboardService(backend, store)
	router := NewHandler(
		NewDashboardHandler(dashboards),
		NewDraftHandler(services.NewDraftService(memory.NewDraftRepository(), backend)),
		NewBallotHandler(services.NewBallotService(backend, memory.NewSelectionStore(), store)),
		NewPollHandler(services.NewPollService(backend)),
		NewCustomPollHandler(services.NewCustomPollService(backend)),
		[]string{"*"},
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := server.Client()
	client.Jar = jar

	return &TestApp{Server: server, Client: client, Backend: backend}
}

func (app *TestApp) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
