package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vncsmyrnk/pollboard/internal/adapters/backend/httpclient"
	handler "github.com/vncsmyrnk/pollboard/internal/adapters/handler/http"
	"github.com/vncsmyrnk/pollboard/internal/adapters/repository/memory"
	repo "github.com/vncsmyrnk/pollboard/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
	"github.com/vncsmyrnk/pollboard/internal/core/services"
)

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// fakeBackend serves the poll backend's HTTP surface from memory and tallies
// the votes it receives the way the real backend does.
type fakeBackend struct {
	mu        sync.Mutex
	poll      domain.Poll
	counts    map[int64]int64
	responses []json.RawMessage
	nextID    int64
	custom    map[int64]*domain.CustomPoll
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		poll: domain.Poll{
			ID:           1,
			Title:        "Mombasa governor",
			Category:     "Governor",
			Presidential: "Hassan Joho",
			Region:       "Coast",
			County:       "Mombasa",
			Competitors: []domain.Competitor{
				{ID: 10, Name: "Alice", Party: "Blue"},
				{ID: 20, Name: "Bob"},
				{ID: 30, Name: "Carol", Party: "Green"},
			},
			RegisteredVoters: 10,
		},
		counts: map[int64]int64{},
		// A record left by an older client that no longer decodes.
		responses: []json.RawMessage{json.RawMessage(`{"id": "legacy", "age": "unknown"}`)},
		nextID:    1,
		custom:    map[int64]*domain.CustomPoll{},
	}
}

func (b *fakeBackend) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /polls/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			http.NotFound(w, r)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()

		poll := b.poll
		poll.Results = nil
		for _, c := range poll.Competitors {
			poll.Results = append(poll.Results, domain.BackendCount{ID: c.ID, Name: c.Name, VoteCount: b.counts[c.ID]})
			poll.TotalVotes += b.counts[c.ID]
		}
		json.NewEncoder(w).Encode(poll)
	})
	mux.HandleFunc("GET /opinion_poll/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(b.responses)
	})
	mux.HandleFunc("POST /opinion_poll", func(w http.ResponseWriter, r *http.Request) {
		var sub domain.SurveySubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()

		record, _ := json.Marshal(domain.SurveyResponse{
			ID:          b.nextID,
			PollID:      sub.PollID,
			Name:        sub.Respondent.Name,
			Gender:      sub.Respondent.Gender,
			Age:         sub.Respondent.Age,
			Answers:     sub.Answers,
			SubmittedAt: time.Now().UTC(),
		})
		b.nextID++
		b.responses = append(b.responses, record)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("POST /votes", func(w http.ResponseWriter, r *http.Request) {
		var vote domain.Vote
		if err := json.NewDecoder(r.Body).Decode(&vote); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.counts[vote.CompetitorID]++
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /polls", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		polls := []domain.PollSummary{}
		if c := r.URL.Query().Get("category"); c == "" || c == b.poll.Category {
			polls = append(polls, domain.PollSummary{ID: b.poll.ID, Title: b.poll.Title, Category: b.poll.Category, Region: b.poll.Region})
		}
		json.NewEncoder(w).Encode(polls)
	})
	mux.HandleFunc("POST /polls/custom_poll", func(w http.ResponseWriter, r *http.Request) {
		var input domain.CreateCustomPollInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()

		poll := &domain.CustomPoll{ID: int64(len(b.custom) + 1), Title: input.Title}
		for i, name := range input.Competitors {
			poll.Competitors = append(poll.Competitors, domain.CustomCompetitor{ID: poll.ID*100 + int64(i) + 1, Name: name})
		}
		b.custom[poll.ID] = poll
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(poll)
	})
	mux.HandleFunc("GET /custom-polls/{id}/{view}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		var poll *domain.CustomPoll
		for _, p := range b.custom {
			if fmt.Sprint(p.ID) == r.PathValue("id") {
				poll = p
			}
		}
		switch {
		case poll == nil:
			http.NotFound(w, r)
		case r.PathValue("view") == "competitors":
			json.NewEncoder(w).Encode(poll.Competitors)
		case r.PathValue("view") == "results":
			json.NewEncoder(w).Encode(poll)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("POST /custom-polls/vote", func(w http.ResponseWriter, r *http.Request) {
		var vote domain.CustomVote
		if err := json.NewDecoder(r.Body).Decode(&vote); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()

		for _, p := range b.custom {
			for i := range p.Competitors {
				if p.Competitors[i].ID == vote.CompetitorID {
					p.Competitors[i].VoteCount++
					w.WriteHeader(http.StatusCreated)
					return
				}
			}
		}
		http.Error(w, "unknown competitor", http.StatusBadRequest)
	})
	return mux
}

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Backend     *httptest.Server
	Client      *http.Client
	RefreshSvc  ports.RefreshService
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	backendServer := httptest.NewServer(newFakeBackend().routes())
	backend := httpclient.New(backendServer.URL, httpclient.Options{RateLimit: 100})

	store := memory.NewDashboardStore(time.Minute, 1)
	dashboardSvc := services.NewDashboardService(backend, store)
	refreshSvc := services.NewRefreshService(dashboardSvc, store, time.Minute)
	draftSvc := services.NewDraftService(repo.NewDraftRepository(db), backend)
	ballotSvc := services.NewBallotService(backend, memory.NewSelectionStore(), store)
	pollSvc := services.NewPollService(backend)

	router := handler.NewHandler(
		handler.NewDashboardHandler(dashboardSvc),
		handler.NewDraftHandler(draftSvc),
		handler.NewBallotHandler(ballotSvc),
		handler.NewPollHandler(pollSvc),
		handler.NewCustomPollHandler(services.NewCustomPollService(backend)),
		[]string{"*"},
	)
	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Backend:     backendServer,
		Client:      server.Client(),
		RefreshSvc:  refreshSvc,
		DBContainer: dbContainer,
	}
}

// newVoter returns a client with its own cookie jar, i.e. its own ballot session.
func (app *TestApp) newVoter(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Transport: app.Client.Transport}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.Backend.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}
