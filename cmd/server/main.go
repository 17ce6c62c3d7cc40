package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/vncsmyrnk/pollboard/internal/adapters/backend/httpclient"
	"github.com/vncsmyrnk/pollboard/internal/adapters/handler/http"
	"github.com/vncsmyrnk/pollboard/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollboard/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/pollboard/internal/config"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
	"github.com/vncsmyrnk/pollboard/internal/core/services"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	backend := httpclient.New(cfg.BackendURL, httpclient.Options{
		RateLimit: cfg.BackendRateLimit,
		Timeout:   cfg.BackendTimeout,
	})

	var draftRepo ports.DraftRepository
	if cfg.Postgres.Enabled() {
		db, err := sql.Open("postgres", cfg.Postgres.ConnString())
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			log.Fatal(err)
		}
		draftRepo = postgres.NewDraftRepository(db)
		log.Println("Survey drafts are stored in postgres")
	} else {
		draftRepo = memory.NewDraftRepository()
		log.Println("POSTGRES_HOST not set, survey drafts are kept in memory")
	}

	// Initialize Stores
	dashboardStore := memory.NewDashboardStore(cfg.PollIdleTTL, cfg.WatchPolls...)
	selectionStore := memory.NewSelectionStore()

	// Initialize Services
	dashboardService := services.NewDashboardService(backend, dashboardStore)
	refreshService := services.NewRefreshService(dashboardService, dashboardStore, cfg.RefreshInterval)
	draftService := services.NewDraftService(draftRepo, backend)
	ballotService := services.NewBallotService(backend, selectionStore, dashboardStore)
	pollService := services.NewPollService(backend)
	customPollService := services.NewCustomPollService(backend)

	handler := http.NewHandler(
		http.NewDashboardHandler(dashboardService),
		http.NewDraftHandler(draftService),
		http.NewBallotHandler(ballotService),
		http.NewPollHandler(pollService),
		http.NewCustomPollHandler(customPollService),
		cfg.AllowedOrigins,
	)
	server := &stdhttp.Server{Addr: cfg.ListenAddr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go refreshService.Run(ctx)

	go func() {
		log.Printf("Listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
