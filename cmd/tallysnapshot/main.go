// Command tallysnapshot computes results and survey analytics for the polls
// given with -watch (or WATCH_POLLS) once and prints them as JSON.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/vncsmyrnk/pollboard/internal/adapters/backend/httpclient"
	"github.com/vncsmyrnk/pollboard/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/pollboard/internal/config"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/services"
)

type snapshot struct {
	Dashboard domain.PollDashboard    `json:"dashboard"`
	Analytics domain.OpinionAnalytics `json:"analytics"`
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if len(cfg.WatchPolls) == 0 {
		log.Fatal("at least one poll id is required, use -watch or WATCH_POLLS")
	}

	backend := httpclient.New(cfg.BackendURL, httpclient.Options{
		RateLimit: cfg.BackendRateLimit,
		Timeout:   cfg.BackendTimeout,
	})
	store := memory.NewDashboardStore(cfg.PollIdleTTL, cfg.WatchPolls...)
	dashboards := services.NewDashboardService(backend, store)
	refresher := services.NewRefreshService(dashboards, store, cfg.RefreshInterval)

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Printf("Computing results of %d polls...", len(cfg.WatchPolls))
	if err := refresher.RefreshAll(ctx); err != nil {
		log.Printf("Some polls could not be refreshed: %v", err)
	}

	var out []snapshot
	for _, id := range store.PollIDs() {
		d, ok := store.Dashboard(id)
		if !ok {
			continue
		}
		a, _ := store.Analytics(id)
		out = append(out, snapshot{Dashboard: d, Analytics: a})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}
