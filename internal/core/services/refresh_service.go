package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

const DefaultRefreshInterval = 5 * time.Second

type refreshService struct {
	dashboards ports.DashboardService
	store      ports.DashboardStore
	interval   time.Duration
}

func NewRefreshService(dashboards ports.DashboardService, store ports.DashboardStore, interval time.Duration) ports.RefreshService {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &refreshService{
		dashboards: dashboards,
		store:      store,
		interval:   interval,
	}
}

// RefreshAll recomputes every tracked poll concurrently. A failing poll keeps
// its previous results; all failures are joined into the returned error.
func (s *refreshService) RefreshAll(ctx context.Context) error {
	pollIDs := s.store.PollIDs()

	var wg sync.WaitGroup
	errChan := make(chan error, len(pollIDs))

	for _, id := range pollIDs {
		wg.Add(1)
		go func(pollID int64) {
			defer wg.Done()
			if err := s.dashboards.RefreshPoll(ctx, pollID); err != nil {
				errChan <- fmt.Errorf("failed to refresh poll %d: %w", pollID, err)
			}
		}(id)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Run refreshes once immediately and then on every tick until ctx is done.
func (s *refreshService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.RefreshAll(ctx); err != nil && ctx.Err() == nil {
			log.Printf("refresh: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
