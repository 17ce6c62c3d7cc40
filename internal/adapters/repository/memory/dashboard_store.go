// Package memory holds process-local stores. Values are copied in and out so
// callers never share mutable state with the store.
package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

const DefaultIdleTTL = 10 * time.Minute

// dashboardStore refreshes two kinds of polls: pinned ones, passed to the
// constructor or to Track, and polls read within the idle TTL. A poll that
// has not been read for longer than that is dropped along with its records,
// so the next read loads it on demand again.
type dashboardStore struct {
	mu         sync.Mutex
	dashboards map[int64]domain.PollDashboard
	analytics  map[int64]domain.OpinionAnalytics
	pinned     []int64
	lastRead   map[int64]time.Time
	idleTTL    time.Duration
	now        func() time.Time
}

func NewDashboardStore(idleTTL time.Duration, pinned ...int64) ports.DashboardStore {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	s := &dashboardStore{
		dashboards: make(map[int64]domain.PollDashboard),
		analytics:  make(map[int64]domain.OpinionAnalytics),
		lastRead:   make(map[int64]time.Time),
		idleTTL:    idleTTL,
		now:        time.Now,
	}
	for _, id := range pinned {
		s.Track(id)
	}
	return s
}

func (s *dashboardStore) PutDashboard(d domain.PollDashboard) {
	d.Result.Results = slices.Clone(d.Result.Results)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboards[d.PollID] = d
}

func (s *dashboardStore) Dashboard(pollID int64) (domain.PollDashboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dashboards[pollID]
	if ok {
		s.lastRead[pollID] = s.now()
	}
	d.Result.Results = slices.Clone(d.Result.Results)
	return d, ok
}

func (s *dashboardStore) PutAnalytics(a domain.OpinionAnalytics) {
	a = cloneAnalytics(a)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.analytics[a.PollID] = a
}

func (s *dashboardStore) Analytics(pollID int64) (domain.OpinionAnalytics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.analytics[pollID]
	if ok {
		s.lastRead[pollID] = s.now()
	}
	return cloneAnalytics(a), ok
}

func (s *dashboardStore) Track(pollID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.pinned, pollID) {
		s.pinned = append(s.pinned, pollID)
	}
}

// PollIDs returns the pinned polls followed by the recently read ones, in
// ascending id order. Idle polls are evicted on the way.
func (s *dashboardStore) PollIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := slices.Clone(s.pinned)
	cutoff := s.now().Add(-s.idleTTL)

	var recent []int64
	for id, readAt := range s.lastRead {
		if slices.Contains(s.pinned, id) {
			continue
		}
		if readAt.Before(cutoff) {
			delete(s.lastRead, id)
			delete(s.dashboards, id)
			delete(s.analytics, id)
			continue
		}
		recent = append(recent, id)
	}
	slices.Sort(recent)
	return append(ids, recent...)
}

func cloneAnalytics(a domain.OpinionAnalytics) domain.OpinionAnalytics {
	a.AgeDistribution = slices.Clone(a.AgeDistribution)
	a.CompetitorVotes = slices.Clone(a.CompetitorVotes)
	a.SentimentCounts = slices.Clone(a.SentimentCounts)
	return a
}
