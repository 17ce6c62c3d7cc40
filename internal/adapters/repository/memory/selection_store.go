package memory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pollboard/internal/core/domain"
	"github.com/vncsmyrnk/pollboard/internal/core/ports"
)

type selectionKey struct {
	session uuid.UUID
	pollID  int64
}

type selectionStore struct {
	mu         sync.RWMutex
	selections map[selectionKey]domain.Selection
}

func NewSelectionStore() ports.SelectionStore {
	return &selectionStore{
		selections: make(map[selectionKey]domain.Selection),
	}
}

func (s *selectionStore) Put(sel domain.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[selectionKey{sel.Session, sel.PollID}] = sel
}

func (s *selectionStore) Get(session uuid.UUID, pollID int64) (domain.Selection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sel, ok := s.selections[selectionKey{session, pollID}]
	return sel, ok
}

func (s *selectionStore) Delete(session uuid.UUID, pollID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selections, selectionKey{session, pollID})
}
