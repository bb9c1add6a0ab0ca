package catalog

import (
	"sync"
	"time"

	"github.com/xelth-com/scanordergo/internal/models"
)

// Rebuild cost is O(total products), so bursts of batch mutations (a
// multi-file import) are coalesced instead of rebuilding per change.
const rebuildDebounce = 100 * time.Millisecond

// Store owns the batch history and its derived index behind a single
// mutex. All mutation goes through here; handlers never touch the
// batch slice directly.
type Store struct {
	mu      sync.Mutex
	batches []models.ImportBatch
	index   *Index
	dirty   bool
	pending *time.Timer
}

// NewStore returns a store with an empty history.
func NewStore() *Store {
	return &Store{index: NewIndex()}
}

// SetBatches replaces the whole history, e.g. when loading from the
// persistence layer at startup.
func (s *Store) SetBatches(batches []models.ImportBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append([]models.ImportBatch(nil), batches...)
	s.markDirtyLocked()
}

// AddBatch appends one imported batch to the history.
func (s *Store) AddBatch(batch models.ImportBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, batch)
	s.markDirtyLocked()
}

// RemoveBatch deletes a batch by id, reporting whether it existed.
func (s *Store) RemoveBatch(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.batches {
		if b.ID == id {
			s.batches = append(s.batches[:i], s.batches[i+1:]...)
			s.markDirtyLocked()
			return true
		}
	}
	return false
}

// Batches returns a snapshot of the history in import order.
func (s *Store) Batches() []models.ImportBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ImportBatch(nil), s.batches...)
}

// Batch returns one batch by id.
func (s *Store) Batch(id string) (models.ImportBatch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.batches {
		if b.ID == id {
			return b, true
		}
	}
	return models.ImportBatch{}, false
}

// Index returns the current index, rebuilding first if batch history
// changed since the last build. Resolution therefore always runs
// against the latest history even inside the debounce window.
func (s *Store) Index() *Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		s.rebuildLocked()
	}
	return s.index
}

// Resolve maps a code against the latest index.
func (s *Store) Resolve(code string) models.Product {
	return s.Index().Resolve(code)
}

// Reindex forces a synchronous rebuild.
func (s *Store) Reindex() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuildLocked()
}

func (s *Store) markDirtyLocked() {
	s.dirty = true
	if s.pending != nil {
		s.pending.Stop()
	}
	s.pending = time.AfterFunc(rebuildDebounce, s.Reindex)
}

func (s *Store) rebuildLocked() {
	s.index = BuildIndex(s.batches)
	s.dirty = false
}
