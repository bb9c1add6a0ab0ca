package catalog

import (
	"testing"
	"time"

	"github.com/xelth-com/scanordergo/internal/models"
)

func TestStoreResolveSeesFreshImportImmediately(t *testing.T) {
	s := NewStore()
	s.AddBatch(batchOf("a", product("CODE1", "8001234567890", 19.90)))

	// No sleep: resolution inside the debounce window must still run
	// against the latest history, never a stale index.
	got := s.Resolve("8001234567890")
	if got.Code != "CODE1" {
		t.Errorf("resolved %q, want CODE1", got.Code)
	}
}

func TestStoreDebouncedRebuild(t *testing.T) {
	s := NewStore()
	s.AddBatch(batchOf("a", product("CODE1", "8001234567890", 19.90)))

	time.Sleep(3 * rebuildDebounce)

	// The background rebuild already ran; Index must not need a dirty
	// rebuild to serve the batch.
	if s.Index().Len() != 2 {
		t.Errorf("index keys = %d, want 2", s.Index().Len())
	}
}

func TestStoreRemoveBatch(t *testing.T) {
	s := NewStore()
	s.AddBatch(batchOf("a", product("CODE1", "8001234567890", 19.90)))
	s.AddBatch(batchOf("b", product("CODE2", "8009999999999", 5)))

	if !s.RemoveBatch("a") {
		t.Fatal("expected RemoveBatch to report true")
	}
	if s.RemoveBatch("a") {
		t.Error("removing twice must report false")
	}

	if _, ok := s.Index().Get("8001234567890"); ok {
		t.Error("deleted batch still resolvable")
	}
	if _, ok := s.Index().Get("8009999999999"); !ok {
		t.Error("surviving batch lost")
	}

	if len(s.Batches()) != 1 {
		t.Errorf("batches = %d, want 1", len(s.Batches()))
	}
}

func TestStoreSetBatchesReplacesHistory(t *testing.T) {
	s := NewStore()
	s.AddBatch(batchOf("a", product("CODE1", "8001234567890", 19.90)))

	s.SetBatches([]models.ImportBatch{
		batchOf("b", product("CODE2", "8009999999999", 5)),
	})

	if _, ok := s.Index().Get("8001234567890"); ok {
		t.Error("old history still resolvable after replace")
	}
	if _, ok := s.Index().Get("8009999999999"); !ok {
		t.Error("new history not resolvable")
	}
}

func TestStoreBatchLookup(t *testing.T) {
	s := NewStore()
	s.AddBatch(batchOf("a", product("CODE1", "8001234567890", 19.90)))

	if _, ok := s.Batch("a"); !ok {
		t.Error("expected batch a to exist")
	}
	if _, ok := s.Batch("zz"); ok {
		t.Error("expected batch zz to be absent")
	}
}
