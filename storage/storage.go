package storage

import (
	"sync"

	"github.com/kv-base-hack/trending-api/common"
	"go.uber.org/zap"
)

// View is what the HTTP layer reads: the last published snapshot, whether
// the first cycle is still in flight, and the last cycle-level error.
type View struct {
	Snapshot common.Snapshot
	Loading  bool
	Err      error
}

// Storage holds the latest complete snapshot of one fetch cycle. Only the
// trending worker writes, and only by whole-snapshot replacement; readers
// never observe a partially merged cycle.
type Storage struct {
	log   *zap.SugaredLogger
	mutex sync.RWMutex

	snapshot    common.Snapshot
	hasSnapshot bool
	lastErr     error
}

func NewStorage(log *zap.SugaredLogger) *Storage {
	return &Storage{
		log: log,
	}
}

// SetSnapshot publishes the result of a completed cycle and clears any
// previous cycle failure.
func (s *Storage) SetSnapshot(snapshot common.Snapshot) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.snapshot = snapshot
	s.hasSnapshot = true
	s.lastErr = nil
	s.log.Debugw("set snapshot", "assets", len(snapshot.Assets), "updated_at", snapshot.UpdatedAt)
}

// SetCycleFailure records a trending-list fetch failure. The cycle produced
// no assets, so any previous snapshot is dropped.
func (s *Storage) SetCycleFailure(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.snapshot = common.Snapshot{}
	s.hasSnapshot = false
	s.lastErr = err
}

// GetView returns the current view. Loading is true until the first cycle
// settles, successfully or not.
func (s *Storage) GetView() View {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return View{
		Snapshot: s.snapshot,
		Loading:  !s.hasSnapshot && s.lastErr == nil,
		Err:      s.lastErr,
	}
}
