package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/services/fees"
)

const subscriberBuffer = 64

// LedgerStore is an append-only entry list with channel fan-out to subscribers.
type LedgerStore struct {
	mu      sync.RWMutex
	entries []models.LedgerEntry
	ids     map[string]struct{}
	subs    map[chan models.LedgerChange]struct{}

	// FailAppend, when set, makes AppendLedgerEntries fail without writing.
	FailAppend error
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		ids:  make(map[string]struct{}),
		subs: make(map[chan models.LedgerChange]struct{}),
	}
}

func (s *LedgerStore) AppendLedgerEntries(_ context.Context, entries []models.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAppend != nil {
		return s.FailAppend
	}
	// ตรวจทั้ง batch ก่อนเขียน เพื่อไม่ให้ค้างครึ่งทาง
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		if _, dup := s.ids[e.ID]; dup {
			return fmt.Errorf("ledger entry %s already exists", e.ID)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("ledger entry %s repeated in batch", e.ID)
		}
		seen[e.ID] = struct{}{}
	}

	now := time.Now()
	for _, e := range entries {
		s.entries = append(s.entries, e)
		if e.ID != "" {
			s.ids[e.ID] = struct{}{}
		}
		s.publish(models.LedgerChange{Type: models.LedgerInserted, EntryID: e.ID, PersonID: e.PersonID, At: now})
	}
	return nil
}

func (s *LedgerStore) ListLedgerEntries(_ context.Context, f fees.LedgerFilter) ([]models.LedgerEntry, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.LedgerEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if f.PersonID != "" && e.PersonID != f.PersonID {
			continue
		}
		if f.ClassName != "" && e.ClassName != f.ClassName {
			continue
		}
		if !f.Window.Contains(e.Date) {
			continue
		}
		matched = append(matched, e)
	}

	total := int64(len(matched))
	start := f.Skip
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	return matched[start:end], total, nil
}

// Subscribe delivers changes until ctx is done. A slow subscriber drops changes rather than
// blocking writers; each change only means "recompute".
func (s *LedgerStore) Subscribe(ctx context.Context) (<-chan models.LedgerChange, error) {
	ch := make(chan models.LedgerChange, subscriberBuffer)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

// publish must be called with s.mu held.
func (s *LedgerStore) publish(change models.LedgerChange) {
	for ch := range s.subs {
		select {
		case ch <- change:
		default:
		}
	}
}
