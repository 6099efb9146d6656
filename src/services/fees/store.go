package fees

import (
	"context"

	"Backend-Schoolhub/src/models"
)

// LedgerFilter narrows ListLedgerEntries; zero values match everything.
type LedgerFilter struct {
	PersonID  string
	ClassName string
	Window    models.ReportWindow
	Skip      int64
	Limit     int64 // 0 = no limit
}

type (
	LedgerStore interface {
		// AppendLedgerEntries persists every entry or none of them.
		AppendLedgerEntries(ctx context.Context, entries []models.LedgerEntry) error
		// ListLedgerEntries returns the page of matching entries and the total match count.
		ListLedgerEntries(ctx context.Context, filter LedgerFilter) ([]models.LedgerEntry, int64, error)
		// Subscribe pushes a change for every appended entry until ctx is done.
		Subscribe(ctx context.Context) (<-chan models.LedgerChange, error)
	}

	SummaryCache interface {
		SetClassSummaries(ctx context.Context, summaries map[string]models.ClassFeeSummary) error
		// GetClassSummaries returns ok=false on a cache miss.
		GetClassSummaries(ctx context.Context) (summaries map[string]models.ClassFeeSummary, ok bool, err error)
	}

	// RecomputeNotifier asks a worker to rebuild the class summaries.
	RecomputeNotifier interface {
		NotifyRecompute(ctx context.Context, batchID string) error
	}
)
