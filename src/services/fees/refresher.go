package fees

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/services/attendance"
)

// SummaryRefresher rebuilds class summaries from the full ledger snapshot on every change.
type SummaryRefresher struct {
	ledger LedgerStore
	roster attendance.RosterStore
	cache  SummaryCache
	log    *logrus.Entry

	retryDelay time.Duration
}

const (
	defaultResubscribeDelay = time.Second
	maxResubscribeDelay     = 30 * time.Second
)

func NewSummaryRefresher(ledger LedgerStore, roster attendance.RosterStore, cache SummaryCache, log *logrus.Entry) *SummaryRefresher {
	if log == nil {
		log = logger.Module("fees.refresher")
	}
	return &SummaryRefresher{ledger: ledger, roster: roster, cache: cache, log: log, retryDelay: defaultResubscribeDelay}
}

// SetResubscribeDelay sets the first wait before Run re-opens a closed or failed change feed.
// The wait doubles up to 30s while the feed keeps failing.
func (r *SummaryRefresher) SetResubscribeDelay(d time.Duration) {
	if d > 0 {
		r.retryDelay = d
	}
}

// Compute recomputes summaries for window without touching the cache.
func (r *SummaryRefresher) Compute(ctx context.Context, window models.ReportWindow) (map[string]models.ClassFeeSummary, error) {
	entries, _, err := r.ledger.ListLedgerEntries(ctx, LedgerFilter{Window: window})
	if err != nil {
		return nil, models.NewStorageError("list ledger entries", err)
	}
	roster, err := r.roster.GetRoster(ctx, models.RosterScope{Kind: models.KindStudent})
	if err != nil {
		return nil, models.NewStorageError("get roster", err)
	}
	return Aggregate(entries, roster, ScheduleFromRoster(roster), window), nil
}

// Refresh recomputes the all-time summaries and stores them in the cache.
func (r *SummaryRefresher) Refresh(ctx context.Context) (map[string]models.ClassFeeSummary, error) {
	summaries, err := r.Compute(ctx, models.ReportWindow{})
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		if err := r.cache.SetClassSummaries(ctx, summaries); err != nil {
			return nil, models.NewStorageError("set class summaries", err)
		}
	}
	r.log.WithField("classes", len(summaries)).Debug("class summaries refreshed")
	return summaries, nil
}

// Summaries serves windowed requests by recomputing; the all-time view comes from the cache
// when present.
func (r *SummaryRefresher) Summaries(ctx context.Context, window models.ReportWindow) (map[string]models.ClassFeeSummary, error) {
	if window.From != "" || window.To != "" || r.cache == nil {
		return r.Compute(ctx, window)
	}
	cached, ok, err := r.cache.GetClassSummaries(ctx)
	if err != nil {
		r.log.WithError(err).Warn("summary cache read failed, recomputing")
	} else if ok {
		return cached, nil
	}
	return r.Refresh(ctx)
}

// Run refreshes after every ledger change until ctx is done. When the change feed closes or
// cannot be opened, Run re-subscribes with backoff and refreshes again, since changes may
// have been missed in between.
func (r *SummaryRefresher) Run(ctx context.Context) error {
	delay := r.retryDelay
	for {
		err := r.follow(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			logger.LogError(r.log, "Run", "subscribe ledger", nil, err)
		} else {
			delay = r.retryDelay
			r.log.Warn("ledger change feed closed, re-subscribing")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
		delay *= 2
		if delay > maxResubscribeDelay {
			delay = maxResubscribeDelay
		}
	}
}

// follow subscribes, refreshes once, then refreshes per change until the feed closes.
func (r *SummaryRefresher) follow(ctx context.Context) error {
	changes, err := r.ledger.Subscribe(ctx)
	if err != nil {
		return models.NewStorageError("subscribe ledger", err)
	}
	if _, err := r.Refresh(ctx); err != nil {
		logger.LogError(r.log, "Run", "refresh after subscribe", nil, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ch, ok := <-changes:
			if !ok {
				return nil
			}
			// รวบ notification ที่ค้างอยู่ให้เหลือ refresh ครั้งเดียว
			if !drain(changes) {
				return nil
			}
			if _, err := r.Refresh(ctx); err != nil {
				logger.LogError(r.log, "Run", "refresh after change", ch, err)
			}
		}
	}
}

// drain empties pending changes; false means the feed closed.
func drain(changes <-chan models.LedgerChange) bool {
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return false
			}
		default:
			return true
		}
	}
}
