package fees

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/services/attendance"
)

// CollectResult คือ batch ที่บันทึกลง ledger แล้ว
type CollectResult struct {
	BatchID   string           `json:"batchId"`
	Person    models.Person    `json:"person"`
	Proration models.Proration `json:"proration"`
}

// SummaryUpdater recomputes the cached class summaries in-process.
type SummaryUpdater interface {
	Refresh(ctx context.Context) (map[string]models.ClassFeeSummary, error)
}

type CollectorConfig struct {
	Notifier RecomputeNotifier // optional
	// Summaries is refreshed inline when Notifier fails, so the cache does not stay stale.
	Summaries SummaryUpdater
	Logger    *logrus.Entry
	Now       func() time.Time
}

// Collector records fee payments: validate, prorate, append the whole batch, then ask for a
// summary recompute.
type Collector struct {
	ledger   LedgerStore
	roster   attendance.RosterStore
	notifier RecomputeNotifier
	summary  SummaryUpdater
	validate *validator.Validate
	log      *logrus.Entry
	now      func() time.Time
}

func NewCollector(ledger LedgerStore, roster attendance.RosterStore, cfg CollectorConfig) *Collector {
	c := &Collector{
		ledger:   ledger,
		roster:   roster,
		notifier: cfg.Notifier,
		summary:  cfg.Summaries,
		validate: validator.New(),
		log:      cfg.Logger,
		now:      cfg.Now,
	}
	if c.log == nil {
		c.log = logger.Module("fees")
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Validate checks struct tags and money bounds without touching storage.
func (c *Collector) Validate(in models.PaymentInstruction) error {
	if err := c.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", models.ErrInvalidInput, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	return checkInstruction(in)
}

// Preview computes the proration without persisting anything.
func (c *Collector) Preview(in models.PaymentInstruction) (models.Proration, error) {
	if err := c.Validate(in); err != nil {
		return models.Proration{}, err
	}
	return Compute(in)
}

// Collect appends all entries of one instruction atomically. On any storage failure nothing
// is persisted and a *models.StorageError is returned.
func (c *Collector) Collect(ctx context.Context, in models.PaymentInstruction) (*CollectResult, error) {
	if err := c.Validate(in); err != nil {
		return nil, err
	}

	person, err := c.roster.GetPerson(ctx, in.PersonID)
	if err != nil {
		return nil, models.NewStorageError("get person", err)
	}
	if person == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrPersonNotFound, in.PersonID)
	}

	proration, err := Compute(in)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	now := c.now()
	for i := range proration.Entries {
		proration.Entries[i].ID = uuid.NewString()
		proration.Entries[i].BatchID = batchID
		proration.Entries[i].ClassName = person.ClassName
		proration.Entries[i].CreatedAt = now
	}

	if err := c.ledger.AppendLedgerEntries(ctx, proration.Entries); err != nil {
		logger.LogError(c.log, "Collect", "append ledger entries", logrus.Fields{
			"personId": in.PersonID, "batchId": batchID, "months": in.NumberOfMonths,
		}, err)
		return nil, models.NewStorageError("append ledger entries", err)
	}

	c.log.WithFields(logrus.Fields{
		"personId": in.PersonID,
		"batchId":  batchID,
		"months":   proration.MonthIndexes(),
		"donation": proration.Donation.StringFixed(MoneyPlaces),
	}).Info("fee collected")

	c.requestRecompute(ctx, batchID)

	return &CollectResult{BatchID: batchID, Person: *person, Proration: proration}, nil
}

// requestRecompute is best effort: the ledger is already committed, so failures are only logged.
func (c *Collector) requestRecompute(ctx context.Context, batchID string) {
	if c.notifier == nil {
		return
	}
	err := c.notifier.NotifyRecompute(ctx, batchID)
	if err == nil {
		return
	}
	log := c.log.WithError(err).WithField("batchId", batchID)
	if c.summary == nil {
		log.Warn("summary recompute not enqueued, cache stays stale until its TTL")
		return
	}
	// ไม่มีใครรับงาน recompute รอบนี้ คำนวณเองเลย
	log.Warn("summary recompute not enqueued, refreshing inline")
	if _, err := c.summary.Refresh(ctx); err != nil {
		logger.LogError(c.log, "Collect", "inline summary refresh", batchID, err)
	}
}
