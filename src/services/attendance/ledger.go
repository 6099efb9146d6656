package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"
)

// DefaultLateCutoff 09:00 ตามเวลาท้องถิ่น
const DefaultLateCutoff = 9 * time.Hour

type ScanOutcomeKind string

const (
	ScanMarked        ScanOutcomeKind = "marked"
	ScanDuplicateExit ScanOutcomeKind = "duplicate_exit"
	ScanAlreadyMarked ScanOutcomeKind = "already_marked"
)

// ScanOutcome ผลของการสแกนหนึ่งครั้ง; DuplicateExit/AlreadyMarked ไม่ใช่ error
type ScanOutcome struct {
	Kind      ScanOutcomeKind         `json:"outcome"`
	Person    models.Person           `json:"person"`
	Contact   string                  `json:"contact,omitempty"`
	Record    models.AttendanceRecord `json:"record"`
	Event     *models.AttendanceEvent `json:"event,omitempty"` // nil when nothing was written
	EntryTime *time.Time              `json:"entryTime,omitempty"`
	MarkedAt  time.Time               `json:"markedAt"`
	Message   string                  `json:"message"`
}

type LedgerConfig struct {
	Locker   Locker
	Cutoff   time.Duration  // offset from midnight; zero means DefaultLateCutoff
	Location *time.Location // nil keeps the location of the supplied times
	Logger   *logrus.Entry
	Now      func() time.Time
}

// Ledger decides attendance status per (person, date) and persists it through a RecordStore.
type Ledger struct {
	records RecordStore
	locker  Locker
	cutoff  time.Duration
	loc     *time.Location
	log     *logrus.Entry
	now     func() time.Time
}

func NewLedger(records RecordStore, cfg LedgerConfig) *Ledger {
	l := &Ledger{
		records: records,
		locker:  cfg.Locker,
		cutoff:  cfg.Cutoff,
		loc:     cfg.Location,
		log:     cfg.Logger,
		now:     cfg.Now,
	}
	if l.cutoff <= 0 {
		l.cutoff = DefaultLateCutoff
	}
	if l.log == nil {
		l.log = logger.Module("attendance")
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l
}

// Now returns the ledger clock in the configured location.
func (l *Ledger) Now() time.Time {
	return l.localize(l.now())
}

func (l *Ledger) localize(t time.Time) time.Time {
	if l.loc != nil {
		return t.In(l.loc)
	}
	return t
}

// CutoffFor คืนเวลาตัดสาย (wall clock) ของวันนั้นใน location ของ ref
func (l *Ledger) CutoffFor(date string, ref time.Time) (time.Time, error) {
	day, err := time.ParseInLocation(models.DateLayout, date, ref.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", models.ErrInvalidInput, date)
	}
	h := int(l.cutoff / time.Hour)
	m := int((l.cutoff % time.Hour) / time.Minute)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, ref.Location()), nil
}

// entryStatus: Late only when strictly after the cutoff instant.
func (l *Ledger) entryStatus(person models.Person, date string, now time.Time) (models.AttendanceStatus, error) {
	if !person.IsTeacher() {
		return models.StatusPresent, nil
	}
	cutoff, err := l.CutoffFor(date, now)
	if err != nil {
		return "", err
	}
	if now.After(cutoff) {
		return models.StatusLate, nil
	}
	return models.StatusPresent, nil
}

func (l *Ledger) lock(ctx context.Context, key string) (func(), error) {
	if l.locker == nil {
		return func() {}, nil
	}
	unlock, err := l.locker.Lock(ctx, key)
	if err != nil {
		return nil, models.NewStorageError("lock", err)
	}
	return unlock, nil
}

// MarkManual creates or updates the single record for (personID, date).
func (l *Ledger) MarkManual(ctx context.Context, personID, date string, status models.AttendanceStatus, actor string) (*models.AttendanceRecord, error) {
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return nil, fmt.Errorf("%w: personId is required", models.ErrInvalidInput)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q", models.ErrInvalidInput, status)
	}
	date, err := models.ParseDateKey(date)
	if err != nil {
		return nil, err
	}

	unlock, err := l.lock(ctx, models.RecordKey(personID, date))
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := l.Now()
	rec, err := l.records.UpsertStatus(ctx, models.AttendanceRecord{
		PersonID:   personID,
		Date:       date,
		Status:     status,
		Source:     models.SourceManual,
		RecordedBy: actor,
		MarkedAt:   now,
		UpdatedAt:  now,
	})
	if err != nil {
		logger.LogError(l.log, "MarkManual", "upsert status", models.RecordKey(personID, date), err)
		return nil, models.NewStorageError("upsert record", err)
	}
	l.logEvent(rec.Event(now), "manual attendance marked")
	return rec, nil
}

// ProcessScan resolves the payload against roster and applies one QR scan for date at now.
func (l *Ledger) ProcessScan(ctx context.Context, payload string, roster []models.Person, date string, now time.Time, actor string) (ScanOutcome, error) {
	date, err := models.ParseDateKey(date)
	if err != nil {
		return ScanOutcome{}, err
	}
	person, err := ResolvePerson(payload, roster)
	if err != nil {
		l.log.WithField("payload", payload).Warn("scan payload did not resolve")
		return ScanOutcome{}, err
	}
	now = l.localize(now)

	unlock, err := l.lock(ctx, models.RecordKey(person.ID, date))
	if err != nil {
		return ScanOutcome{}, err
	}
	defer unlock()

	// ต้องอ่านสดทุกครั้งก่อนตัดสินใจ
	existing, err := l.records.GetRecord(ctx, person.ID, date)
	if err != nil {
		return ScanOutcome{}, models.NewStorageError("get record", err)
	}
	if existing == nil {
		outcome, created, err := l.firstScan(ctx, person, date, now, actor)
		if err != nil || created {
			return outcome, err
		}
		// lost the insert race; fall through with the winner's record
		existing = &outcome.Record
	}
	return l.repeatScan(ctx, person, *existing, now)
}

func (l *Ledger) firstScan(ctx context.Context, person models.Person, date string, now time.Time, actor string) (ScanOutcome, bool, error) {
	status, err := l.entryStatus(person, date, now)
	if err != nil {
		return ScanOutcome{}, false, err
	}
	entry := now
	rec := models.AttendanceRecord{
		PersonID:   person.ID,
		Kind:       person.Kind,
		Date:       date,
		Status:     status,
		Source:     models.SourceQRScan,
		EntryTime:  &entry,
		RecordedBy: actor,
		MarkedAt:   now,
		UpdatedAt:  now,
	}

	created, err := l.records.InsertRecord(ctx, rec)
	if errors.Is(err, models.ErrRecordExists) {
		winner, gerr := l.records.GetRecord(ctx, person.ID, date)
		if gerr != nil {
			return ScanOutcome{}, false, models.NewStorageError("get record", gerr)
		}
		if winner == nil {
			return ScanOutcome{}, false, models.NewStorageError("get record", fmt.Errorf("record %s conflicted but is missing", rec.Key()))
		}
		return ScanOutcome{Record: *winner}, false, nil
	}
	if err != nil {
		logger.LogError(l.log, "ProcessScan", "insert record", rec.Key(), err)
		return ScanOutcome{}, false, models.NewStorageError("insert record", err)
	}

	event := created.Event(now)
	l.logEvent(event, "scan marked")
	return ScanOutcome{
		Kind:      ScanMarked,
		Person:    person,
		Contact:   person.ContactPhone(),
		Record:    *created,
		Event:     &event,
		EntryTime: created.EntryTime,
		MarkedAt:  now,
		Message:   fmt.Sprintf("%s marked %s", person.DisplayName(), status),
	}, true, nil
}

func (l *Ledger) repeatScan(ctx context.Context, person models.Person, rec models.AttendanceRecord, now time.Time) (ScanOutcome, error) {
	if person.IsTeacher() && !rec.HasExit() {
		written, err := l.records.SetExitTime(ctx, person.ID, rec.Date, now)
		if err != nil {
			logger.LogError(l.log, "ProcessScan", "set exit time", rec.Key(), err)
			return ScanOutcome{}, models.NewStorageError("set exit time", err)
		}
		if written {
			exit := now
			rec.ExitTime = &exit
			rec.UpdatedAt = now
			event := rec.Event(now)
			l.logEvent(event, "exit recorded")
			return ScanOutcome{
				Kind:      ScanDuplicateExit,
				Person:    person,
				Contact:   person.ContactPhone(),
				Record:    rec,
				Event:     &event,
				EntryTime: rec.EntryTime,
				MarkedAt:  markTime(rec),
				Message:   fmt.Sprintf("%s exit recorded", person.DisplayName()),
			}, nil
		}
		// exit was set concurrently; report what is stored now
		fresh, err := l.records.GetRecord(ctx, person.ID, rec.Date)
		if err != nil {
			return ScanOutcome{}, models.NewStorageError("get record", err)
		}
		if fresh != nil {
			rec = *fresh
		}
	}

	return ScanOutcome{
		Kind:      ScanAlreadyMarked,
		Person:    person,
		Contact:   person.ContactPhone(),
		Record:    rec,
		EntryTime: rec.EntryTime,
		MarkedAt:  markTime(rec),
		Message:   fmt.Sprintf("%s already marked at %s", person.DisplayName(), markTime(rec).Format("15:04")),
	}, nil
}

func (l *Ledger) logEvent(ev models.AttendanceEvent, msg string) {
	fields := logrus.Fields{
		"personId": ev.PersonID,
		"date":     ev.Date,
		"status":   ev.Status,
		"source":   ev.Source,
		"by":       ev.RecordedBy,
	}
	if ev.ExitTime != nil {
		fields["exitTime"] = ev.ExitTime.Format(time.RFC3339)
	}
	l.log.WithFields(fields).Info(msg)
}

func markTime(rec models.AttendanceRecord) time.Time {
	if rec.EntryTime != nil && !rec.EntryTime.IsZero() {
		return *rec.EntryTime
	}
	return rec.MarkedAt
}

// DailySummary counts statuses for the active roster on date from a fresh read.
func (l *Ledger) DailySummary(ctx context.Context, roster []models.Person, date string) (models.DailyAttendanceSummary, error) {
	date, err := models.ParseDateKey(date)
	if err != nil {
		return models.DailyAttendanceSummary{}, err
	}
	records, err := l.records.ListRecords(ctx, date)
	if err != nil {
		return models.DailyAttendanceSummary{}, models.NewStorageError("list records", err)
	}

	byPerson := make(map[string]models.AttendanceStatus, len(records))
	for _, r := range records {
		byPerson[r.PersonID] = r.Status
	}

	summary := models.DailyAttendanceSummary{Date: date}
	for _, p := range roster {
		if !p.Active {
			continue
		}
		summary.Registered++
		status, ok := byPerson[p.ID]
		if !ok {
			summary.Unmarked++
			continue
		}
		switch status {
		case models.StatusPresent:
			summary.Present++
		case models.StatusLate:
			summary.Late++
		case models.StatusAbsent:
			summary.Absent++
		case models.StatusLeave:
			summary.Leave++
		default:
			summary.Unmarked++
		}
	}
	return summary, nil
}
