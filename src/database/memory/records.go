package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"Backend-Schoolhub/src/models"
)

// RecordStore enforces one record per (personId, date) under a single mutex.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]*models.AttendanceRecord
}

func NewRecordStore() *RecordStore {
	return &RecordStore{records: make(map[string]*models.AttendanceRecord)}
}

func (s *RecordStore) GetRecord(_ context.Context, personID, date string) (*models.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[models.RecordKey(personID, date)]
	if !ok {
		return nil, nil
	}
	return cloneRecord(rec), nil
}

func (s *RecordStore) InsertRecord(_ context.Context, rec models.AttendanceRecord) (*models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rec.Key()
	if _, ok := s.records[key]; ok {
		return nil, models.ErrRecordExists
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	s.records[key] = cloneRecord(&rec)
	return cloneRecord(&rec), nil
}

func (s *RecordStore) UpsertStatus(_ context.Context, rec models.AttendanceRecord) (*models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rec.Key()
	if existing, ok := s.records[key]; ok {
		existing.Status = rec.Status
		existing.RecordedBy = rec.RecordedBy
		existing.UpdatedAt = rec.UpdatedAt
		return cloneRecord(existing), nil
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	s.records[key] = cloneRecord(&rec)
	return cloneRecord(&rec), nil
}

func (s *RecordStore) SetExitTime(_ context.Context, personID, date string, exit time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[models.RecordKey(personID, date)]
	if !ok || rec.HasExit() {
		return false, nil
	}
	rec.ExitTime = &exit
	rec.UpdatedAt = exit
	return true, nil
}

func (s *RecordStore) ListRecords(_ context.Context, date string) ([]models.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.AttendanceRecord, 0)
	for _, rec := range s.records {
		if rec.Date == date {
			out = append(out, *cloneRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PersonID < out[j].PersonID })
	return out, nil
}

// Len is the total number of stored records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func cloneRecord(rec *models.AttendanceRecord) *models.AttendanceRecord {
	c := *rec
	if rec.EntryTime != nil {
		t := *rec.EntryTime
		c.EntryTime = &t
	}
	if rec.ExitTime != nil {
		t := *rec.ExitTime
		c.ExitTime = &t
	}
	return &c
}
