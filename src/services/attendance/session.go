package attendance

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"Backend-Schoolhub/src/models"
)

type SessionState string

const (
	SessionNotStarted SessionState = "not_started"
	SessionRunning    SessionState = "running"
	SessionComplete   SessionState = "complete"
)

// ScanSession เดินตาม roster ทีละคน (expected next) แยกจากชุดคนที่สแกนแล้วจริง
type ScanSession struct {
	mu        sync.Mutex
	id        string
	roster    []models.Person
	cursor    int
	scanned   map[string]struct{}
	state     SessionState
	startedAt time.Time
}

// SessionSnapshot is the persisted form of a ScanSession.
type SessionSnapshot struct {
	ID        string          `json:"id"`
	Roster    []models.Person `json:"roster"`
	Cursor    int             `json:"cursor"`
	Scanned   []string        `json:"scanned"`
	State     SessionState    `json:"state"`
	StartedAt time.Time       `json:"startedAt"`
}

// SessionProgress ใช้แสดงผลหน้าสแกน
type SessionProgress struct {
	ID      string         `json:"id"`
	State   SessionState   `json:"state"`
	Total   int            `json:"total"`
	Scanned int            `json:"scanned"`
	Cursor  int            `json:"cursor"`
	Next    *models.Person `json:"next,omitempty"`
}

// StartSession keeps the roster in the order it was given.
func StartSession(roster []models.Person) (*ScanSession, error) {
	if len(roster) == 0 {
		return nil, models.ErrEmptyRoster
	}
	r := make([]models.Person, len(roster))
	copy(r, roster)
	return &ScanSession{
		id:        uuid.NewString(),
		roster:    r,
		scanned:   make(map[string]struct{}, len(r)),
		state:     SessionRunning,
		startedAt: time.Now(),
	}, nil
}

func (s *ScanSession) ID() string { return s.id }

// OnConfirmedScan records personID as scanned. The cursor only moves when personID is the
// expected person, then skips anyone already scanned out of order.
// IDs outside the roster and scans after completion are ignored.
func (s *ScanSession) OnConfirmedScan(personID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionRunning || !s.inRoster(personID) {
		return
	}
	s.scanned[personID] = struct{}{}

	if s.roster[s.cursor].ID == personID {
		s.cursor++
		for s.cursor < len(s.roster) {
			if _, ok := s.scanned[s.roster[s.cursor].ID]; !ok {
				break
			}
			s.cursor++
		}
	}
	if s.allScanned() {
		s.cursor = len(s.roster)
		s.state = SessionComplete
	}
}

// CurrentTarget returns the person expected next; false once the session is complete.
func (s *ScanSession) CurrentTarget() (models.Person, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionComplete || s.cursor >= len(s.roster) {
		return models.Person{}, false
	}
	return s.roster[s.cursor], true
}

func (s *ScanSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ScanSession) IsScanned(personID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.scanned[personID]
	return ok
}

// Roster returns a copy of the session roster.
func (s *ScanSession) Roster() []models.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := make([]models.Person, len(s.roster))
	copy(r, s.roster)
	return r
}

func (s *ScanSession) Progress() SessionProgress {
	p := SessionProgress{}
	if next, ok := s.CurrentTarget(); ok {
		p.Next = &next
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id
	p.State = s.state
	p.Total = len(s.roster)
	p.Scanned = len(s.scanned)
	p.Cursor = s.cursor
	return p
}

func (s *ScanSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	scanned := make([]string, 0, len(s.scanned))
	// roster order keeps snapshots stable
	for _, p := range s.roster {
		if _, ok := s.scanned[p.ID]; ok {
			scanned = append(scanned, p.ID)
		}
	}
	r := make([]models.Person, len(s.roster))
	copy(r, s.roster)
	return SessionSnapshot{
		ID:        s.id,
		Roster:    r,
		Cursor:    s.cursor,
		Scanned:   scanned,
		State:     s.state,
		StartedAt: s.startedAt,
	}
}

// RestoreSession rebuilds a session from a snapshot.
func RestoreSession(snap SessionSnapshot) (*ScanSession, error) {
	if len(snap.Roster) == 0 {
		return nil, models.ErrEmptyRoster
	}
	if snap.Cursor < 0 || snap.Cursor > len(snap.Roster) {
		return nil, models.ErrInvalidInput
	}
	s := &ScanSession{
		id:        snap.ID,
		roster:    snap.Roster,
		cursor:    snap.Cursor,
		scanned:   make(map[string]struct{}, len(snap.Scanned)),
		state:     snap.State,
		startedAt: snap.StartedAt,
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.state == "" || s.state == SessionNotStarted {
		s.state = SessionRunning
	}
	for _, id := range snap.Scanned {
		if s.inRoster(id) {
			s.scanned[id] = struct{}{}
		}
	}
	if s.allScanned() {
		s.cursor = len(s.roster)
		s.state = SessionComplete
	}
	return s, nil
}

func (s *ScanSession) inRoster(personID string) bool {
	for _, p := range s.roster {
		if p.ID == personID {
			return true
		}
	}
	return false
}

func (s *ScanSession) allScanned() bool {
	for _, p := range s.roster {
		if _, ok := s.scanned[p.ID]; !ok {
			return false
		}
	}
	return true
}
