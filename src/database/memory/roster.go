package memory

import (
	"context"
	"sync"

	"Backend-Schoolhub/src/models"
)

// RosterStore keeps persons in insertion order; GetRoster returns them in that order.
type RosterStore struct {
	mu      sync.RWMutex
	order   []string
	persons map[string]models.Person
}

func NewRosterStore(persons ...models.Person) *RosterStore {
	s := &RosterStore{persons: make(map[string]models.Person)}
	s.Put(persons...)
	return s
}

// Put adds or replaces persons; a replaced person keeps its original position.
func (s *RosterStore) Put(persons ...models.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range persons {
		if _, ok := s.persons[p.ID]; !ok {
			s.order = append(s.order, p.ID)
		}
		s.persons[p.ID] = p
	}
}

func (s *RosterStore) GetRoster(_ context.Context, scope models.RosterScope) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Person, 0, len(s.order))
	for _, id := range s.order {
		p := s.persons[id]
		if matchesScope(p, scope) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *RosterStore) GetPerson(_ context.Context, id string) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.persons[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func matchesScope(p models.Person, scope models.RosterScope) bool {
	if !p.Active {
		return false
	}
	if scope.Kind != "" && p.Kind != scope.Kind {
		return false
	}
	if scope.ClassName != "" && p.ClassName != scope.ClassName {
		return false
	}
	if scope.Section != "" && p.Section != scope.Section {
		return false
	}
	return true
}
