// Package session owns the per-persona mutable state: the simulated ledger
// plus the list of recommendations already implemented against it. Sessions
// are created on first access, survive across requests, and serialize
// mutations per persona; readers get deep copies and never need a lock on
// the caller side.
package session

import (
	"fmt"
	"sync"

	"github.com/wealthsim/persona-finance/internal/domain"
)

// SimulatorFunc produces a fresh ledger for a persona. Registered once per
// persona id at store construction.
type SimulatorFunc func(months int) *domain.FinancialData

// Store holds one Session per persona id.
type Store struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	simulators map[string]SimulatorFunc
}

// NewStore creates a store over the given persona simulators.
func NewStore(simulators map[string]SimulatorFunc) *Store {
	st := &Store{
		sessions:   make(map[string]*Session),
		simulators: make(map[string]SimulatorFunc, len(simulators)),
	}
	for id, fn := range simulators {
		st.simulators[id] = fn
	}
	return st
}

// Register adds or replaces the simulator for a persona id.
func (s *Store) Register(personaID string, fn SimulatorFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.simulators[personaID] = fn
}

// Get returns the persona's session, simulating its ledger on first access.
func (s *Store) Get(personaID string, months int) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[personaID]
	s.mu.RUnlock()
	if ok {
		return sess, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[personaID]; ok {
		return sess, nil
	}

	fn, ok := s.simulators[personaID]
	if !ok {
		return nil, fmt.Errorf("session: unknown persona: %s", personaID)
	}
	sess = &Session{personaID: personaID, data: fn(months)}
	s.sessions[personaID] = sess
	return sess, nil
}

// Reset drops the persona's session; the next Get resimulates.
func (s *Store) Reset(personaID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, personaID)
}

// Session is one persona's live state. All mutation goes through methods
// that take the session mutex; Snapshot and Implemented hand out copies.
type Session struct {
	mu          sync.Mutex
	personaID   string
	data        *domain.FinancialData
	implemented []domain.Recommendation
}

// PersonaID returns the owning persona id.
func (s *Session) PersonaID() string {
	return s.personaID
}

// Snapshot returns a deep copy of the financial data for analysis or
// serialization. Analysis never mutates, so concurrent snapshots are fine.
func (s *Session) Snapshot() *domain.FinancialData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Implemented returns a copy of the recommendations already executed.
func (s *Session) Implemented() []domain.Recommendation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Recommendation(nil), s.implemented...)
}

// IsImplemented reports whether a recommendation id has been executed.
func (s *Session) IsImplemented(recommendationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isImplementedLocked(recommendationID)
}

func (s *Session) isImplementedLocked(recommendationID string) bool {
	for _, r := range s.implemented {
		if r.ID == recommendationID {
			return true
		}
	}
	return false
}
