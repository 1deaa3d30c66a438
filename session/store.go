// Package session keeps the per-user working state of the HTTP host in
// memory. Nothing survives a restart.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"boligbudsjett/models"
	"boligbudsjett/services"
)

// ErrNotFound is returned for an unknown or deleted session.
var ErrNotFound = errors.New("session not found")

// State is everything one user is working on: the listing, the items
// marked for renovation and the financing inputs.
type State struct {
	ID        uuid.UUID
	Property  *models.PropertyRecord
	Plan      *services.Plan
	Financing *models.FinancingInputs
	UpdatedAt time.Time
}

func (st *State) clone() *State {
	c := &State{ID: st.ID, Plan: st.Plan.Clone(), UpdatedAt: st.UpdatedAt}
	if st.Property != nil {
		p := *st.Property
		c.Property = &p
	}
	if st.Financing != nil {
		f := *st.Financing
		c.Financing = &f
	}
	return c
}

// Store holds sessions keyed by ID. Callers always get copies, so a
// returned State can be read without holding any lock.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*State
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*State),
		now:      time.Now,
	}
}

// Create starts an empty session.
func (s *Store) Create() *State {
	st := &State{ID: uuid.New(), Plan: services.NewPlan(), UpdatedAt: s.now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[st.ID] = st
	return st.clone()
}

func (s *Store) Get(id uuid.UUID) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return st.clone(), nil
}

// Update applies fn to a copy of the session and stores the copy only if
// fn succeeds. On error the session is left exactly as it was.
func (s *Store) Update(id uuid.UUID, fn func(st *State) error) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	next := st.clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID = st.ID
	next.UpdatedAt = s.now()
	s.sessions[id] = next
	return next.clone(), nil
}

func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
