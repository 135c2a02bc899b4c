package club

import (
	"context"
	"sync"
)

// MockRepository is an in-memory Repository for tests.
// It is safe for concurrent use.
type MockRepository struct {
	mu sync.Mutex

	// Stored is what the next Load returns. Save replaces it.
	Stored State

	// Spies for method calls
	LoadFunc func(ctx context.Context) (State, error)
	SaveFunc func(ctx context.Context, state State) error

	// Call records
	LoadCalls int
	SaveCalls []State
}

// NewMockRepository creates a repository with nothing stored.
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// NewMockRepositoryWith creates a repository that loads the given state.
func NewMockRepositoryWith(state State) *MockRepository {
	return &MockRepository{Stored: state}
}

func (m *MockRepository) Load(ctx context.Context) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadCalls++
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return m.Stored, nil
}

func (m *MockRepository) Save(ctx context.Context, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, state)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, state)
	}
	m.Stored = state
	return nil
}

// LastSaved returns the most recently saved state.
func (m *MockRepository) LastSaved() (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SaveCalls) == 0 {
		return State{}, false
	}
	return m.SaveCalls[len(m.SaveCalls)-1], true
}

// Saves returns the number of Save calls so far.
func (m *MockRepository) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SaveCalls)
}
