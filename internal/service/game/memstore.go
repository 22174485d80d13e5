package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hoho-hoi/othello/internal/othello"
)

// memstore is a development-only in-memory store used when no Redis is
// configured. Staged imports do not expire here.
type memstore struct {
	mu      sync.Mutex
	current *StoredGame
	staged  []othello.Move
}

func NewMemoryStore() CurrentStore {
	return &memstore{}
}

func (m *memstore) Load(ctx context.Context) (*StoredGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, nil
	}
	cp := *m.current
	cp.Moves = append([]othello.Move(nil), m.current.Moves...)
	return &cp, nil
}

func (m *memstore) Replace(ctx context.Context, g *StoredGame) error {
	if g == nil {
		return fmt.Errorf("nil game payload")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *g
	cp.Moves = append([]othello.Move(nil), g.Moves...)
	m.current = &cp
	return nil
}

func (m *memstore) Append(ctx context.Context, expectedLen int, mv othello.Move, now time.Time) (*StoredGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, fmt.Errorf("current game not found")
	}
	if len(m.current.Moves) != expectedLen {
		return nil, ErrConflict
	}
	m.current.Moves = append(m.current.Moves, mv)
	m.current.UpdatedAt = now
	cp := *m.current
	cp.Moves = append([]othello.Move(nil), m.current.Moves...)
	return &cp, nil
}

func (m *memstore) SaveStaged(ctx context.Context, moves []othello.Move) error {
	m.mu.Lock()
	m.staged = append([]othello.Move(nil), moves...)
	m.mu.Unlock()
	return nil
}

func (m *memstore) LoadStaged(ctx context.Context) ([]othello.Move, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.staged == nil {
		return nil, ErrNoStagedImport
	}
	return append([]othello.Move(nil), m.staged...), nil
}

func (m *memstore) ClearStaged(ctx context.Context) error {
	m.mu.Lock()
	m.staged = nil
	m.mu.Unlock()
	return nil
}
