package game

import (
	"context"
	"sort"
	"sync"

	"github.com/hoho-hoi/othello/internal/domain"
)

// memrepo is a development-only in-memory archive used when no DB is
// configured.
type memrepo struct {
	mu sync.RWMutex

	nextID int64

	gamesByID   map[int64]*domain.ArchivedGame
	gamesByUUID map[string]*domain.ArchivedGame
}

func NewMemoryArchive() Archive {
	return &memrepo{
		gamesByID:   make(map[int64]*domain.ArchivedGame),
		gamesByUUID: make(map[string]*domain.ArchivedGame),
	}
}

func (m *memrepo) InsertGame(ctx context.Context, g *domain.ArchivedGame) (int64, error) {
	if g == nil {
		return 0, ErrDuplicateGame
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.gamesByUUID[g.GameUUID]; exists {
		return 0, ErrDuplicateGame
	}

	m.nextID++
	id := m.nextID
	cp := *g
	cp.ID = id

	m.gamesByID[id] = &cp
	m.gamesByUUID[g.GameUUID] = &cp
	return id, nil
}

func (m *memrepo) RecentGames(ctx context.Context, limit int) ([]*domain.ArchivedGame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]*domain.ArchivedGame, 0, len(m.gamesByID))
	for _, g := range m.gamesByID {
		items = append(items, g)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].FinishedAt.Equal(items[j].FinishedAt) {
			return items[i].FinishedAt.After(items[j].FinishedAt)
		}
		return items[i].ID > items[j].ID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
