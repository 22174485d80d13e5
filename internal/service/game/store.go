package game

import (
	"context"
	"errors"
	"time"

	"github.com/hoho-hoi/othello/internal/othello"
)

var (
	// ErrConflict means a concurrent append touched the current game between
	// read and write; the caller should reload and retry or give up.
	ErrConflict = errors.New("current game changed concurrently")
	// ErrNoStagedImport means confirm/cancel was called with nothing staged.
	ErrNoStagedImport = errors.New("no staged import")
)

// StoredGame is the persisted form of the current game. Only the move log is
// authoritative; board, turn, and finished state are re-derived on load.
type StoredGame struct {
	GameUUID  string         `json:"game_uuid"`
	Moves     []othello.Move `json:"moves"`
	StartedAt time.Time      `json:"started_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CurrentStore persists exactly one current game plus at most one staged
// import candidate. Load returns nil when nothing is stored yet.
type CurrentStore interface {
	Load(ctx context.Context) (*StoredGame, error)
	Replace(ctx context.Context, g *StoredGame) error
	// Append adds one move iff the stored log still has expectedLen entries,
	// returning ErrConflict otherwise. This is where concurrent submissions
	// (a double-tapped cell) are serialized.
	Append(ctx context.Context, expectedLen int, mv othello.Move, now time.Time) (*StoredGame, error)

	SaveStaged(ctx context.Context, moves []othello.Move) error
	LoadStaged(ctx context.Context) ([]othello.Move, error)
	ClearStaged(ctx context.Context) error
}
