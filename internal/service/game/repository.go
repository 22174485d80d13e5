package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hoho-hoi/othello/internal/domain"
)

var ErrDuplicateGame = errors.New("game already archived")

// Archive stores finished games. The current game never lives here; it is
// written exactly once, when it finishes.
type Archive interface {
	InsertGame(ctx context.Context, g *domain.ArchivedGame) (int64, error)
	RecentGames(ctx context.Context, limit int) ([]*domain.ArchivedGame, error)
}

type archive struct {
	db *sql.DB
}

func NewArchive(db *sql.DB) Archive {
	return &archive{db: db}
}

func (r *archive) InsertGame(ctx context.Context, g *domain.ArchivedGame) (int64, error) {
	if g == nil {
		return 0, fmt.Errorf("nil archived game payload")
	}

	const query = `
		INSERT INTO othello_games (
			game_uuid,
			moves,
			move_count,
			black_score,
			white_score,
			winner,
			started_at,
			finished_at
		)
		VALUES ($1, $2::jsonb, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (game_uuid) DO NOTHING
		RETURNING id`

	var id sql.NullInt64
	err := r.db.QueryRowContext(
		ctx,
		query,
		g.GameUUID,
		g.Moves,
		g.MoveCount,
		g.BlackScore,
		g.WhiteScore,
		g.Winner,
		g.StartedAt,
		g.FinishedAt,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !id.Valid) {
		return 0, ErrDuplicateGame
	}
	if err != nil {
		return 0, fmt.Errorf("insert archived game: %w", err)
	}
	return id.Int64, nil
}

func (r *archive) RecentGames(ctx context.Context, limit int) ([]*domain.ArchivedGame, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
		SELECT
			id,
			game_uuid,
			moves,
			move_count,
			black_score,
			white_score,
			winner,
			started_at,
			finished_at
		FROM othello_games
		ORDER BY finished_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("select archived games: %w", err)
	}
	defer rows.Close()

	games := make([]*domain.ArchivedGame, 0, limit)
	for rows.Next() {
		var g domain.ArchivedGame
		if err := rows.Scan(
			&g.ID,
			&g.GameUUID,
			&g.Moves,
			&g.MoveCount,
			&g.BlackScore,
			&g.WhiteScore,
			&g.Winner,
			&g.StartedAt,
			&g.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan archived game: %w", err)
		}
		games = append(games, &g)
	}
	return games, rows.Err()
}
