package domain

import "time"

// ArchivedGame is a finished game written to the archive when the current
// game is replaced or completed. Moves holds the wire-format JSON of the
// full move log, which remains the authoritative record of the game.
type ArchivedGame struct {
	ID         int64
	GameUUID   string
	Moves      []byte
	MoveCount  int
	BlackScore int
	WhiteScore int
	Winner     string // "black", "white", or "" for a draw
	StartedAt  time.Time
	FinishedAt time.Time
}
