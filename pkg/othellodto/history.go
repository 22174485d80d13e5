package othellodto

import (
	"encoding/json"
	"time"
)

type HistoryItem struct {
	ID         int64           `json:"id"`
	GameUUID   string          `json:"game_uuid"`
	MoveCount  int             `json:"move_count"`
	BlackScore int             `json:"black_score"`
	WhiteScore int             `json:"white_score"`
	Winner     string          `json:"winner,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Moves      json.RawMessage `json:"moves,omitempty"`
}
