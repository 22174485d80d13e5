// Package othellodto holds the JSON shapes exchanged with the local UI.
package othellodto

import "time"

// Cell values are "black", "white", or "" for empty.
type BoardState struct {
	GameUUID   string     `json:"game_uuid"`
	Board      [][]string `json:"board"`
	Turn       string     `json:"turn"`
	Finished   bool       `json:"finished"`
	MoveCount  int        `json:"move_count"`
	LegalMoves []Point    `json:"legal_moves,omitempty"`
	LastMove   *MoveEntry `json:"last_move,omitempty"`
	Result     *Result    `json:"result,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Message    string     `json:"message,omitempty"`
}

type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type MoveEntry struct {
	Number   int    `json:"move_number"`
	Color    string `json:"color"`
	Position *Point `json:"position,omitempty"`
	Pass     bool   `json:"is_pass"`
}

type Result struct {
	Black  int    `json:"black"`
	White  int    `json:"white"`
	Winner string `json:"winner,omitempty"`
}

type ImportPreview struct {
	MoveCount int     `json:"move_count"`
	Turn      string  `json:"turn"`
	Finished  bool    `json:"finished"`
	Result    *Result `json:"result,omitempty"`
	Message   string  `json:"message,omitempty"`
}
