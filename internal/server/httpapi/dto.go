package httpapi

import (
	"github.com/hoho-hoi/othello/internal/othello"
	game "github.com/hoho-hoi/othello/internal/service/game"
	"github.com/hoho-hoi/othello/pkg/othellodto"
)

func (s *Server) toBoardState(snap *game.Snapshot, message string) othellodto.BoardState {
	st := othellodto.BoardState{
		GameUUID:  snap.GameUUID,
		Board:     toBoard(snap.Board),
		Turn:      string(snap.Turn),
		Finished:  snap.Finished,
		MoveCount: snap.MoveCount,
		Result:    toResult(snap.Result),
		StartedAt: snap.StartedAt,
		UpdatedAt: snap.UpdatedAt,
		Message:   message,
	}
	for _, p := range snap.LegalMoves {
		st.LegalMoves = append(st.LegalMoves, othellodto.Point{Row: p.Row, Col: p.Col})
	}
	if mv := snap.LastMove; mv != nil {
		entry := &othellodto.MoveEntry{Number: mv.Number, Color: string(mv.Color), Pass: mv.Pass}
		if mv.Position != nil {
			entry.Position = &othellodto.Point{Row: mv.Position.Row, Col: mv.Position.Col}
		}
		st.LastMove = entry
	}
	return st
}

func toBoard(b othello.Board) [][]string {
	rows := make([][]string, othello.Size)
	for r := 0; r < othello.Size; r++ {
		cells := make([]string, othello.Size)
		for c := 0; c < othello.Size; c++ {
			cells[c] = string(b[r][c])
		}
		rows[r] = cells
	}
	return rows
}

func toResult(r *othello.Result) *othellodto.Result {
	if r == nil {
		return nil
	}
	return &othellodto.Result{Black: r.Black, White: r.White, Winner: string(r.Winner)}
}
