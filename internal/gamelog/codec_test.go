package gamelog

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hoho-hoi/othello/internal/othello"
)

func sampleMoves() []othello.Move {
	return []othello.Move{
		{Number: 1, Color: othello.Black, Position: &othello.Position{Row: 2, Col: 3}},
		{Number: 2, Color: othello.White, Position: &othello.Position{Row: 2, Col: 2}},
	}
}

func TestEncodeDecode(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	raw, err := Encode(sampleMoves(), now)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	moves, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(moves) != 2 || moves[0].Position == nil || moves[0].Position.Row != 2 {
		t.Fatalf("unexpected decoded moves: %+v", moves)
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if f.FormatVersion != FormatVersion || !f.ExportedAt.Equal(now) {
		t.Fatalf("header mismatch: %+v", f)
	}
}

func TestEncodeEmptyLog(t *testing.T) {
	raw, err := Encode(nil, time.Now())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(raw), `"moves": []`) {
		t.Fatalf("nil log must encode as an empty array:\n%s", raw)
	}
	moves, err := Decode(raw)
	if err != nil || len(moves) != 0 {
		t.Fatalf("Decode empty: moves=%v err=%v", moves, err)
	}
}

func TestDecodeRejections(t *testing.T) {
	mutate := func(fn func(*File)) []byte {
		f := File{FormatVersion: FormatVersion, ExportedAt: time.Now().UTC(), Moves: sampleMoves()}
		fn(&f)
		raw, err := json.Marshal(f)
		if err != nil {
			t.Fatalf("marshal fixture: %v", err)
		}
		return raw
	}

	cases := []struct {
		name      string
		raw       []byte
		wantIndex int
	}{
		{"garbage", []byte("{not json"), 0},
		{"wrong version", mutate(func(f *File) { f.FormatVersion = 99 }), 0},
		{"gap in numbering", mutate(func(f *File) { f.Moves[1].Number = 3 }), 2},
		{"unknown color", mutate(func(f *File) { f.Moves[0].Color = "green" }), 1},
		{"pass with position", mutate(func(f *File) { f.Moves[1].Pass = true }), 2},
		{"move without position", mutate(func(f *File) { f.Moves[0].Position = nil }), 1},
		{"position out of range", mutate(func(f *File) { f.Moves[0].Position.Col = 8 }), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.raw)
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			if se.Index != tc.wantIndex {
				t.Fatalf("index = %d, want %d (%s)", se.Index, tc.wantIndex, se.Message)
			}
		})
	}
}
