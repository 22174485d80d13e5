// Package gamelog owns the on-disk/clipboard wire format for exported games
// and its structural validation. Semantic rule checks (turn order, move
// legality, pass legitimacy) are not done here; they belong to the engine's
// validated replay, which every decoded log must still pass through.
package gamelog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hoho-hoi/othello/internal/othello"
)

// FormatVersion is the current wire format revision. Decoding rejects any
// other value rather than guessing at semantics.
const FormatVersion = 1

// File is the wire representation of one exported game.
type File struct {
	FormatVersion int            `json:"format_version"`
	ExportedAt    time.Time      `json:"exported_at"`
	Moves         []othello.Move `json:"moves"`
}

// SchemaError reports the first structural problem in a candidate file.
// Index is the 1-based move entry when the problem is inside the move list,
// and 0 for file-level problems.
type SchemaError struct {
	Index   int
	Message string
}

func (e *SchemaError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("move entry %d: %s", e.Index, e.Message)
	}
	return e.Message
}

// Encode serializes a move log into the wire format, stamped with now.
func Encode(moves []othello.Move, now time.Time) ([]byte, error) {
	if moves == nil {
		moves = []othello.Move{}
	}
	f := File{FormatVersion: FormatVersion, ExportedAt: now.UTC(), Moves: moves}
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal game log: %w", err)
	}
	return raw, nil
}

// Decode parses and structurally validates a candidate file, returning its
// move list. Callers must still run the result through validated replay
// before trusting it.
func Decode(raw []byte) ([]othello.Move, error) {
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, &SchemaError{Message: fmt.Sprintf("not a valid game log: %v", err)}
	}
	if f.FormatVersion != FormatVersion {
		return nil, &SchemaError{Message: fmt.Sprintf("unsupported format version %d (want %d)", f.FormatVersion, FormatVersion)}
	}
	if err := validateMoves(f.Moves); err != nil {
		return nil, err
	}
	return f.Moves, nil
}

// validateMoves enforces the structural invariants of a move list: move
// numbers 1..N ascending with no gaps, known colors, and the pass/position
// exclusivity rule with in-range coordinates.
func validateMoves(moves []othello.Move) error {
	for i, mv := range moves {
		index := i + 1
		if mv.Number != index {
			return &SchemaError{Index: index, Message: fmt.Sprintf("move_number %d out of sequence (want %d)", mv.Number, index)}
		}
		if !mv.Color.Valid() {
			return &SchemaError{Index: index, Message: fmt.Sprintf("unknown color %q", mv.Color)}
		}
		if mv.Pass {
			if mv.Position != nil {
				return &SchemaError{Index: index, Message: "pass entry carries a position"}
			}
			continue
		}
		if mv.Position == nil {
			return &SchemaError{Index: index, Message: "non-pass entry missing position"}
		}
		if !mv.Position.InBounds() {
			return &SchemaError{Index: index, Message: fmt.Sprintf("position (%d,%d) out of range", mv.Position.Row, mv.Position.Col)}
		}
	}
	return nil
}
