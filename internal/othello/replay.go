package othello

import "fmt"

// Replay folds an already-trusted move log into a board. It assumes the log
// was produced by this process's own engine calls and performs no rule
// checks: passes are skipped, placements are applied by recomputing their
// flip runs. Logs that cross a trust boundary must go through
// ReplayValidated instead.
func Replay(moves []Move) Board {
	b := InitialBoard()
	for _, mv := range moves {
		if mv.Pass || mv.Position == nil {
			continue
		}
		b[mv.Position.Row][mv.Position.Col] = mv.Color
		for _, p := range flipRun(b, mv.Color, mv.Position.Row, mv.Position.Col) {
			b[p.Row][p.Col] = mv.Color
		}
	}
	return b
}

// ReplayValidated folds an externally-supplied move log into a board while
// re-checking every semantic rule: strict color alternation starting with
// Black, pass legitimacy, and placement legality. It fails fast on the first
// violation and never repairs or skips an entry; on error the caller must
// discard the whole candidate log. Replaying the same log twice yields
// identical boards, and a strict prefix of a valid log reproduces the exact
// state a live session would have had at that point.
func ReplayValidated(moves []Move) (Board, error) {
	b := InitialBoard()
	expected := Black
	for i, mv := range moves {
		index := i + 1
		if mv.Color != expected {
			return Board{}, &ReplayError{
				Index:   index,
				Kind:    KindTurnMismatch,
				Message: fmt.Sprintf("expected %s to move, log says %s", expected, mv.Color),
			}
		}
		if mv.Pass {
			if !CanPass(b, expected) {
				return Board{}, &ReplayError{
					Index:   index,
					Kind:    KindInvalidPassClaim,
					Message: fmt.Sprintf("%s passed while legal moves existed", expected),
				}
			}
		} else {
			if mv.Position == nil {
				return Board{}, &ReplayError{
					Index:   index,
					Kind:    KindIllegalMove,
					Message: "non-pass move without a position",
				}
			}
			delta, err := Apply(b, expected, mv.Position.Row, mv.Position.Col)
			if err != nil {
				return Board{}, replayWrap(index, err)
			}
			b = delta.Board
		}
		expected = expected.Opponent()
	}
	return b, nil
}

// colorToMove returns the side whose turn it is after n logged moves. Turns
// alternate strictly, passes included, with Black always first.
func colorToMove(n int) Color {
	if n%2 == 0 {
		return Black
	}
	return White
}

// DeriveState reconstructs the full game state from an untrusted log:
// validated replay plus the termination check, with the mover of the last
// entry as the previous side. An empty log derives the initial position with
// Black to move.
func DeriveState(moves []Move) (State, error) {
	b, err := ReplayValidated(moves)
	if err != nil {
		return State{}, err
	}
	return deriveFrom(b, moves), nil
}

// DeriveStateTrusted is the trusted-path counterpart of DeriveState, for
// logs whose validity is guaranteed by construction.
func DeriveStateTrusted(moves []Move) State {
	return deriveFrom(Replay(moves), moves)
}

func deriveFrom(b Board, moves []Move) State {
	turn := colorToMove(len(moves))
	return State{
		Board:    b,
		Turn:     turn,
		Finished: IsFinished(b, turn, turn.Opponent()),
	}
}
