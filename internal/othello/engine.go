package othello

// flipRun collects the positions flipped by placing color at (row, col),
// scanning all 8 directions against the given board. A direction contributes
// its run only when the run is non-empty and terminated in-bounds by a
// same-color disc.
func flipRun(b Board, color Color, row, col int) []Position {
	opponent := color.Opponent()
	var total []Position
	for _, dir := range directions {
		var run []Position
		r, c := row+dir[0], col+dir[1]
		for r >= 0 && r < Size && c >= 0 && c < Size && b[r][c] == opponent {
			run = append(run, Position{Row: r, Col: c})
			r += dir[0]
			c += dir[1]
		}
		if len(run) > 0 && r >= 0 && r < Size && c >= 0 && c < Size && b[r][c] == color {
			total = append(total, run...)
		}
	}
	return total
}

// Apply places color at (row, col) and flips every qualifying run. All
// directions are evaluated against the pre-move board, so flips from one
// direction never affect whether another qualifies. The input board is left
// untouched; the returned delta carries a fresh board with the opponent to
// move and Finished unset (termination is the caller's next question).
func Apply(b Board, color Color, row, col int) (StateDelta, error) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return StateDelta{}, invalidPosition(row, col)
	}
	if b[row][col] != "" {
		return StateDelta{}, illegalMove(row, col, "cell occupied")
	}
	flips := flipRun(b, color, row, col)
	if len(flips) == 0 {
		return StateDelta{}, illegalMove(row, col, "no opposing run to flip")
	}

	next := b // value copy
	next[row][col] = color
	for _, p := range flips {
		next[p.Row][p.Col] = color
	}
	return StateDelta{Board: next, NextTurn: color.Opponent()}, nil
}

// LegalMoves returns every position where color has at least one flippable
// run, in row-major order.
func LegalMoves(b Board, color Color) []Position {
	var moves []Position
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] != "" {
				continue
			}
			if len(flipRun(b, color, r, c)) > 0 {
				moves = append(moves, Position{Row: r, Col: c})
			}
		}
	}
	return moves
}

// CanPass reports whether color has no legal move and therefore must pass.
func CanPass(b Board, color Color) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == "" && len(flipRun(b, color, r, c)) > 0 {
				return false
			}
		}
	}
	return true
}
