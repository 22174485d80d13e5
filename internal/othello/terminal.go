package othello

// IsFinished decides whether the game is over. A full board ends the game
// unconditionally. Otherwise the game ends only when both the side about to
// act and the side that just acted have no legal move, which is how two
// consecutive passes terminate a game.
func IsFinished(b Board, current, previous Color) bool {
	full := true
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == "" {
				full = false
			}
		}
	}
	if full {
		return true
	}
	return CanPass(b, current) && CanPass(b, previous)
}

// Score counts discs and names the winner. Meaningful only on a finished
// board; callers check IsFinished first. An equal count is a draw and leaves
// Winner empty.
func Score(b Board) Result {
	var res Result
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch b[r][c] {
			case Black:
				res.Black++
			case White:
				res.White++
			}
		}
	}
	switch {
	case res.Black > res.White:
		res.Winner = Black
	case res.White > res.Black:
		res.Winner = White
	}
	return res
}
