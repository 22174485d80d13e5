package othello

// Size is the board edge length; Othello is always played on 8x8.
const Size = 8

// Color identifies a disc side.
type Color string

const (
	Black Color = "black"
	White Color = "white"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

// Valid reports whether c is one of the two playable colors.
func (c Color) Valid() bool { return c == Black || c == White }

// Board is a value type: assigning or passing one copies all 64 cells, so a
// previously returned board can never be mutated through a later call.
// The empty string marks an unoccupied cell.
type Board [Size][Size]Color

// Position is a 0-based board coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Move is a single entry of a game log. A pass has Pass=true and a nil
// Position; a normal move carries the placed position. Move numbers are
// 1-based and contiguous within a log.
type Move struct {
	Number   int       `json:"move_number"`
	Color    Color     `json:"color"`
	Position *Position `json:"position"`
	Pass     bool      `json:"is_pass"`
}

// StateDelta is the raw outcome of applying one move. Finished is always
// false here; termination is a separate question answered by IsFinished once
// the caller knows who moves next.
type StateDelta struct {
	Board    Board
	NextTurn Color
	Finished bool
}

// State is a full derived game state: always a function of a move log, never
// stored directly.
type State struct {
	Board    Board
	Turn     Color
	Finished bool
}

// Result is the final score of a finished board. Winner is empty on a draw.
type Result struct {
	Black  int   `json:"black"`
	White  int   `json:"white"`
	Winner Color `json:"winner,omitempty"`
}

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// InitialBoard returns the standard starting position: the center four cells
// hold the canonical diagonal pattern, Black to move first.
func InitialBoard() Board {
	var b Board
	mid := Size / 2
	b[mid-1][mid-1], b[mid][mid] = White, White
	b[mid-1][mid], b[mid][mid-1] = Black, Black
	return b
}
