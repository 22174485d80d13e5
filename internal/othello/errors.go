package othello

import "fmt"

// ErrorKind classifies a rule violation. Kinds are stable identifiers meant
// for programmatic handling; messages are for humans.
type ErrorKind string

const (
	KindInvalidPosition  ErrorKind = "invalid_position"
	KindIllegalMove      ErrorKind = "illegal_move"
	KindTurnMismatch     ErrorKind = "turn_mismatch"
	KindInvalidPassClaim ErrorKind = "invalid_pass_claim"
)

// RuleError reports an illegal input to a single engine operation.
type RuleError struct {
	Kind    ErrorKind
	Message string
}

func (e *RuleError) Error() string { return e.Message }

func invalidPosition(row, col int) *RuleError {
	return &RuleError{
		Kind:    KindInvalidPosition,
		Message: fmt.Sprintf("position (%d,%d) outside the board", row, col),
	}
}

func illegalMove(row, col int, reason string) *RuleError {
	return &RuleError{
		Kind:    KindIllegalMove,
		Message: fmt.Sprintf("illegal move at (%d,%d): %s", row, col, reason),
	}
}

// ReplayError reports the first rule violation found while validating a move
// log. Index is the 1-based move number of the offending entry.
type ReplayError struct {
	Index   int
	Kind    ErrorKind
	Message string
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("move %d: %s", e.Index, e.Message)
}

func replayWrap(index int, err error) *ReplayError {
	if re, ok := err.(*RuleError); ok {
		return &ReplayError{Index: index, Kind: re.Kind, Message: re.Message}
	}
	return &ReplayError{Index: index, Kind: KindIllegalMove, Message: err.Error()}
}
