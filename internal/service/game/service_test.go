package game

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/hoho-hoi/othello/internal/othello"
)

func newTestService(t *testing.T) (*Service, *RedisStore) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	url := fmt.Sprintf("redis://%s/0", mr.Addr())
	store, err := NewRedisStore(url, time.Hour)
	if err != nil {
		t.Fatalf("NewRedisStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return NewService(store, NewMemoryArchive(), Config{}, zap.NewNop()), store
}

// playOut drives the current game to completion through the service itself,
// always taking the first legal move and passing when blocked.
func playOut(t *testing.T, s *Service) *MoveOutcome {
	t.Helper()
	ctx := context.Background()
	var last *MoveOutcome
	for i := 0; i < 200; i++ {
		snap, err := s.Current(ctx)
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		if snap.Finished {
			return last
		}
		if len(snap.LegalMoves) > 0 {
			p := snap.LegalMoves[0]
			last, err = s.Play(ctx, p.Row, p.Col)
		} else {
			last, err = s.Pass(ctx)
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	t.Fatalf("game did not finish within 200 steps")
	return nil
}

func TestCurrentInitializesEmptyGame(t *testing.T) {
	s, _ := newTestService(t)
	snap, err := s.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if snap.Board != othello.InitialBoard() {
		t.Fatalf("first snapshot is not the initial board")
	}
	if snap.Turn != othello.Black || snap.Finished || snap.MoveCount != 0 {
		t.Fatalf("unexpected first snapshot: %+v", snap)
	}
	if len(snap.LegalMoves) != 4 {
		t.Fatalf("expected 4 legal opening moves, got %d", len(snap.LegalMoves))
	}
}

func TestPlayDerivesStateFromLog(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	out, err := s.Play(ctx, 2, 3)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if out.Snapshot.Board[3][3] != othello.Black || out.Snapshot.Turn != othello.White {
		t.Fatalf("unexpected snapshot after move: %+v", out.Snapshot)
	}
	if out.Move.Number != 1 || out.Move.Color != othello.Black {
		t.Fatalf("unexpected logged move: %+v", out.Move)
	}

	// A fresh read must rebuild the identical state from the stored log.
	snap, err := s.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if snap.Board != out.Snapshot.Board || snap.MoveCount != 1 {
		t.Fatalf("reloaded state diverges from move outcome")
	}
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	s, _ := newTestService(t)
	_, err := s.Play(context.Background(), 0, 0)
	var re *othello.RuleError
	if !errors.As(err, &re) || re.Kind != othello.KindIllegalMove {
		t.Fatalf("expected illegal_move rule error, got %v", err)
	}

	_, err = s.Play(context.Background(), 9, 0)
	if !errors.As(err, &re) || re.Kind != othello.KindInvalidPosition {
		t.Fatalf("expected invalid_position rule error, got %v", err)
	}
}

func TestPassRejectedWhileMovesExist(t *testing.T) {
	s, _ := newTestService(t)
	if _, err := s.Pass(context.Background()); !errors.Is(err, ErrPassNotAllowed) {
		t.Fatalf("expected ErrPassNotAllowed, got %v", err)
	}
}

func TestAppendConflict(t *testing.T) {
	s, store := newTestService(t)
	ctx := context.Background()
	if _, err := s.Current(ctx); err != nil {
		t.Fatalf("Current: %v", err)
	}

	mv := othello.Move{Number: 1, Color: othello.Black, Position: &othello.Position{Row: 2, Col: 3}}
	if _, err := store.Append(ctx, 0, mv, time.Now()); err != nil {
		t.Fatalf("first append: %v", err)
	}
	// Same expected length again: the double-tap case.
	if _, err := store.Append(ctx, 0, mv, time.Now()); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	if _, err := s.Play(ctx, 2, 3); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if _, err := s.Play(ctx, 2, 2); err != nil {
		t.Fatalf("Play: %v", err)
	}
	raw, err := s.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	before, err := s.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}

	if _, err := s.NewGame(ctx); err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	preview, err := s.StageImport(ctx, raw)
	if err != nil {
		t.Fatalf("StageImport: %v", err)
	}
	if preview.MoveCount != 2 || preview.Turn != othello.Black || preview.Finished {
		t.Fatalf("unexpected preview: %+v", preview)
	}

	snap, err := s.ConfirmImport(ctx)
	if err != nil {
		t.Fatalf("ConfirmImport: %v", err)
	}
	if snap.Board != before.Board || snap.MoveCount != 2 {
		t.Fatalf("imported state diverges from exported game")
	}
	if _, err := s.ConfirmImport(ctx); !errors.Is(err, ErrNoStagedImport) {
		t.Fatalf("staged log must be cleared after confirm, got %v", err)
	}
}

func TestStageImportRejectsInvalidLog(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	if _, err := s.Play(ctx, 2, 3); err != nil {
		t.Fatalf("Play: %v", err)
	}
	before, err := s.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}

	// Schema-valid but semantically wrong: White cannot open the game.
	bad := []byte(`{
		"format_version": 1,
		"exported_at": "2026-08-30T00:00:00Z",
		"moves": [
			{"move_number": 1, "color": "white", "position": {"row": 2, "col": 3}, "is_pass": false}
		]
	}`)
	_, err = s.StageImport(ctx, bad)
	var re *othello.ReplayError
	if !errors.As(err, &re) || re.Kind != othello.KindTurnMismatch || re.Index != 1 {
		t.Fatalf("expected turn_mismatch at 1, got %v", err)
	}

	// Nothing staged, current game untouched.
	if _, err := s.ConfirmImport(ctx); !errors.Is(err, ErrNoStagedImport) {
		t.Fatalf("expected ErrNoStagedImport, got %v", err)
	}
	after, err := s.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if after.Board != before.Board || after.MoveCount != before.MoveCount {
		t.Fatalf("current game changed despite rejected import")
	}
}

func TestCancelImport(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	raw, err := s.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, err := s.StageImport(ctx, raw); err != nil {
		t.Fatalf("StageImport: %v", err)
	}
	if err := s.CancelImport(ctx); err != nil {
		t.Fatalf("CancelImport: %v", err)
	}
	if err := s.CancelImport(ctx); !errors.Is(err, ErrNoStagedImport) {
		t.Fatalf("expected ErrNoStagedImport after cancel, got %v", err)
	}
}

func TestFullGameFinishesAndArchives(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	last := playOut(t, s)
	if last == nil || !last.Snapshot.Finished {
		t.Fatalf("expected final outcome to be finished")
	}
	if last.Snapshot.Result == nil {
		t.Fatalf("finished snapshot missing result")
	}
	if !last.Archived {
		t.Fatalf("finishing move did not archive the game")
	}
	if got := last.Snapshot.Result.Black + last.Snapshot.Result.White; got > 64 || got == 0 {
		t.Fatalf("implausible disc count %d", got)
	}

	if _, err := s.Play(ctx, 0, 0); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("expected ErrGameFinished, got %v", err)
	}

	games, err := s.History(ctx, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected exactly one archived game, got %d", len(games))
	}
	if games[0].MoveCount != last.Snapshot.MoveCount {
		t.Fatalf("archived move count %d, snapshot %d", games[0].MoveCount, last.Snapshot.MoveCount)
	}

	// Starting a new game again must not archive a second row for it.
	if _, err := s.NewGame(ctx); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	games, err = s.History(ctx, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("duplicate archive rows after NewGame: %d", len(games))
	}
}
