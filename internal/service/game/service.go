package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hoho-hoi/othello/internal/domain"
	"github.com/hoho-hoi/othello/internal/gamelog"
	"github.com/hoho-hoi/othello/internal/othello"
)

var (
	ErrGameFinished   = errors.New("game already finished")
	ErrPassNotAllowed = errors.New("pass not allowed while legal moves exist")
	// ErrCorruptLog means the stored current game failed validated replay.
	// The prior state cannot be trusted; the only way forward is a new game
	// or a valid import.
	ErrCorruptLog = errors.New("stored move log failed validation")
)

const maxHistoryLimit = 50

type Config struct {
	HistoryLimit int
}

// Service owns the single current game. Every operation re-derives board,
// turn, and finished state from the stored move log; logs read from the
// store or staged from an import are treated as untrusted and pass through
// validated replay before anything is built on them.
type Service struct {
	store   CurrentStore
	archive Archive
	cfg     Config
	logger  *zap.Logger
}

func NewService(store CurrentStore, archive Archive, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 10
	}
	return &Service{store: store, archive: archive, cfg: cfg, logger: logger}
}

// Snapshot is the derived view of the current game handed to callers.
type Snapshot struct {
	GameUUID   string
	Board      othello.Board
	Turn       othello.Color
	Finished   bool
	Result     *othello.Result
	LegalMoves []othello.Position
	MoveCount  int
	LastMove   *othello.Move
	StartedAt  time.Time
	UpdatedAt  time.Time
}

// MoveOutcome reports one applied move or pass.
type MoveOutcome struct {
	Snapshot *Snapshot
	Move     othello.Move
	Archived bool
}

// ImportPreview summarizes a staged candidate log before the user confirms
// the overwrite.
type ImportPreview struct {
	MoveCount int
	Turn      othello.Color
	Finished  bool
	Result    *othello.Result
}

// Current returns the derived state of the current game, creating a fresh
// empty game on first use.
func (s *Service) Current(ctx context.Context) (*Snapshot, error) {
	g, st, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	return s.snapshot(g, st), nil
}

// NewGame discards the current game and starts from the standard initial
// position. A finished current game is archived first; an unfinished one is
// simply abandoned, since the log is only authoritative for one game at a
// time.
func (s *Service) NewGame(ctx context.Context) (*Snapshot, error) {
	prev, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		if st, derr := othello.DeriveState(prev.Moves); derr == nil && st.Finished {
			s.archiveFinished(ctx, prev, st)
		}
	}

	g := s.freshGame(time.Now())
	if err := s.store.Replace(ctx, g); err != nil {
		return nil, err
	}
	st := othello.DeriveStateTrusted(g.Moves)
	s.logger.Info("game_new", zap.String("game_uuid", g.GameUUID))
	return s.snapshot(g, st), nil
}

// Play applies one placement for the side to move. Rule violations surface
// as *othello.RuleError; a concurrent duplicate submission surfaces as
// ErrConflict without a second append.
func (s *Service) Play(ctx context.Context, row, col int) (*MoveOutcome, error) {
	g, st, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	if st.Finished {
		return nil, ErrGameFinished
	}

	delta, err := othello.Apply(st.Board, st.Turn, row, col)
	if err != nil {
		return nil, err
	}

	mv := othello.Move{
		Number:   len(g.Moves) + 1,
		Color:    st.Turn,
		Position: &othello.Position{Row: row, Col: col},
	}
	return s.commitMove(ctx, g, mv, othello.State{
		Board:    delta.Board,
		Turn:     delta.NextTurn,
		Finished: othello.IsFinished(delta.Board, delta.NextTurn, st.Turn),
	})
}

// Pass records an explicit pass for the side to move. A pass is only
// legitimate when that side genuinely has no legal move.
func (s *Service) Pass(ctx context.Context) (*MoveOutcome, error) {
	g, st, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	if st.Finished {
		return nil, ErrGameFinished
	}
	if !othello.CanPass(st.Board, st.Turn) {
		return nil, ErrPassNotAllowed
	}

	mv := othello.Move{
		Number: len(g.Moves) + 1,
		Color:  st.Turn,
		Pass:   true,
	}
	next := st.Turn.Opponent()
	return s.commitMove(ctx, g, mv, othello.State{
		Board:    st.Board,
		Turn:     next,
		Finished: othello.IsFinished(st.Board, next, st.Turn),
	})
}

// Export serializes the current move log in the wire format.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	g, _, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	return gamelog.Encode(g.Moves, time.Now())
}

// StageImport decodes, schema-validates, and rule-validates a candidate log
// and stages it for confirmation. The current game is untouched; a failed
// candidate is never stored.
func (s *Service) StageImport(ctx context.Context, raw []byte) (*ImportPreview, error) {
	moves, err := gamelog.Decode(raw)
	if err != nil {
		return nil, err
	}
	st, err := othello.DeriveState(moves)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveStaged(ctx, moves); err != nil {
		return nil, err
	}
	s.logger.Info("import_staged",
		zap.Int("move_count", len(moves)),
		zap.Bool("finished", st.Finished),
	)
	return s.preview(moves, st), nil
}

// ConfirmImport replaces the current game with the staged candidate. The
// candidate is re-validated on the way in: staging and confirmation are
// separate requests, and the staged value crossed a storage boundary in
// between. The prior game is archived first when it had finished.
func (s *Service) ConfirmImport(ctx context.Context) (*Snapshot, error) {
	moves, err := s.store.LoadStaged(ctx)
	if err != nil {
		return nil, err
	}
	st, err := othello.DeriveState(moves)
	if err != nil {
		return nil, err
	}

	prev, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		if pst, derr := othello.DeriveState(prev.Moves); derr == nil && pst.Finished {
			s.archiveFinished(ctx, prev, pst)
		}
	}

	now := time.Now()
	g := &StoredGame{
		GameUUID:  uuid.NewString(),
		Moves:     moves,
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Replace(ctx, g); err != nil {
		return nil, err
	}
	if err := s.store.ClearStaged(ctx); err != nil {
		s.logger.Warn("import_staged_clear_error", zap.Error(err))
	}
	s.logger.Info("import_confirmed",
		zap.String("game_uuid", g.GameUUID),
		zap.Int("move_count", len(moves)),
	)
	return s.snapshot(g, st), nil
}

// CancelImport drops the staged candidate, if any.
func (s *Service) CancelImport(ctx context.Context) error {
	if _, err := s.store.LoadStaged(ctx); err != nil {
		return err
	}
	return s.store.ClearStaged(ctx)
}

// History lists recently archived games, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]*domain.ArchivedGame, error) {
	if limit <= 0 {
		limit = s.cfg.HistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.archive.RecentGames(ctx, limit)
}

// loadValidated loads the current game, initializing an empty one on first
// use, and re-derives its state through validated replay. The store is a
// trust boundary: the process that wrote the log may not be this one.
func (s *Service) loadValidated(ctx context.Context) (*StoredGame, othello.State, error) {
	g, err := s.store.Load(ctx)
	if err != nil {
		return nil, othello.State{}, err
	}
	if g == nil {
		g = s.freshGame(time.Now())
		if err := s.store.Replace(ctx, g); err != nil {
			return nil, othello.State{}, err
		}
	}
	st, err := othello.DeriveState(g.Moves)
	if err != nil {
		s.logger.Error("current_log_invalid", zap.String("game_uuid", g.GameUUID), zap.Error(err))
		return nil, othello.State{}, fmt.Errorf("%w: %v", ErrCorruptLog, err)
	}
	return g, st, nil
}

func (s *Service) commitMove(ctx context.Context, g *StoredGame, mv othello.Move, st othello.State) (*MoveOutcome, error) {
	updated, err := s.store.Append(ctx, len(g.Moves), mv, time.Now())
	if err != nil {
		return nil, err
	}

	archived := false
	if st.Finished {
		archived = s.archiveFinished(ctx, updated, st)
	}

	s.logger.Info("game_move",
		zap.String("game_uuid", updated.GameUUID),
		zap.Int("move_number", mv.Number),
		zap.String("color", string(mv.Color)),
		zap.Bool("pass", mv.Pass),
		zap.Bool("finished", st.Finished),
	)
	return &MoveOutcome{Snapshot: s.snapshot(updated, st), Move: mv, Archived: archived}, nil
}

// archiveFinished writes a finished game to the archive. Failures are
// logged, never propagated: losing an archive row must not block play.
func (s *Service) archiveFinished(ctx context.Context, g *StoredGame, st othello.State) bool {
	if s.archive == nil || !st.Finished {
		return false
	}
	res := othello.Score(st.Board)
	raw, err := gamelog.Encode(g.Moves, time.Now())
	if err != nil {
		s.logger.Error("archive_encode_error", zap.String("game_uuid", g.GameUUID), zap.Error(err))
		return false
	}
	_, err = s.archive.InsertGame(ctx, &domain.ArchivedGame{
		GameUUID:   g.GameUUID,
		Moves:      raw,
		MoveCount:  len(g.Moves),
		BlackScore: res.Black,
		WhiteScore: res.White,
		Winner:     string(res.Winner),
		StartedAt:  g.StartedAt,
		FinishedAt: g.UpdatedAt,
	})
	if errors.Is(err, ErrDuplicateGame) {
		return false
	}
	if err != nil {
		s.logger.Error("archive_insert_error", zap.String("game_uuid", g.GameUUID), zap.Error(err))
		return false
	}
	s.logger.Info("game_archived",
		zap.String("game_uuid", g.GameUUID),
		zap.Int("black", res.Black),
		zap.Int("white", res.White),
		zap.String("winner", string(res.Winner)),
	)
	return true
}

func (s *Service) freshGame(now time.Time) *StoredGame {
	return &StoredGame{
		GameUUID:  uuid.NewString(),
		Moves:     []othello.Move{},
		StartedAt: now,
		UpdatedAt: now,
	}
}

func (s *Service) snapshot(g *StoredGame, st othello.State) *Snapshot {
	snap := &Snapshot{
		GameUUID:  g.GameUUID,
		Board:     st.Board,
		Turn:      st.Turn,
		Finished:  st.Finished,
		MoveCount: len(g.Moves),
		StartedAt: g.StartedAt,
		UpdatedAt: g.UpdatedAt,
	}
	if n := len(g.Moves); n > 0 {
		mv := g.Moves[n-1]
		snap.LastMove = &mv
	}
	if st.Finished {
		res := othello.Score(st.Board)
		snap.Result = &res
	} else {
		snap.LegalMoves = othello.LegalMoves(st.Board, st.Turn)
	}
	return snap
}

func (s *Service) preview(moves []othello.Move, st othello.State) *ImportPreview {
	p := &ImportPreview{MoveCount: len(moves), Turn: st.Turn, Finished: st.Finished}
	if st.Finished {
		res := othello.Score(st.Board)
		p.Result = &res
	}
	return p
}
