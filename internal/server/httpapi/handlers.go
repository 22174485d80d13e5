package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/hoho-hoi/othello/internal/gamelog"
	"github.com/hoho-hoi/othello/internal/othello"
	"github.com/hoho-hoi/othello/internal/render"
	game "github.com/hoho-hoi/othello/internal/service/game"
	"github.com/hoho-hoi/othello/pkg/othellodto"
)

func (s *Server) handleState(ctx *fasthttp.RequestCtx) {
	snap, err := s.svc.Current(ctx)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, s.toBoardState(snap, ""))
}

func (s *Server) handleNew(ctx *fasthttp.RequestCtx) {
	snap, err := s.svc.NewGame(ctx)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	msg := s.cat.RenderOr("game.new", nil, "New game started.")
	s.writeJSON(ctx, fasthttp.StatusOK, s.toBoardState(snap, msg))
}

func (s *Server) handlePlay(ctx *fasthttp.RequestCtx) {
	var req othellodto.PlayRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.writeJSON(ctx, fasthttp.StatusBadRequest, othellodto.ErrorResponse{Error: "bad json"})
		return
	}
	out, err := s.svc.Play(ctx, req.Row, req.Col)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, s.toBoardState(out.Snapshot, s.moveMessage(out)))
}

func (s *Server) handlePass(ctx *fasthttp.RequestCtx) {
	out, err := s.svc.Pass(ctx)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	s.writeJSON(ctx, fasthttp.StatusOK, s.toBoardState(out.Snapshot, s.moveMessage(out)))
}

func (s *Server) handleExport(ctx *fasthttp.RequestCtx) {
	raw, err := s.svc.Export(ctx)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.Response.Header.Set("Content-Disposition", `attachment; filename="othello-game.json"`)
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(raw)
}

func (s *Server) handleImportStage(ctx *fasthttp.RequestCtx) {
	preview, err := s.svc.StageImport(ctx, ctx.PostBody())
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	dto := othellodto.ImportPreview{
		MoveCount: preview.MoveCount,
		Turn:      string(preview.Turn),
		Finished:  preview.Finished,
		Result:    toResult(preview.Result),
	}
	dto.Message = s.cat.RenderOr("import.staged",
		map[string]any{"MoveCount": preview.MoveCount},
		fmt.Sprintf("Import ready: %d moves.", preview.MoveCount))
	s.writeJSON(ctx, fasthttp.StatusOK, dto)
}

func (s *Server) handleImportConfirm(ctx *fasthttp.RequestCtx) {
	snap, err := s.svc.ConfirmImport(ctx)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	msg := s.cat.RenderOr("import.confirmed", nil, "Import confirmed.")
	s.writeJSON(ctx, fasthttp.StatusOK, s.toBoardState(snap, msg))
}

func (s *Server) handleImportCancel(ctx *fasthttp.RequestCtx) {
	if err := s.svc.CancelImport(ctx); err != nil {
		s.writeError(ctx, err)
		return
	}
	msg := s.cat.RenderOr("import.cancelled", nil, "Import discarded.")
	s.writeJSON(ctx, fasthttp.StatusOK, map[string]string{"message": msg})
}

func (s *Server) handleHistory(ctx *fasthttp.RequestCtx) {
	limit := queryInt(ctx, "limit", 0)
	withMoves := string(ctx.QueryArgs().Peek("moves")) == "true"
	games, err := s.svc.History(ctx, limit)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	items := make([]othellodto.HistoryItem, 0, len(games))
	for _, g := range games {
		item := othellodto.HistoryItem{
			ID:         g.ID,
			GameUUID:   g.GameUUID,
			MoveCount:  g.MoveCount,
			BlackScore: g.BlackScore,
			WhiteScore: g.WhiteScore,
			Winner:     g.Winner,
			StartedAt:  g.StartedAt,
			FinishedAt: g.FinishedAt,
		}
		if withMoves {
			item.Moves = json.RawMessage(g.Moves)
		}
		items = append(items, item)
	}
	s.writeJSON(ctx, fasthttp.StatusOK, items)
}

func (s *Server) handleBoardPNG(ctx *fasthttp.RequestCtx) {
	snap, err := s.svc.Current(ctx)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	opts := render.Options{Size: s.imageSize, Hints: snap.LegalMoves}
	if snap.LastMove != nil && snap.LastMove.Position != nil {
		opts.LastMove = snap.LastMove.Position
	}
	raw, err := render.BoardPNG(ctx, snap.Board, opts)
	if err != nil {
		s.writeError(ctx, err)
		return
	}
	ctx.SetContentType("image/png")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(raw)
}

func (s *Server) moveMessage(out *game.MoveOutcome) string {
	if out.Snapshot.Finished && out.Snapshot.Result != nil {
		res := out.Snapshot.Result
		data := map[string]any{"Black": res.Black, "White": res.White, "Winner": string(res.Winner)}
		if res.Winner == "" {
			return s.cat.RenderOr("game.finished_draw", data,
				fmt.Sprintf("Game over. Black %d — White %d.", res.Black, res.White))
		}
		return s.cat.RenderOr("game.finished_winner", data,
			fmt.Sprintf("Game over. %s wins.", res.Winner))
	}
	if out.Move.Pass {
		return s.cat.RenderOr("game.pass", map[string]any{"Color": string(out.Move.Color)},
			fmt.Sprintf("%s passed.", out.Move.Color))
	}
	data := map[string]any{
		"Color": string(out.Move.Color),
		"Row":   out.Move.Position.Row,
		"Col":   out.Move.Position.Col,
	}
	return s.cat.RenderOr("game.move", data,
		fmt.Sprintf("%s played (%d,%d).", out.Move.Color, out.Move.Position.Row, out.Move.Position.Col))
}

func (s *Server) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetStatusCode(status)
	raw, err := json.Marshal(v)
	if err != nil {
		ctx.Error("encode error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetBody(raw)
}

// writeError maps service and engine failures to HTTP statuses while
// keeping the rule-error taxonomy visible to the client.
func (s *Server) writeError(ctx *fasthttp.RequestCtx, err error) {
	var (
		ruleErr   *othello.RuleError
		replayErr *othello.ReplayError
		schemaErr *gamelog.SchemaError
	)
	switch {
	case errors.As(err, &ruleErr):
		key := "error.illegal_move"
		if ruleErr.Kind == othello.KindInvalidPosition {
			key = "error.invalid_position"
		}
		s.writeJSON(ctx, fasthttp.StatusUnprocessableEntity, othellodto.ErrorResponse{
			Error: s.cat.RenderOr(key, nil, ruleErr.Message),
			Kind:  string(ruleErr.Kind),
		})
	case errors.As(err, &replayErr):
		s.writeJSON(ctx, fasthttp.StatusUnprocessableEntity, othellodto.ErrorResponse{
			Error: s.cat.RenderOr("import.rejected", map[string]any{"Reason": replayErr.Error()}, replayErr.Error()),
			Kind:  string(replayErr.Kind),
			Index: replayErr.Index,
		})
	case errors.As(err, &schemaErr):
		s.writeJSON(ctx, fasthttp.StatusBadRequest, othellodto.ErrorResponse{
			Error: s.cat.RenderOr("import.rejected", map[string]any{"Reason": schemaErr.Error()}, schemaErr.Error()),
			Kind:  "schema",
			Index: schemaErr.Index,
		})
	case errors.Is(err, game.ErrPassNotAllowed):
		s.writeJSON(ctx, fasthttp.StatusConflict, othellodto.ErrorResponse{
			Error: s.cat.RenderOr("error.pass_not_allowed", nil, err.Error()),
		})
	case errors.Is(err, game.ErrGameFinished):
		s.writeJSON(ctx, fasthttp.StatusConflict, othellodto.ErrorResponse{
			Error: s.cat.RenderOr("error.game_finished", nil, err.Error()),
		})
	case errors.Is(err, game.ErrConflict):
		s.writeJSON(ctx, fasthttp.StatusConflict, othellodto.ErrorResponse{
			Error: s.cat.RenderOr("error.conflict", nil, err.Error()),
		})
	case errors.Is(err, game.ErrNoStagedImport):
		s.writeJSON(ctx, fasthttp.StatusNotFound, othellodto.ErrorResponse{
			Error: s.cat.RenderOr("import.no_staged", nil, err.Error()),
		})
	case errors.Is(err, game.ErrCorruptLog):
		s.writeJSON(ctx, fasthttp.StatusConflict, othellodto.ErrorResponse{
			Error: s.cat.RenderOr("error.corrupt_log", nil, err.Error()),
		})
	default:
		s.logger.Error("http_internal_error", zap.Error(err))
		s.writeJSON(ctx, fasthttp.StatusInternalServerError, othellodto.ErrorResponse{Error: "internal error"})
	}
}
