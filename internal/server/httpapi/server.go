// Package httpapi exposes the current game to a local UI over HTTP. It is a
// thin orchestration shell: every rule decision is made by the game service
// and the engine underneath it.
package httpapi

import (
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/hoho-hoi/othello/internal/msgcat"
	game "github.com/hoho-hoi/othello/internal/service/game"
)

type Server struct {
	svc       *game.Service
	cat       *msgcat.Catalog
	logger    *zap.Logger
	imageSize int
}

func NewServer(svc *game.Service, cat *msgcat.Catalog, imageSize int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if imageSize <= 0 {
		imageSize = 640
	}
	return &Server{svc: svc, cat: cat, logger: logger, imageSize: imageSize}
}

// Handler routes API requests. fasthttp.RequestCtx doubles as the
// context.Context handed down to the service.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	route, ok := routes[path]
	if !ok {
		ctx.Error("not found", fasthttp.StatusNotFound)
		return
	}
	if method != route.method {
		ctx.Error("method not allowed", fasthttp.StatusMethodNotAllowed)
		return
	}
	route.handle(s, ctx)
}

type routeEntry struct {
	method string
	handle func(*Server, *fasthttp.RequestCtx)
}

var routes = map[string]routeEntry{
	"/api/state":          {fasthttp.MethodGet, (*Server).handleState},
	"/api/new":            {fasthttp.MethodPost, (*Server).handleNew},
	"/api/play":           {fasthttp.MethodPost, (*Server).handlePlay},
	"/api/pass":           {fasthttp.MethodPost, (*Server).handlePass},
	"/api/export":         {fasthttp.MethodGet, (*Server).handleExport},
	"/api/import/stage":   {fasthttp.MethodPost, (*Server).handleImportStage},
	"/api/import/confirm": {fasthttp.MethodPost, (*Server).handleImportConfirm},
	"/api/import/cancel":  {fasthttp.MethodPost, (*Server).handleImportCancel},
	"/api/history":        {fasthttp.MethodGet, (*Server).handleHistory},
	"/api/board.png":      {fasthttp.MethodGet, (*Server).handleBoardPNG},
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("http_listen", zap.String("addr", addr))
	return fasthttp.ListenAndServe(addr, s.Handler)
}

func queryInt(ctx *fasthttp.RequestCtx, key string, def int) int {
	v := string(ctx.QueryArgs().Peek(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
