package render

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/hoho-hoi/othello/internal/othello"
)

func TestBoardPNG(t *testing.T) {
	b := othello.InitialBoard()
	raw, err := BoardPNG(context.Background(), b, Options{
		Size:     320,
		Hints:    othello.LegalMoves(b, othello.Black),
		LastMove: &othello.Position{Row: 3, Col: 4},
	})
	if err != nil {
		t.Fatalf("BoardPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if got := img.Bounds().Dx(); got != 320 {
		t.Fatalf("width = %d, want 320", got)
	}
}

func TestBoardPNGDefaultSize(t *testing.T) {
	raw, err := BoardPNG(context.Background(), othello.InitialBoard(), Options{})
	if err != nil {
		t.Fatalf("BoardPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if got := img.Bounds().Dx(); got != 640 {
		t.Fatalf("width = %d, want 640", got)
	}
}

func TestBoardPNGCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := BoardPNG(ctx, othello.InitialBoard(), Options{}); err == nil {
		t.Fatalf("expected context error")
	}
}
