package msgcat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedCatalog(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Render("import.staged", map[string]any{"MoveCount": 12})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(got, "12") {
		t.Fatalf("rendered message missing data: %q", got)
	}
	if _, err := c.Render("no.such.key", nil); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestRenderOrFallsBack(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.RenderOr("no.such.key", nil, "fallback"); got != "fallback" {
		t.Fatalf("RenderOr = %q", got)
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	data := "error:\n  illegal_move: \"nope\"\n"
	if err := os.WriteFile(filepath.Join(dir, "override.yaml"), []byte(data), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Render("error.illegal_move", nil)
	if err != nil || got != "nope" {
		t.Fatalf("override not applied: %q %v", got, err)
	}
	// Untouched keys keep their embedded value.
	if _, err := c.Render("game.new", nil); err != nil {
		t.Fatalf("embedded key lost after override: %v", err)
	}
}
