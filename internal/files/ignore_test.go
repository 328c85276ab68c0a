package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vibewolf/vibewolf/internal/ignore"
)

func TestAppendIgnore_IdempotentAndCreates(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".vibewolfignore")
	// Initially missing; call should create and write pattern with newline
	if err := AppendIgnore(dir, "legacy/"); err != nil {
		t.Fatalf("AppendIgnore: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "legacy/\n" {
		t.Fatalf("unexpected content: %q", string(b))
	}
	// Call again: idempotent, no duplicate lines
	if err := AppendIgnore(dir, "legacy/"); err != nil {
		t.Fatalf("AppendIgnore second: %v", err)
	}
	b2, _ := os.ReadFile(p)
	if strings.Count(string(b2), "legacy/") != 1 {
		t.Fatalf("expected single occurrence, got: %q", string(b2))
	}
}

func TestAppendIgnore_FixesMissingNewline(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".vibewolfignore")
	if err := os.WriteFile(p, []byte("a.js"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := AppendIgnore(dir, "b.js"); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(p)
	if string(b) != "a.js\nb.js\n" {
		t.Fatalf("unexpected content: %q", string(b))
	}
	m, err := ignore.Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("src/b.js") || !m.Match("a.js") {
		t.Fatal("appended patterns should match")
	}
}

func TestDefaultIgnores(t *testing.T) {
	m := ignore.New(DefaultIgnores()...)
	if !m.Match("public/app.min.js") || !m.Match("vendor/jquery.js") {
		t.Fatalf("expected defaults to cover minified and vendored code: %#v", DefaultIgnores())
	}
}
