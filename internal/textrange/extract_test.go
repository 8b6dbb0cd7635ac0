package textrange

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Strob0t/CodeBridge/internal/domain/lsp"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := NewExtractor(1<<20, time.Minute)
	if err != nil {
		t.Fatalf("NewExtractor: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "src.rs")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func pos(line, char int) lsp.Position { return lsp.Position{Line: line, Character: char} }

func rng(sl, sc, el, ec int) lsp.Range {
	return lsp.Range{Start: pos(sl, sc), End: pos(el, ec)}
}

func TestTextSingleLine(t *testing.T) {
	path := writeFile(t, "fn main() {\n    println!(\"hi\");\n}\n")
	e := newTestExtractor(t)

	if got := e.Text(path, rng(0, 3, 0, 7)); got != "main" {
		t.Errorf("Text = %q, want %q", got, "main")
	}
}

func TestTextFullLine(t *testing.T) {
	path := writeFile(t, "alpha\nbeta\ngamma\n")
	e := newTestExtractor(t)

	if got := e.Text(path, rng(1, 0, 1, 4)); got != "beta" {
		t.Errorf("Text = %q, want %q", got, "beta")
	}
}

func TestTextEmptyRange(t *testing.T) {
	path := writeFile(t, "alpha\n")
	e := newTestExtractor(t)

	if got := e.Text(path, rng(0, 2, 0, 2)); got != "" {
		t.Errorf("Text = %q, want empty", got)
	}
}

func TestTextSingleLineLengthProperty(t *testing.T) {
	path := writeFile(t, "0123456789abcdef\n")
	e := newTestExtractor(t)

	for start := 0; start < 16; start++ {
		for end := start; end <= 16; end++ {
			got := e.Text(path, rng(0, start, 0, end))
			if len(got) != end-start {
				t.Fatalf("len(Text[%d:%d]) = %d, want %d", start, end, len(got), end-start)
			}
		}
	}
}

func TestTextFileURL(t *testing.T) {
	path := writeFile(t, "alpha\n")
	e := newTestExtractor(t)

	if got := e.Text("file://"+path, rng(0, 0, 0, 5)); got != "alpha" {
		t.Errorf("Text = %q, want alpha", got)
	}
}

func TestTextMissingFile(t *testing.T) {
	e := newTestExtractor(t)

	if got := e.Text("/nonexistent/file.rs", rng(0, 0, 0, 5)); got != "" {
		t.Errorf("Text = %q, want empty", got)
	}
}

func TestTextMultiLine(t *testing.T) {
	path := writeFile(t, "first line\nmiddle\nlast line\n")
	e := newTestExtractor(t)

	want := "line\nmiddle\nlast"
	if got := e.Text(path, rng(0, 6, 2, 4)); got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

func TestTextMultiLineNoTrailingNewline(t *testing.T) {
	path := writeFile(t, "aa\nbb\ncc\n")
	e := newTestExtractor(t)

	got := e.Text(path, rng(0, 0, 2, 2))
	if got != "aa\nbb\ncc" {
		t.Errorf("Text = %q, want %q", got, "aa\nbb\ncc")
	}
}

func TestTextLinesOutOfBounds(t *testing.T) {
	path := writeFile(t, "only\n")
	e := newTestExtractor(t)

	// End line far past EOF: existing lines are used, the rest is skipped.
	got := e.Text(path, rng(0, 0, 9, 0))
	if got != "only\n" {
		t.Errorf("Text = %q, want %q", got, "only\n")
	}
}

func TestTextInvertedOffsets(t *testing.T) {
	path := writeFile(t, "alpha\n")
	e := newTestExtractor(t)

	if got := e.Text(path, rng(0, 4, 0, 1)); got != "" {
		t.Errorf("Text = %q, want empty for inverted offsets", got)
	}
}

func TestTextOffsetPastLineEnd(t *testing.T) {
	path := writeFile(t, "ab\n")
	e := newTestExtractor(t)

	if got := e.Text(path, rng(0, 0, 0, 50)); got != "" {
		t.Errorf("Text = %q, want empty when end offset is unmappable", got)
	}
}

func TestTextMultibyteSelection(t *testing.T) {
	path := writeFile(t, "héllo 🎉 done\n")
	e := newTestExtractor(t)

	// "🎉" occupies UTF-16 units 6..8.
	if got := e.Text(path, rng(0, 6, 0, 8)); got != "🎉" {
		t.Errorf("Text = %q, want the emoji", got)
	}
}

func TestTextCRLF(t *testing.T) {
	path := writeFile(t, "one\r\ntwo\r\n")
	e := newTestExtractor(t)

	if got := e.Text(path, rng(1, 0, 1, 3)); got != "two" {
		t.Errorf("Text = %q, want two", got)
	}
}

func TestTextRereadAfterChange(t *testing.T) {
	path := writeFile(t, "old content\n")
	e := newTestExtractor(t)

	if got := e.Text(path, rng(0, 0, 0, 3)); got != "old" {
		t.Fatalf("Text = %q, want old", got)
	}

	// Rewrite with a different mtime; the extractor must not serve stale text.
	if err := os.WriteFile(path, []byte("new content\n"), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if got := e.Text(path, rng(0, 0, 0, 3)); got != "new" {
		t.Errorf("Text = %q, want new", got)
	}
}
