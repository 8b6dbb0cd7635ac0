package textrange

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/Strob0t/CodeBridge/internal/domain/lsp"
)

const fileScheme = "file://"

// Extractor reads the text covered by a range from files on disk. File
// contents are cached keyed by path, mtime and size, so a selection burst
// over the same file does not hit the filesystem per event.
type Extractor struct {
	cache *ristretto.Cache[string, string]
	ttl   time.Duration
}

// NewExtractor creates an Extractor whose cache holds at most maxCostBytes
// of file content, each entry for at most ttl.
func NewExtractor(maxCostBytes int64, ttl time.Duration) (*Extractor, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: maxCostBytes / 100 * 10, // ~10x expected items
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("extract cache: %w", err)
	}
	return &Extractor{cache: cache, ttl: ttl}, nil
}

// Close releases the cache.
func (e *Extractor) Close() {
	e.cache.Close()
}

// Text returns the text covered by r in filePath. A "file://" scheme prefix
// is stripped; other path forms pass through unchanged. Every failure mode
// (missing file, unmappable offset, inverted range) degrades to an empty
// string with a logged warning — never an error to the caller.
func (e *Extractor) Text(filePath string, r lsp.Range) string {
	path := strings.TrimPrefix(filePath, fileScheme)

	content, ok := e.readFile(path)
	if !ok {
		return ""
	}

	lines := splitLines(content)

	if r.Start.Line == r.End.Line {
		return singleLine(lines, r)
	}
	return multiLine(lines, r)
}

// readFile returns the file content, from cache when the file is unchanged.
func (e *Extractor) readFile(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		slog.Warn("failed to stat file for range extraction", "path", path, "error", err)
		return "", false
	}

	key := fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size())
	if content, hit := e.cache.Get(key); hit {
		return content, true
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: paths come from the editor protocol
	if err != nil {
		slog.Warn("failed to read file for range extraction", "path", path, "error", err)
		return "", false
	}

	content := string(data)
	e.cache.SetWithTTL(key, content, int64(len(content)), e.ttl)
	return content, true
}

func singleLine(lines []string, r lsp.Range) string {
	if r.Start.Line < 0 || r.Start.Line >= len(lines) {
		return ""
	}
	line := lines[r.Start.Line]

	startByte, okStart := ByteOffset(line, r.Start.Character)
	endByte, okEnd := ByteOffset(line, r.End.Character)
	if !okStart || !okEnd || startByte > endByte {
		return ""
	}
	return line[startByte:endByte]
}

func multiLine(lines []string, r lsp.Range) string {
	var b strings.Builder

	for li := r.Start.Line; li <= r.End.Line; li++ {
		if li < 0 || li >= len(lines) {
			continue // lines outside the file are silently skipped
		}
		line := lines[li]

		switch {
		case li == r.Start.Line:
			if startByte, ok := ByteOffset(line, r.Start.Character); ok {
				b.WriteString(line[startByte:])
			}
		case li == r.End.Line:
			if endByte, ok := ByteOffset(line, r.End.Character); ok {
				b.WriteString(line[:endByte])
			}
		default:
			b.WriteString(line)
		}

		if li < r.End.Line {
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// splitLines splits on '\n', dropping a trailing '\r' from each line so CRLF
// files behave like LF files. A final newline does not produce a trailing
// empty line.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
