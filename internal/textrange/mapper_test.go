package textrange

import "testing"

func TestByteOffsetASCII(t *testing.T) {
	line := "hello world"

	tests := []struct {
		off    int
		want   int
		wantOK bool
	}{
		{0, 0, true},
		{5, 5, true},
		{11, 11, true}, // end of line
		{12, 0, false}, // past end
		{-1, 0, false},
	}

	for _, tt := range tests {
		got, ok := ByteOffset(line, tt.off)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ByteOffset(%q, %d) = (%d, %v), want (%d, %v)",
				line, tt.off, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestByteOffsetMultibyte(t *testing.T) {
	// "é" is 1 UTF-16 unit, 2 UTF-8 bytes.
	line := "héllo"

	got, ok := ByteOffset(line, 2)
	if !ok || got != 3 {
		t.Errorf("ByteOffset(%q, 2) = (%d, %v), want (3, true)", line, got, ok)
	}

	if n := UTF16Len(line); n != 5 {
		t.Errorf("UTF16Len(%q) = %d, want 5", line, n)
	}
}

func TestByteOffsetSurrogatePair(t *testing.T) {
	// "🎉" is 2 UTF-16 units, 4 UTF-8 bytes.
	line := "a🎉b"

	tests := []struct {
		off  int
		want int
	}{
		{0, 0}, // 'a'
		{1, 1}, // start of the emoji
		{2, 1}, // inside the surrogate pair maps to the rune start
		{3, 5}, // 'b'
		{4, 6}, // end of line
	}

	for _, tt := range tests {
		got, ok := ByteOffset(line, tt.off)
		if !ok || got != tt.want {
			t.Errorf("ByteOffset(%q, %d) = (%d, %v), want (%d, true)",
				line, tt.off, got, ok, tt.want)
		}
	}

	if _, ok := ByteOffset(line, 5); ok {
		t.Error("offset past UTF-16 length should not map")
	}
}

func TestByteOffsetNotFoundIffPastEnd(t *testing.T) {
	lines := []string{"", "x", "héllo", "a🎉b", "汉字テスト"}

	for _, line := range lines {
		total := UTF16Len(line)
		for off := 0; off <= total+2; off++ {
			_, ok := ByteOffset(line, off)
			if wantOK := off <= total; ok != wantOK {
				t.Errorf("ByteOffset(%q, %d): ok = %v, want %v (utf16 len %d)",
					line, off, ok, wantOK, total)
			}
		}
	}
}

func TestByteOffsetOnRuneBoundary(t *testing.T) {
	line := "汉🎉é字"
	total := UTF16Len(line)

	for off := 0; off <= total; off++ {
		got, ok := ByteOffset(line, off)
		if !ok {
			t.Fatalf("ByteOffset(%q, %d) unexpectedly not found", line, off)
		}
		if got < len(line) {
			// Must point at the first byte of a rune.
			if b := line[got]; b >= 0x80 && b < 0xC0 {
				t.Errorf("ByteOffset(%q, %d) = %d is a continuation byte", line, off, got)
			}
		}
	}
}
