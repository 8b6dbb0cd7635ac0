// Package textrange converts LSP positions (UTF-16 code units) into byte
// offsets and extracts the text covered by a range from files on disk.
package textrange

// ByteOffset maps a UTF-16 code-unit offset within line to a byte offset.
// It returns false when utf16Offset lies past the end of the line; callers
// treat that as "no usable text", not an error.
func ByteOffset(line string, utf16Offset int) (int, bool) {
	if utf16Offset < 0 {
		return 0, false
	}

	cur := 0
	for byteOff, r := range line {
		if cur == utf16Offset {
			return byteOff, true
		}

		w := utf16Width(r)

		// An offset inside a surrogate pair maps to the start of the rune.
		if utf16Offset < cur+w {
			return byteOff, true
		}
		cur += w
	}

	// Cursor at end of line.
	if cur == utf16Offset {
		return len(line), true
	}

	return 0, false
}

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16Width(r)
	}
	return n
}

func utf16Width(r rune) int {
	if r >= 0x10000 {
		return 2 // surrogate pair
	}
	return 1
}
