package jsx

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, c := range src {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Position converts a byte offset to a 1-based line and a 1-based column
// counted in characters.
func (f *File) Position(offset int) (line, column int) {
	offset = max(0, min(offset, len(f.Source)))
	idx := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	start := f.lines[idx]
	return idx + 1, utf8.RuneCount(f.Source[start:offset]) + 1
}

// Line returns the text of the 1-based line n without its line terminator.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lines) {
		return ""
	}
	start := f.lines[n-1]
	end := len(f.Source)
	if n < len(f.lines) {
		end = f.lines[n] - 1
	}
	return string(bytes.TrimSuffix(f.Source[start:end], []byte("\r")))
}
