package captions

import (
	"strings"
	"unicode"
)

// ParseSRT flattens an SRT document into space-joined caption text.
//
// A line that is only decimal digits (after trimming) starts a block; the
// line after it is taken as the timing line without looking at it. The
// following non-blank lines are the block text. Input that breaks this
// shape is not detected and may parse oddly.
func ParseSRT(doc string) string {
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")

	var blocks []string
	for i := 0; i < len(lines); i++ {
		if !isIndexLine(lines[i]) {
			continue
		}
		i += 2 // index and timing lines
		var text []string
		for ; i < len(lines) && strings.TrimSpace(lines[i]) != ""; i++ {
			text = append(text, strings.TrimSpace(lines[i]))
		}
		if len(text) > 0 {
			blocks = append(blocks, strings.Join(text, " "))
		}
	}
	return strings.Join(blocks, " ")
}

func isIndexLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	for _, r := range line {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
