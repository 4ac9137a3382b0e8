// Package textutil provides display formatting for pipeline output text.
package textutil

import "strings"

// Fill reflows text into lines of at most width columns, collapsing runs of
// whitespace. Words longer than the width are kept whole on their own line.
func Fill(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i == 0 {
			b.WriteString(word)
			lineLen = len(word)
			continue
		}
		if lineLen+1+len(word) > width {
			b.WriteByte('\n')
			b.WriteString(word)
			lineLen = len(word)
			continue
		}
		b.WriteByte(' ')
		b.WriteString(word)
		lineLen += 1 + len(word)
	}
	return b.String()
}
