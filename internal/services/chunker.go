package services

import (
	"strings"
	"unicode/utf8"
)

// ClipText keeps whole lines from the start of text until adding the next
// one would exceed maxChars runes. A first line that alone exceeds the
// budget is cut at the rune limit.
func ClipText(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	var clipped strings.Builder
	used := 0

	for _, line := range strings.Split(text, "\n") {
		size := utf8.RuneCountInString(line)
		sep := 0
		if clipped.Len() > 0 {
			sep = 1
		}

		if used+sep+size > maxChars {
			if clipped.Len() == 0 {
				clipped.WriteString(getFirstNChars(line, maxChars))
			}
			break
		}

		if sep > 0 {
			clipped.WriteString("\n")
		}
		clipped.WriteString(line)
		used += sep + size
	}

	return clipped.String()
}

func getFirstNChars(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[:n])
}
