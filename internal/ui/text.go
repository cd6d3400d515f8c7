package ui

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Default truncation settings for list/show output.
const (
	DefaultMaxLines     = 15 // Max body lines before list display truncates
	DefaultContextLines = 5  // Lines kept at beginning and end when truncating
	DefaultMaxChars     = 120 // Max chars for one-line summaries
)

// TruncateLines truncates text to maxLines, showing context from beginning
// and end with a muted divider noting how many lines were hidden.
// Text with fewer lines is returned unchanged.
func TruncateLines(text string, maxLines, contextLines int) string {
	if text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	totalLines := len(lines)

	if totalLines <= maxLines {
		return text
	}

	if contextLines < 1 {
		contextLines = DefaultContextLines
	}
	// If maxLines is too small for head+tail context, just show the head.
	if maxLines < contextLines*2+1 {
		return strings.Join(lines[:maxLines], "\n") + "\n..."
	}

	hiddenLines := totalLines - contextLines*2

	var result strings.Builder
	result.WriteString(strings.Join(lines[:contextLines], "\n"))
	result.WriteString("\n")
	result.WriteString(RenderMuted("... (" + strconv.Itoa(hiddenLines) + " lines hidden, use --full) ..."))
	result.WriteString("\n")
	result.WriteString(strings.Join(lines[totalLines-contextLines:], "\n"))

	return result.String()
}

// Summary returns the first line of text, truncated to maxChars at a word
// boundary with an ellipsis.
func Summary(text string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	runes := []rune(text)
	cut := maxChars - 1
	// Back up to the last space so words aren't split.
	for i := cut; i > maxChars/2; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}
	return strings.TrimRight(string(runes[:cut]), " ") + "…"
}
