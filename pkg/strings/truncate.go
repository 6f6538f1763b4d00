package strings

import (
	"strings"
)

// DefaultLogValueMaxLen bounds provider payloads echoed into log lines.
const DefaultLogValueMaxLen = 200

// DefaultTableValueMaxLen bounds values rendered in CLI tables.
const DefaultTableValueMaxLen = 100

// minTruncateLen leaves room for one character plus "...".
const minTruncateLen = 4

// Truncate collapses s to a single line and shortens it to at most maxLen
// runes, ending in "..." when shortened. maxLen below 4 is treated as 4.
func Truncate(s string, maxLen int) string {
	if maxLen < minTruncateLen {
		maxLen = minTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// ForLog truncates a provider payload for a log line.
func ForLog(body []byte) string {
	return Truncate(string(body), DefaultLogValueMaxLen)
}
