package stringutils

import (
	"strings"
	"unicode/utf8"
)

const (
	// ConversationTitleLength bounds the title derived from the first user message.
	ConversationTitleLength = 50
	// ReplyTitleLength bounds the title backfilled from the first assistant reply.
	ReplyTitleLength = 30
)

// TruncateRunes returns the first maxRunes characters of s, or s when it is shorter.
// Cuts on rune boundaries so multi-byte characters are never split.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	count := 0
	for i := range s {
		if count == maxRunes {
			return s[:i]
		}
		count++
	}
	return s
}

// ConversationTitle derives a conversation title from the opening message.
func ConversationTitle(message string) string {
	return TruncateRunes(message, ConversationTitleLength)
}

// ReplyTitle derives a conversation title from the first assistant reply.
// Leading whitespace is dropped since models often open with a newline.
func ReplyTitle(reply string) string {
	return TruncateRunes(strings.TrimLeft(reply, " \t\r\n"), ReplyTitleLength)
}
