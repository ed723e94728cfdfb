package locale

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ServerTranslate picks the side of a bilingual "arabic|english" backend string matching lang,
// falling back to the other side when that one is empty. Unknown languages yield "".
func ServerTranslate(token string, lang Lang) string {
	parts := strings.Split(token, "|")
	arabic := parts[0]
	var english string
	if len(parts) > 1 {
		english = parts[1]
	}

	switch lang {
	case Arabic:
		if arabic != "" {
			return arabic
		}
		return english
	case English:
		if english != "" {
			return english
		}
		return arabic
	default:
		return ""
	}
}

// LimitWordsByChar shortens text to the whole words fitting in charLimit characters.
func LimitWordsByChar(text string, charLimit int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= charLimit {
		return text
	}

	var (
		b      strings.Builder
		length int
	)
	for _, word := range strings.Split(text, " ") {
		wordLen := utf8.RuneCountInString(word)
		// each kept word costs a separator
		if length+wordLen >= charLimit {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
		length += wordLen + 1
	}
	return b.String()
}

// DisplayDateTime formats t as "dd-mm-yyyy | hh:mm am" with a 12 hour clock, the meridiem
// translated to lang.
func DisplayDateTime(t time.Time, lang Lang) string {
	if t.IsZero() {
		return ""
	}
	hours := t.Hour() % 12
	if hours == 0 {
		hours = 12
	}
	meridiem := "ص|am"
	if t.Hour() >= 12 {
		meridiem = "م|pm"
	}
	return fmt.Sprintf("%02d-%02d-%d | %02d:%02d %s",
		t.Day(), int(t.Month()), t.Year(), hours, t.Minute(), ServerTranslate(meridiem, lang))
}
