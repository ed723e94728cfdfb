package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestServerTranslate(t *testing.T) {
	tests := []struct {
		name  string
		token string
		lang  Lang
		want  string
	}{
		{name: "arabic side", token: "مرحبا|Hello", lang: Arabic, want: "مرحبا"},
		{name: "english side", token: "مرحبا|Hello", lang: English, want: "Hello"},
		{name: "missing arabic falls back", token: "|Hello", lang: Arabic, want: "Hello"},
		{name: "missing english falls back", token: "مرحبا|", lang: English, want: "مرحبا"},
		{name: "monolingual token", token: "Hello", lang: English, want: "Hello"},
		{name: "unknown language", token: "مرحبا|Hello", lang: "fr", want: ""},
		{name: "empty token", token: "", lang: Arabic, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ServerTranslate(tt.token, tt.lang))
		})
	}
}

func TestLimitWordsByChar(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{name: "empty", text: "", limit: 5, want: ""},
		{name: "short text is trimmed only", text: "  hello world ", limit: 20, want: "hello world"},
		{name: "cut at word boundary", text: "the quick brown fox", limit: 12, want: "the quick"},
		{name: "first word too long", text: "extraordinary words", limit: 5, want: ""},
		{name: "arabic counts characters", text: "كلية العلوم الطبية", limit: 12, want: "كلية العلوم"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LimitWordsByChar(tt.text, tt.limit))
		})
	}
}

func TestDisplayDateTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		lang Lang
		want string
	}{
		{name: "zero", t: time.Time{}, lang: English, want: ""},
		{name: "morning", t: time.Date(2021, 3, 7, 9, 5, 0, 0, time.UTC), lang: English, want: "07-03-2021 | 09:05 am"},
		{name: "afternoon arabic", t: time.Date(2021, 12, 25, 15, 30, 0, 0, time.UTC), lang: Arabic, want: "25-12-2021 | 03:30 م"},
		{name: "midnight", t: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), lang: English, want: "01-01-2021 | 12:00 am"},
		{name: "noon", t: time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC), lang: English, want: "01-01-2021 | 12:00 pm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayDateTime(tt.t, tt.lang))
		})
	}
}
