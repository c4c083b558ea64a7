package timefmt

import (
	"testing"
	"time"
)

func TestStyleFor(t *testing.T) {
	tests := []struct {
		locale string
		want   Style
	}{
		{locale: "en-US", want: Clock12},
		{locale: "en", want: Clock12},
		{locale: "en-AU", want: Clock12},
		{locale: "en-GB", want: Clock24},
		{locale: "de-DE", want: Clock24},
		{locale: "fr", want: Clock24},
		{locale: "ja-JP", want: Clock24},
		{locale: "ko-KR", want: Clock12},
		{locale: "ko", want: Clock12},
		{locale: "zh-TW", want: Clock12},
		{locale: "zh-Hant-HK", want: Clock12},
		{locale: "hi-IN", want: Clock12},
		{locale: "es-ES", want: Clock24},
		{locale: "pt-BR", want: Clock24},
		{locale: "", want: Clock12},
		{locale: "not a locale!", want: Clock12},
		{locale: "x-unmatched", want: Clock12},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := StyleFor(tt.locale); got != tt.want {
				t.Errorf("StyleFor(%q) = %v, want %v", tt.locale, got, tt.want)
			}
		})
	}
}

func TestShortClock(t *testing.T) {
	tests := []struct {
		name   string
		hour   int
		minute int
		locale string
		want   string
	}{
		{name: "late evening 12h", hour: 23, minute: 0, locale: "en-US", want: "11:00 PM"},
		{name: "late evening 24h", hour: 23, minute: 0, locale: "en-GB", want: "23:00"},
		{name: "midnight 12h", hour: 0, minute: 5, locale: "en-US", want: "12:05 AM"},
		{name: "midnight 24h", hour: 0, minute: 5, locale: "de-DE", want: "00:05"},
		{name: "noon 12h", hour: 12, minute: 30, locale: "en-US", want: "12:30 PM"},
		{name: "morning 24h", hour: 9, minute: 45, locale: "fr-FR", want: "09:45"},
		{name: "korean evening", hour: 23, minute: 0, locale: "ko-KR", want: "11:00 PM"},
		{name: "taiwan evening", hour: 23, minute: 0, locale: "zh-TW", want: "11:00 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortClock(tt.hour, tt.minute, tt.locale); got != tt.want {
				t.Errorf("ShortClock(%d, %d, %q) = %q, want %q", tt.hour, tt.minute, tt.locale, got, tt.want)
			}
		})
	}
}

func TestShort_DropsSecondsAndDate(t *testing.T) {
	ts := time.Date(2024, 5, 17, 22, 59, 59, 0, time.UTC)
	if got := Short(ts, "en-GB"); got != "22:59" {
		t.Errorf("Short() = %q, want 22:59", got)
	}
}
