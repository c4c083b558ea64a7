// Package timefmt formats times of day the way a locale writes them on a clock. The 12- or
// 24-hour convention comes from the CLDR short time pattern shipped in go-playground/locales.
package timefmt

import (
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/ar_EG"
	"github.com/go-playground/locales/ar_SA"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/de_DE"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_AU"
	"github.com/go-playground/locales/en_CA"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_IN"
	"github.com/go-playground/locales/en_NZ"
	"github.com/go-playground/locales/en_PH"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/es_ES"
	"github.com/go-playground/locales/es_MX"
	"github.com/go-playground/locales/es_US"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/fr_CA"
	"github.com/go-playground/locales/fr_FR"
	"github.com/go-playground/locales/hi"
	"github.com/go-playground/locales/hi_IN"
	"github.com/go-playground/locales/it"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/ko"
	"github.com/go-playground/locales/ko_KR"
	"github.com/go-playground/locales/nl"
	"github.com/go-playground/locales/pl"
	"github.com/go-playground/locales/pt"
	"github.com/go-playground/locales/pt_BR"
	"github.com/go-playground/locales/ru"
	"github.com/go-playground/locales/sv"
	"github.com/go-playground/locales/tr"
	"github.com/go-playground/locales/zh"
	"github.com/go-playground/locales/zh_Hans"
	"github.com/go-playground/locales/zh_Hant"
	"github.com/go-playground/locales/zh_Hant_HK"
	"github.com/go-playground/locales/zh_Hant_TW"
	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is given or it matches none of the known locales.
const DefaultLocale = "en-US"

// Style is a clock convention.
type Style int

const (
	Clock24 Style = iota
	Clock12
)

const (
	layout24 = "15:04"
	layout12 = "3:04 PM"
)

// known lists the CLDR locales consulted for the hour cycle. The first entry is DefaultLocale.
var known = []locales.Translator{
	en_US.New(),
	en.New(), en_AU.New(), en_CA.New(), en_GB.New(), en_IN.New(), en_NZ.New(), en_PH.New(),
	ar.New(), ar_EG.New(), ar_SA.New(),
	de.New(), de_DE.New(),
	es.New(), es_ES.New(), es_MX.New(), es_US.New(),
	fr.New(), fr_CA.New(), fr_FR.New(),
	hi.New(), hi_IN.New(),
	it.New(), ja.New(),
	ko.New(), ko_KR.New(),
	nl.New(), pl.New(), pt.New(), pt_BR.New(), ru.New(), sv.New(), tr.New(),
	zh.New(), zh_Hans.New(), zh_Hant.New(), zh_Hant_HK.New(), zh_Hant_TW.New(),
}

var (
	matcher language.Matcher
	styles  []Style
)

func init() {
	tags := make([]language.Tag, len(known))
	styles = make([]Style, len(known))
	for i, loc := range known {
		tags[i] = language.MustParse(strings.ReplaceAll(loc.Locale(), "_", "-"))
		styles[i] = hourCycle(loc)
	}
	matcher = language.NewMatcher(tags)
}

// hourCycle reads the convention off the locale's short time format for 23:05.
func hourCycle(loc locales.Translator) Style {
	sample := time.Date(2000, time.January, 1, 23, 5, 0, 0, time.UTC)
	if strings.Contains(loc.FmtTimeShort(sample), "23") {
		return Clock24
	}
	return Clock12
}

// ParseLocale parses a BCP 47 tag.
func ParseLocale(locale string) (language.Tag, error) {
	return language.Parse(locale)
}

// StyleFor returns the clock style of the closest known locale. Empty, unparsable and
// unmatched locales use DefaultLocale.
func StyleFor(locale string) Style {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		return styles[0]
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return styles[0]
	}
	return styles[idx]
}

// Short formats hour and minute only, e.g. "23:00" or "11:00 PM".
func Short(t time.Time, locale string) string {
	if StyleFor(locale) == Clock12 {
		return t.Format(layout12)
	}
	return t.Format(layout24)
}

// ShortClock formats a bare hour and minute.
func ShortClock(hour, minute int, locale string) string {
	return Short(time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC), locale)
}
