package jsoncodec

import (
	"strings"
	"time"
)

// Supported date patterns, in the notation clients send them.
const (
	PatternCompact       = "yyyyMMddHHmmss"
	PatternDateTime      = "yyyy-MM-dd HH:mm:ss"
	PatternCompactMillis = "yyyyMMddHHmmssSSS"
	PatternDate          = "yyyy-MM-dd"
	PatternSlashDate     = "yyyy/MM/dd"
	PatternCompactDate   = "yyyyMMdd"

	DefaultPattern = PatternCompact
)

var supportedPatterns = []string{
	PatternCompact,
	PatternDateTime,
	PatternCompactMillis,
	PatternDate,
	PatternSlashDate,
	PatternCompactDate,
}

var layoutReplacer = strings.NewReplacer(
	"yyyy", "2006",
	"MM", "01",
	"dd", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// dateFormat formats and parses times for one pattern. Go layouts need a
// separator before fractional seconds, so a trailing SSS is laid out as
// ".000" and the dot is removed or reinserted around Format and Parse.
type dateFormat struct {
	pattern string
	layout  string
	millis  bool
	loc     *time.Location
}

func newDateFormat(pattern string, loc *time.Location) dateFormat {
	millis := strings.HasSuffix(pattern, "SSS")
	layout := layoutReplacer.Replace(strings.TrimSuffix(pattern, "SSS"))
	if millis {
		layout += ".000"
	}

	return dateFormat{
		pattern: pattern,
		layout:  layout,
		millis:  millis,
		loc:     loc,
	}
}

func (f dateFormat) format(t time.Time) string {
	s := t.In(f.loc).Format(f.layout)
	if f.millis {
		s = s[:len(s)-4] + s[len(s)-3:]
	}
	return s
}

func (f dateFormat) parse(s string) (time.Time, error) {
	if f.millis && len(s) > 3 {
		s = s[:len(s)-3] + "." + s[len(s)-3:]
	}
	return time.ParseInLocation(f.layout, s, f.loc)
}
