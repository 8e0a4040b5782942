package timectx

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// RelativeTolerance widens a relative window by half a unit into the past
	// so readings logged slightly before the requested offset still match.
	RelativeTolerance = 0.5

	// DefaultFutureRollback is the slack before a dateless clock reference is
	// assumed to mean yesterday's occurrence instead of a future one.
	DefaultFutureRollback = 30 * time.Minute

	timeLabelFormat = "15:04 02/01/2006"
)

// Parser resolves time references in user messages. Input texts are the
// language-aware variants produced by vntext (normalized and/or lowercased),
// so Vietnamese patterns are written without diacritics.
type Parser struct {
	location       *time.Location
	futureRollback time.Duration
}

// Option customizes a Parser.
type Option func(*Parser)

// WithFutureRollback overrides the future-instant slack used for dateless
// absolute references.
func WithFutureRollback(d time.Duration) Option {
	return func(p *Parser) {
		if d > 0 {
			p.futureRollback = d
		}
	}
}

// NewParser creates a parser for the given IANA timezone string.
func NewParser(timezone string, opts ...Option) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	p := &Parser{location: loc, futureRollback: DefaultFutureRollback}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

var (
	clockRe  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?::(\d{2}))?\b`)
	cueRe    = regexp.MustCompile(`\b(?:vao luc|luc|at)\s+(\d{1,2})\b(?:\s*(?:gio|h|o'clock))?`)
	isoRe    = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	vnDateRe = regexp.MustCompile(`ngay\s+(\d{1,2})\s+thang\s+(\d{1,2})(?:\s+nam\s+(\d{4}))?`)
	dmyRe    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)

	relativeRe = regexp.MustCompile(`\b(\d+|mot|hai|ba|bon|nam|sau|bay|tam|chin|muoi|one|two|three|four|five|six|seven|eight|nine|ten|a|an)\s+(phut|minutes?|mins?|gio|tieng|hours?|hrs?|ngay|days?)\b`)

	numberWords = map[string]int{
		"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
		"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
		"mot": 1, "hai": 2, "ba": 3, "bon": 4, "nam": 5,
		"sau": 6, "bay": 7, "tam": 8, "chin": 9, "muoi": 10,
	}

	relativeMarkers = []string{"truoc", "cach day", " ago"}
	currentCues     = []string{"hien tai", "bay gio", "luc nay", "right now"}
	currentWords    = []string{"now", "current", "currently"}
	pastCues        = []string{"truoc", "ago", "vua roi", "vua xong", "hom qua", "yesterday", "earlier"}

	amHints = []string{"sang", "am", "morning", "sang som"}
	pmHints = []string{"trua", "chieu", "toi", "dem", "pm", "afternoon", "evening", "night", "noon"}
)

// Resolve parses the text variants into a time context, in order: absolute
// reference, relative reference, explicit current cue, bare past cue, and
// finally the current default.
func (p *Parser) Resolve(texts []string, now time.Time) TimeContext {
	if !containsAny(texts, relativeMarkers) {
		for _, t := range texts {
			if abs, ok := p.parseAbsolute(t, now); ok {
				return TimeContext{Kind: KindAbsolute, Absolute: abs}
			}
		}
	}

	for _, t := range texts {
		if rel, ok := p.parseRelative(t, now); ok {
			return TimeContext{Kind: KindRelative, Relative: rel}
		}
	}

	if p.hasCurrentCue(texts) {
		return Current()
	}

	if containsAny(texts, pastCues) {
		return TimeContext{Kind: KindUnsupportedPast}
	}

	return Current()
}

// parseAbsolute extracts an explicit clock reference, an optional date token,
// and an AM/PM hint from one text variant.
func (p *Parser) parseAbsolute(text string, now time.Time) (*AbsoluteInstant, bool) {
	hour, minute, second, ok := parseClock(text)
	if !ok {
		return nil, false
	}

	year, month, day, dateFound := parseDateToken(text, now.In(p.location))

	// A 12-hour reading plus a day-part hint disambiguates the hour.
	if hour <= 12 {
		if hour < 12 && containsAnyWord(text, pmHints) {
			hour += 12
		} else if hour == 12 && containsAnyWord(text, amHints) {
			hour = 0
		}
	}

	requested := time.Date(year, time.Month(month), day, hour, minute, second, 0, p.location)

	// No explicit date and the naive instant is ahead of now: the user almost
	// certainly means the most recent occurrence of that clock time.
	if !dateFound && requested.After(now.Add(p.futureRollback)) {
		requested = requested.AddDate(0, 0, -1)
	}

	label := requested.Format(timeLabelFormat)
	return &AbsoluteInstant{
		RequestedAt:          requested,
		Description:          label,
		RequestedDescription: label,
	}, true
}

// parseClock reads H:M[:S] anywhere in the text, or a bare hour preceded by a
// cue word ("lúc 11", "at 7").
func parseClock(text string) (hour, minute, second int, ok bool) {
	if m := clockRe.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		if m[3] != "" {
			second, _ = strconv.Atoi(m[3])
		}
		if hour <= 23 && minute <= 59 && second <= 59 {
			return hour, minute, second, true
		}
		return 0, 0, 0, false
	}

	if m := cueRe.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[1])
		if hour <= 23 {
			return hour, 0, 0, true
		}
	}

	return 0, 0, 0, false
}

// parseDateToken reads an ISO date, a D/M[/Y] date, or a Vietnamese
// "ngày D tháng M [năm Y]" date. Missing parts default to today's.
func parseDateToken(text string, today time.Time) (year, month, day int, found bool) {
	year, month, day = today.Year(), int(today.Month()), today.Day()

	if m := isoRe.FindStringSubmatch(text); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if validDate(mo, d) {
			return y, mo, d, true
		}
		return year, month, day, false
	}

	if m := vnDateRe.FindStringSubmatch(text); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		if validDate(mo, d) {
			if m[3] != "" {
				year, _ = strconv.Atoi(m[3])
			}
			return year, mo, d, true
		}
		return year, month, day, false
	}

	if m := dmyRe.FindStringSubmatch(text); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		if validDate(mo, d) {
			if m[3] != "" {
				y, _ := strconv.Atoi(m[3])
				if y < 100 {
					y += 2000
				}
				year = y
			}
			return year, mo, d, true
		}
	}

	return year, month, day, false
}

func validDate(month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// parseRelative matches a quantity (digits or number words) immediately
// followed by a unit token. Current cues like "bây giờ" embed a number word
// before "giờ", so they are blanked out first.
func (p *Parser) parseRelative(text string, now time.Time) (*RelativeWindow, bool) {
	cleaned := text
	for _, cue := range currentCues {
		cleaned = strings.ReplaceAll(cleaned, cue, " ")
	}

	m := relativeRe.FindStringSubmatch(cleaned)
	if m == nil {
		return nil, false
	}

	value, err := strconv.Atoi(m[1])
	if err != nil {
		var known bool
		value, known = numberWords[m[1]]
		if !known {
			return nil, false
		}
	}
	if value <= 0 {
		return nil, false
	}

	unit, ok := parseUnit(m[2])
	if !ok {
		return nil, false
	}

	span := unit.Duration()
	windowEnd := now.Add(-time.Duration(value) * span)
	windowStart := now.Add(-time.Duration((float64(value) + RelativeTolerance) * float64(span)))

	return &RelativeWindow{
		Unit:        unit,
		Value:       value,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Description: fmt.Sprintf("%d %s", value, unit),
	}, true
}

func parseUnit(token string) (Unit, bool) {
	switch {
	case strings.HasPrefix(token, "phut"), strings.HasPrefix(token, "min"):
		return UnitMinute, true
	case token == "gio", token == "tieng", strings.HasPrefix(token, "hour"), strings.HasPrefix(token, "hr"):
		return UnitHour, true
	case token == "ngay", strings.HasPrefix(token, "day"):
		return UnitDay, true
	}
	return "", false
}

func (p *Parser) hasCurrentCue(texts []string) bool {
	if containsAny(texts, currentCues) {
		return true
	}
	for _, t := range texts {
		if containsAnyWord(t, currentWords) {
			return true
		}
	}
	return false
}

func containsAny(texts []string, needles []string) bool {
	for _, t := range texts {
		for _, n := range needles {
			if strings.Contains(t, n) {
				return true
			}
		}
	}
	return false
}

func containsAnyWord(text string, words []string) bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	for _, f := range fields {
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}
