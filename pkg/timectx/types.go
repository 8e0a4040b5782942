package timectx

import "time"

// Kind discriminates the resolved temporal scope of a message.
type Kind string

const (
	KindCurrent         Kind = "current"
	KindRelative        Kind = "relative"
	KindAbsolute        Kind = "absolute"
	KindUnsupportedPast Kind = "unsupported_past"
)

// Unit is a supported relative-time unit.
type Unit string

const (
	UnitMinute Unit = "minute"
	UnitHour   Unit = "hour"
	UnitDay    Unit = "day"
)

// Duration returns the span of one unit.
func (u Unit) Duration() time.Duration {
	switch u {
	case UnitMinute:
		return time.Minute
	case UnitHour:
		return time.Hour
	case UnitDay:
		return 24 * time.Hour
	}
	return 0
}

// TimeContext is the resolved temporal scope a sensor query should be
// evaluated against. Exactly one of Relative/Absolute is set for the
// corresponding kind.
type TimeContext struct {
	Kind     Kind
	Relative *RelativeWindow
	Absolute *AbsoluteInstant
}

// RelativeWindow is a "N units ago" reference resolved to a search window
// [WindowStart, WindowEnd] ending in the past.
type RelativeWindow struct {
	Unit        Unit
	Value       int
	WindowStart time.Time
	WindowEnd   time.Time
	Description string
}

// AbsoluteInstant is an explicit clock-time reference resolved to a single
// instant. RequestedAt is fixed at parse time; ActualDescription is annotated
// later once a matching record is found, without touching the requested label.
type AbsoluteInstant struct {
	RequestedAt          time.Time
	Description          string
	RequestedDescription string
	ActualDescription    string
}

// Current returns the default time context.
func Current() TimeContext {
	return TimeContext{Kind: KindCurrent}
}

// IsCurrent reports whether the context refers to the present moment.
func (tc TimeContext) IsCurrent() bool {
	return tc.Kind == KindCurrent
}
