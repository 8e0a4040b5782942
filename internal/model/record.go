package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Record is one telemetry document as stored, keyed by field name. Values keep
// whatever shape the store returned; the accessors below coerce them.
type Record map[string]any

// Float reads a numeric field. Store backends return numbers as float64,
// json.Number, or decimal strings depending on the wire encoding.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Bool reads an on/off field. Numeric values are truthy when non-zero and
// strings accept the usual boolean spellings plus "on"/"off".
func (r Record) Bool(key string) (bool, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		return t != 0, true
	case int:
		return t != 0, true
	case json.Number:
		f, err := t.Float64()
		return f != 0, err == nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "on", "1", "yes":
			return true, true
		case "false", "off", "0", "no":
			return false, true
		}
	}
	return false, false
}

// Time reads a timestamp field. Supported shapes: time.Time, RFC 3339 strings,
// epoch milliseconds, and the {seconds, nanos} map some stores emit.
func (r Record) Time(key string) (time.Time, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts, true
		}
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts, true
		}
	case float64:
		return fromEpochMillis(int64(t)), true
	case int64:
		return fromEpochMillis(t), true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return fromEpochMillis(n), true
		}
	case map[string]any:
		sec, okSec := Record(t).Float("seconds")
		if !okSec {
			sec, okSec = Record(t).Float("_seconds")
		}
		if okSec {
			nanos, _ := Record(t).Float("nanoseconds")
			if nanos == 0 {
				nanos, _ = Record(t).Float("_nanoseconds")
			}
			return time.Unix(int64(sec), int64(nanos)), true
		}
	}
	return time.Time{}, false
}

// fromEpochMillis treats large magnitudes as milliseconds and the rest as
// seconds, which covers both encodings seen in stored history.
func fromEpochMillis(n int64) time.Time {
	if n > 1e12 || n < -1e12 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}
