package catalog

import (
	"strings"
	"unicode/utf8"

	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/pkg/vntext"
)

// Device is one controllable target: a builtin actuator wired to the realtime
// store, or a generic device registered in the device collection.
type Device struct {
	// ID is the actuator key for builtins and the registry document ID for
	// generic devices.
	ID    string
	Label string
	Kind  model.DeviceKind

	// Aliases are matched against the language-aware text variants,
	// diacritic-stripped for Vietnamese forms.
	Aliases []string
}

// BuiltinDevices are the two fixed actuators every installation has.
func BuiltinDevices() []Device {
	return []Device{
		{
			ID: "led", Label: "đèn", Kind: model.DeviceKindActuator,
			Aliases: []string{"den", "bong den", "light", "lamp", "led"},
		},
		{
			ID: "pump", Label: "máy bơm", Kind: model.DeviceKindActuator,
			Aliases: []string{"may bom", "bom nuoc", "bom", "pump", "water pump"},
		},
	}
}

// MergeDevices combines the builtin actuators with store-registered devices.
// Builtins win on ID collision so a registry row cannot shadow an actuator.
func MergeDevices(builtins []Device, registered []model.DeviceStatus) []Device {
	out := make([]Device, 0, len(builtins)+len(registered))
	seen := make(map[string]struct{}, len(builtins))
	for _, b := range builtins {
		out = append(out, b)
		seen[b.ID] = struct{}{}
	}
	for _, d := range registered {
		if _, dup := seen[d.ID]; dup {
			continue
		}
		lowered := strings.ToLower(strings.TrimSpace(d.Name))
		aliases := []string{lowered}
		if normalized := vntext.Normalize(d.Name); normalized != lowered {
			aliases = append(aliases, normalized)
		}
		out = append(out, Device{
			ID:      d.ID,
			Label:   d.Name,
			Kind:    model.DeviceKindGeneric,
			Aliases: aliases,
		})
		seen[d.ID] = struct{}{}
	}
	return out
}

// MatchDevice finds the first device whose alias appears in any text variant.
// Longer aliases are tried first so "máy bơm" beats a bare "bơm".
func MatchDevice(devices []Device, texts []string) (Device, bool) {
	type hit struct {
		dev Device
		n   int
	}
	var best hit
	for _, d := range devices {
		for _, a := range d.Aliases {
			if a == "" {
				continue
			}
			if keywordMatch(texts, a) && len(a) > best.n {
				best = hit{dev: d, n: len(a)}
			}
		}
	}
	return best.dev, best.n > 0
}

// ContainsAlias reports whether any alias of the device appears in any text
// variant.
func ContainsAlias(d Device, texts []string) bool {
	return keywordMatch(texts, d.Aliases...)
}

func containsAny(texts []string, needles ...string) bool {
	for _, t := range texts {
		for _, n := range needles {
			if n != "" && strings.Contains(t, n) {
				return true
			}
		}
	}
	return false
}

// Short folded forms like "den" or "bom" appear inside unrelated English
// words ("garden", "bomb"), so keywords of a few runes are matched on word
// boundaries instead of by substring.
const shortKeywordRunes = 3

func keywordMatch(texts []string, keywords ...string) bool {
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if utf8.RuneCountInString(k) <= shortKeywordRunes {
			if vntext.ContainsAnyWord(texts, k) {
				return true
			}
			continue
		}
		if containsAny(texts, k) {
			return true
		}
	}
	return false
}

