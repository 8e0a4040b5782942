// Package catalog holds the injectable sensor and device definitions the
// resolution pipeline matches user messages against.
package catalog

import (
	"strings"

	"smartfarm-assistant/internal/model"
)

// Level is a threshold band classification for a numeric reading.
type Level string

const (
	LevelLow    Level = "low"
	LevelNormal Level = "normal"
	LevelHigh   Level = "high"
)

// Bands classifies a reading as low/normal/high around two cut points.
type Bands struct {
	LowBelow  float64
	HighAbove float64
}

// Classify buckets a value into its band.
func (b Bands) Classify(v float64) Level {
	switch {
	case v < b.LowBelow:
		return LevelLow
	case v > b.HighAbove:
		return LevelHigh
	default:
		return LevelNormal
	}
}

// LabelVI is the Vietnamese annotation for a band.
func (l Level) LabelVI() string {
	switch l {
	case LevelLow:
		return "Thấp"
	case LevelHigh:
		return "Cao"
	default:
		return "Bình thường"
	}
}

// LabelEN is the English annotation for a band.
func (l Level) LabelEN() string {
	switch l {
	case LevelLow:
		return "Low"
	case LevelHigh:
		return "High"
	default:
		return "Normal"
	}
}

// Sensor describes one readable field of a telemetry record: how users name
// it, how to pull it out of a snapshot, and how to present it.
type Sensor struct {
	Key     string
	LabelVI string
	LabelEN string
	Unit    string
	Icon    string

	// Status marks on/off sensors whose value renders as a state label
	// instead of a number.
	Status bool

	// Keywords are matched against the language-aware text variants, so
	// Vietnamese entries are listed diacritic-stripped.
	Keywords []string

	// Bands, when set, appends a low/normal/high annotation to the reading.
	Bands *Bands
}

// Value extracts this sensor's reading from a record. For status sensors the
// result is a bool, otherwise a float64.
func (s Sensor) Value(r model.Record) (any, bool) {
	if s.Status {
		v, ok := r.Bool(s.Key)
		return v, ok
	}
	v, ok := r.Float(s.Key)
	return v, ok
}

// Label returns the display name for the language, falling back to Vietnamese.
func (s Sensor) Label(lang string) string {
	if lang == "en" && s.LabelEN != "" {
		return s.LabelEN
	}
	return s.LabelVI
}

// Sensors is an ordered sensor catalog.
type Sensors struct {
	defs []Sensor
}

// NewSensors builds a catalog from explicit definitions.
func NewSensors(defs []Sensor) Sensors {
	return Sensors{defs: defs}
}

// DefaultSensors is the farm's standard sensor set.
func DefaultSensors() Sensors {
	return NewSensors([]Sensor{
		{
			Key: "temperature", LabelVI: "Nhiệt độ", LabelEN: "Temperature",
			Unit: "°C", Icon: "🌡️",
			Keywords: []string{"nhiet do", "temperature", "temp"},
			Bands:    &Bands{LowBelow: 20, HighAbove: 30},
		},
		{
			Key: "humidity", LabelVI: "Độ ẩm không khí", LabelEN: "Air humidity",
			Unit: "%", Icon: "💧",
			Keywords: []string{"do am", "humidity"},
			Bands:    &Bands{LowBelow: 60, HighAbove: 85},
		},
		{
			Key: "soilMoisture", LabelVI: "Độ ẩm đất", LabelEN: "Soil moisture",
			Unit: "%", Icon: "🌱",
			Keywords: []string{"do am dat", "soil moisture", "soil"},
			Bands:    &Bands{LowBelow: 30, HighAbove: 60},
		},
		{
			Key: "waterLevel", LabelVI: "Mực nước", LabelEN: "Water level",
			Unit: "cm", Icon: "🚰",
			Keywords: []string{"muc nuoc", "water level"},
		},
		{
			Key: "rainfall", LabelVI: "Lượng mưa", LabelEN: "Rainfall",
			Unit: "mm", Icon: "🌧️",
			Keywords: []string{"luong mua", "rainfall", "rain"},
		},
		{
			Key: "lightStatus", LabelVI: "Đèn", LabelEN: "Light",
			Icon: "💡", Status: true,
			Keywords: []string{"den", "anh sang", "light"},
		},
		{
			Key: "pumpStatus", LabelVI: "Máy bơm", LabelEN: "Pump",
			Icon: "⚙️", Status: true,
			Keywords: []string{"may bom", "bom", "pump"},
		},
	})
}

// All returns the definitions in catalog order.
func (s Sensors) All() []Sensor {
	return s.defs
}

// ByKey finds a sensor by its record key.
func (s Sensors) ByKey(key string) (Sensor, bool) {
	for _, d := range s.defs {
		if d.Key == key {
			return d, true
		}
	}
	return Sensor{}, false
}

// Match returns the sensors mentioned in the text variants, in catalog order.
// "Độ ẩm đất" must resolve to soil moisture alone, so when the soil form is
// present the bare humidity hit it contains is suppressed.
func (s Sensors) Match(texts []string) []Sensor {
	soil := containsAny(texts, "do am dat", "soil")

	var out []Sensor
	for _, d := range s.defs {
		if d.Key == "humidity" && soil && !containsHumidityAlone(texts) {
			continue
		}
		if keywordMatch(texts, d.Keywords...) {
			out = append(out, d)
		}
	}
	return out
}

// containsHumidityAlone reports a humidity mention that is not part of the
// soil-moisture phrase.
func containsHumidityAlone(texts []string) bool {
	for _, t := range texts {
		stripped := strings.ReplaceAll(t, "do am dat", " ")
		stripped = strings.ReplaceAll(stripped, "soil moisture", " ")
		if containsAny([]string{stripped}, "do am", "humidity") {
			return true
		}
	}
	return false
}
