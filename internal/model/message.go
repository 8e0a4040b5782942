package model

// Intent is the resolved purpose of a user message.
type Intent string

const (
	IntentControl Intent = "control"
	IntentSensor  Intent = "sensor"
	IntentInfo    Intent = "info"
	IntentUnknown Intent = "unknown"
)

// Message is one inbound chat message after transport decoding.
type Message struct {
	Text string `json:"message"`

	// SensorData is an optional caller-provided snapshot. When present it is
	// preferred over a store read for current-value answers.
	SensorData Record `json:"sensorData,omitempty"`

	// IncludeSensors asks for the live snapshot to be attached as grounding
	// context even for non-sensor intents.
	IncludeSensors bool `json:"includeSensors,omitempty"`
}
