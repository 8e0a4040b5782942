package model

import "fmt"

// DeviceKind separates the fixed actuators from store-registered devices.
type DeviceKind string

const (
	DeviceKindActuator DeviceKind = "actuator"
	DeviceKindGeneric  DeviceKind = "generic"
)

// CommandAction is the requested switch state.
type CommandAction string

const (
	ActionOn  CommandAction = "on"
	ActionOff CommandAction = "off"
)

// DeviceStatus is one registered device row with its current state.
type DeviceStatus struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	On   bool   `json:"status"`
}

// ControlCommand is one resolved actuation order. Device holds the actuator
// key for builtins and the registry document ID for generic devices; Label is
// the user-facing name used in the reply.
type ControlCommand struct {
	Kind   DeviceKind
	Device string
	Label  string
	Action CommandAction
}

// Key identifies a command for deduplication: repeating the same order for the
// same target collapses, while on+off for one target stays distinct.
func (c ControlCommand) Key() string {
	return fmt.Sprintf("%s|%s|%s", c.Kind, c.Device, c.Action)
}
