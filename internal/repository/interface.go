// Package repository defines the storage ports shared by the chatbot,
// telemetry, and device domains.
package repository

import (
	"context"
	"time"

	"smartfarm-assistant/internal/model"
)

// Order is a sort direction for range queries.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Direction selects which side of an instant a nearest lookup searches.
type Direction string

const (
	DirectionBefore Direction = "before"
	DirectionAfter  Direction = "after"
)

// Telemetry reads sensor snapshots and historical readings.
type Telemetry interface {
	// Latest returns the live snapshot from the realtime store.
	Latest(ctx context.Context) (model.Record, error)

	// Range returns history records matching the filter, ordered by the
	// timestamp field.
	Range(ctx context.Context, opt RangeOptions) ([]model.Record, error)

	// Nearest returns the single record closest to the instant on the given
	// side, or ErrNoRecord.
	Nearest(ctx context.Context, opt NearestOptions) (model.Record, error)
}

// Devices reads and mutates the registered-device collection.
type Devices interface {
	ListActive(ctx context.Context) ([]model.DeviceStatus, error)
	FindByName(ctx context.Context, name string) (model.DeviceStatus, error)
	SetStatus(ctx context.Context, id string, on bool) error
}

// Actuators switches the builtin actuators through the realtime store.
type Actuators interface {
	TurnOn(ctx context.Context, key string) error
	TurnOff(ctx context.Context, key string) error
}

// Topics loads the grounding knowledge base: category name to fact lines.
type Topics interface {
	Load(ctx context.Context) (map[string][]string, error)
}

// RangeOptions filters a history query.
type RangeOptions struct {
	From  time.Time
	To    time.Time
	Order Order
	Limit int
}

// NearestOptions targets a nearest-record lookup.
type NearestOptions struct {
	At        time.Time
	Direction Direction
}
