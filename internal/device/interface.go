package device

import (
	"context"

	"smartfarm-assistant/internal/model"
)

type UseCase interface {
	// List returns every registered device with its current state.
	List(ctx context.Context) ([]model.DeviceStatus, error)

	// SetState switches a device by name. Builtin actuator names resolve to
	// the realtime control path; anything else goes through the registry.
	SetState(ctx context.Context, name string, on bool) (model.DeviceStatus, error)
}
