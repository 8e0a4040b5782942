package firebase

import (
	"context"
	"net/http"

	"smartfarm-assistant/internal/repository"
	"smartfarm-assistant/pkg/log"
)

type actuatorRepository struct {
	l      log.Logger
	client *Client
}

// NewActuatorRepository switches the builtin actuators by writing their state
// under the realtime control path.
func NewActuatorRepository(l log.Logger, client *Client) repository.Actuators {
	return &actuatorRepository{l: l, client: client}
}

func (r *actuatorRepository) TurnOn(ctx context.Context, key string) error {
	return r.write(ctx, key, true)
}

func (r *actuatorRepository) TurnOff(ctx context.Context, key string) error {
	return r.write(ctx, key, false)
}

func (r *actuatorRepository) write(ctx context.Context, key string, on bool) error {
	url := r.client.databaseURL(r.client.cfg.ControlPath + "/" + key)
	if err := r.client.do(ctx, http.MethodPut, url, on, nil); err != nil {
		r.l.Errorf(ctx, "repository.firebase.actuator.write: %v", err)
		return err
	}
	return nil
}
