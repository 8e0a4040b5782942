package usecase

import (
	"context"
	"errors"
	"strings"

	"smartfarm-assistant/internal/catalog"
	"smartfarm-assistant/internal/device"
	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/internal/repository"
	"smartfarm-assistant/pkg/log"
	"smartfarm-assistant/pkg/vntext"
)

type implUseCase struct {
	l         log.Logger
	devices   repository.Devices
	actuators repository.Actuators
	builtins  []catalog.Device
}

func New(l log.Logger, devices repository.Devices, actuators repository.Actuators) device.UseCase {
	return &implUseCase{
		l:         l,
		devices:   devices,
		actuators: actuators,
		builtins:  catalog.BuiltinDevices(),
	}
}

func (uc implUseCase) List(ctx context.Context) ([]model.DeviceStatus, error) {
	list, err := uc.devices.ListActive(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "device.usecase.List: %v", err)
		return nil, err
	}
	return list, nil
}

func (uc implUseCase) SetState(ctx context.Context, name string, on bool) (model.DeviceStatus, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.DeviceStatus{}, device.ErrNameRequired
	}

	if builtin, ok := catalog.MatchDevice(uc.builtins, []string{vntext.Normalize(name)}); ok {
		var err error
		if on {
			err = uc.actuators.TurnOn(ctx, builtin.ID)
		} else {
			err = uc.actuators.TurnOff(ctx, builtin.ID)
		}
		if err != nil {
			uc.l.Errorf(ctx, "device.usecase.SetState: actuator %s: %v", builtin.ID, err)
			return model.DeviceStatus{}, err
		}
		return model.DeviceStatus{ID: builtin.ID, Name: builtin.Label, On: on}, nil
	}

	found, err := uc.devices.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return model.DeviceStatus{}, device.ErrNotFound
		}
		uc.l.Errorf(ctx, "device.usecase.SetState: find %q: %v", name, err)
		return model.DeviceStatus{}, err
	}

	if err := uc.devices.SetStatus(ctx, found.ID, on); err != nil {
		uc.l.Errorf(ctx, "device.usecase.SetState: update %q: %v", found.ID, err)
		return model.DeviceStatus{}, err
	}
	found.On = on
	return found, nil
}
