package device

import "errors"

var (
	ErrNameRequired = errors.New("device name is required")
	ErrNotFound     = errors.New("device not found")
)
