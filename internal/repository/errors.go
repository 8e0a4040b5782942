package repository

import "errors"

var (
	ErrNoRecord       = errors.New("no record found")
	ErrDeviceNotFound = errors.New("device not found")
)
