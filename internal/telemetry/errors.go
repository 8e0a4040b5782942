package telemetry

import "errors"

var (
	ErrUnknownField  = errors.New("unknown sensor field")
	ErrInvalidPaging = errors.New("pageNum and pageSize must be provided together and be positive")
	ErrInvalidSort   = errors.New("sortBy must be asc or desc")
	ErrInvalidRange  = errors.New("from must not be after to")
)
