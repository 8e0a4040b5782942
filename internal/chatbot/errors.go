package chatbot

import "errors"

var (
	ErrEmptyMessage = errors.New("message is required")
)
