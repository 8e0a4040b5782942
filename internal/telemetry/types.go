package telemetry

import (
	"time"

	"smartfarm-assistant/internal/model"
)

type RealtimeInput struct {
	// GetBy narrows the snapshot to a single sensor key.
	GetBy string
}

type HistoryInput struct {
	SortBy   string // "asc" or "desc", default desc
	From     *time.Time
	To       *time.Time
	PageNum  int
	PageSize int
}

type HistoryOutput struct {
	Records  []model.Record
	PageNum  int
	PageSize int
}
