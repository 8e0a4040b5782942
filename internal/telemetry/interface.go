package telemetry

import (
	"context"

	"smartfarm-assistant/internal/model"
)

type UseCase interface {
	// Realtime returns the live snapshot, optionally narrowed to one field.
	Realtime(ctx context.Context, ip RealtimeInput) (model.Record, error)

	// History returns stored readings filtered and paged per the input.
	History(ctx context.Context, ip HistoryInput) (HistoryOutput, error)
}
