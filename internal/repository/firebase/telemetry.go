package firebase

import (
	"context"
	"net/http"

	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/internal/repository"
	"smartfarm-assistant/pkg/log"
)

type telemetryRepository struct {
	l      log.Logger
	client *Client
}

// NewTelemetryRepository reads live snapshots from the Realtime Database and
// history rows from Firestore.
func NewTelemetryRepository(l log.Logger, client *Client) repository.Telemetry {
	return &telemetryRepository{l: l, client: client}
}

func (r *telemetryRepository) Latest(ctx context.Context) (model.Record, error) {
	var raw map[string]any
	url := r.client.databaseURL(r.client.cfg.SensorPath)
	if err := r.client.do(ctx, http.MethodGet, url, nil, &raw); err != nil {
		r.l.Errorf(ctx, "repository.firebase.Latest: %v", err)
		return nil, err
	}
	if len(raw) == 0 {
		return nil, repository.ErrNoRecord
	}
	return model.Record(raw), nil
}

func (r *telemetryRepository) Range(ctx context.Context, opt repository.RangeOptions) ([]model.Record, error) {
	query := r.rangeQuery(opt)

	var results []runQueryResult
	url := r.client.documentsURL() + ":runQuery"
	if err := r.client.do(ctx, http.MethodPost, url, query, &results); err != nil {
		r.l.Errorf(ctx, "repository.firebase.Range: %v", err)
		return nil, err
	}

	records := make([]model.Record, 0, len(results))
	for _, res := range results {
		if res.Document == nil {
			continue
		}
		records = append(records, decodeDocument(res.Document))
	}
	return records, nil
}

func (r *telemetryRepository) Nearest(ctx context.Context, opt repository.NearestOptions) (model.Record, error) {
	op, dir := "GREATER_THAN_OR_EQUAL", "ASCENDING"
	if opt.Direction == repository.DirectionBefore {
		op, dir = "LESS_THAN_OR_EQUAL", "DESCENDING"
	}

	field := r.client.cfg.TimeField
	query := map[string]any{
		"structuredQuery": map[string]any{
			"from":  []map[string]any{{"collectionId": r.client.cfg.HistoryCollection}},
			"where": fieldFilter(field, op, opt.At),
			"orderBy": []map[string]any{
				{"field": map[string]string{"fieldPath": field}, "direction": dir},
			},
			"limit": 1,
		},
	}

	var results []runQueryResult
	url := r.client.documentsURL() + ":runQuery"
	if err := r.client.do(ctx, http.MethodPost, url, query, &results); err != nil {
		r.l.Errorf(ctx, "repository.firebase.Nearest: %v", err)
		return nil, err
	}
	for _, res := range results {
		if res.Document != nil {
			return decodeDocument(res.Document), nil
		}
	}
	return nil, repository.ErrNoRecord
}

func (r *telemetryRepository) rangeQuery(opt repository.RangeOptions) map[string]any {
	field := r.client.cfg.TimeField

	dir := "ASCENDING"
	if opt.Order == repository.OrderDesc {
		dir = "DESCENDING"
	}

	var filters []map[string]any
	if !opt.From.IsZero() {
		filters = append(filters, fieldFilter(field, "GREATER_THAN_OR_EQUAL", opt.From))
	}
	if !opt.To.IsZero() {
		filters = append(filters, fieldFilter(field, "LESS_THAN_OR_EQUAL", opt.To))
	}

	structured := map[string]any{
		"from": []map[string]any{{"collectionId": r.client.cfg.HistoryCollection}},
		"orderBy": []map[string]any{
			{"field": map[string]string{"fieldPath": field}, "direction": dir},
		},
	}
	switch len(filters) {
	case 1:
		structured["where"] = filters[0]
	case 2:
		structured["where"] = map[string]any{
			"compositeFilter": map[string]any{"op": "AND", "filters": filters},
		}
	}
	if opt.Limit > 0 {
		structured["limit"] = opt.Limit
	}
	return map[string]any{"structuredQuery": structured}
}

func fieldFilter(field, op string, value any) map[string]any {
	return map[string]any{
		"fieldFilter": map[string]any{
			"field": map[string]string{"fieldPath": field},
			"op":    op,
			"value": encodeValue(value),
		},
	}
}
