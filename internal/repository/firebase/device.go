package firebase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/internal/repository"
	"smartfarm-assistant/pkg/log"
)

type deviceRepository struct {
	l      log.Logger
	client *Client
}

// NewDeviceRepository serves the registered-device collection in Firestore.
func NewDeviceRepository(l log.Logger, client *Client) repository.Devices {
	return &deviceRepository{l: l, client: client}
}

func (r *deviceRepository) ListActive(ctx context.Context) ([]model.DeviceStatus, error) {
	query := map[string]any{
		"structuredQuery": map[string]any{
			"from": []map[string]any{{"collectionId": r.client.cfg.DeviceCollection}},
		},
	}

	var results []runQueryResult
	url := r.client.documentsURL() + ":runQuery"
	if err := r.client.do(ctx, http.MethodPost, url, query, &results); err != nil {
		r.l.Errorf(ctx, "repository.firebase.ListActive: %v", err)
		return nil, err
	}

	devices := make([]model.DeviceStatus, 0, len(results))
	for _, res := range results {
		if res.Document == nil {
			continue
		}
		devices = append(devices, toDeviceStatus(decodeDocument(res.Document)))
	}
	return devices, nil
}

func (r *deviceRepository) FindByName(ctx context.Context, name string) (model.DeviceStatus, error) {
	query := map[string]any{
		"structuredQuery": map[string]any{
			"from":  []map[string]any{{"collectionId": r.client.cfg.DeviceCollection}},
			"where": fieldFilter("name", "EQUAL", name),
			"limit": 1,
		},
	}

	var results []runQueryResult
	url := r.client.documentsURL() + ":runQuery"
	if err := r.client.do(ctx, http.MethodPost, url, query, &results); err != nil {
		r.l.Errorf(ctx, "repository.firebase.FindByName: %v", err)
		return model.DeviceStatus{}, err
	}
	for _, res := range results {
		if res.Document != nil {
			return toDeviceStatus(decodeDocument(res.Document)), nil
		}
	}
	return model.DeviceStatus{}, repository.ErrDeviceNotFound
}

func (r *deviceRepository) SetStatus(ctx context.Context, id string, on bool) error {
	url := fmt.Sprintf("%s/%s/%s?updateMask.fieldPaths=status",
		r.client.documentsURL(), r.client.cfg.DeviceCollection, id)
	body := firestoreDocument{
		Fields: map[string]firestoreValue{"status": encodeValue(on)},
	}
	if err := r.client.do(ctx, http.MethodPatch, url, body, nil); err != nil {
		r.l.Errorf(ctx, "repository.firebase.SetStatus: %v", err)
		return err
	}
	return nil
}

func toDeviceStatus(rec model.Record) model.DeviceStatus {
	id, _ := rec["_id"].(string)
	name, _ := rec["name"].(string)
	on, _ := rec.Bool("status")
	return model.DeviceStatus{
		ID:   id,
		Name: strings.TrimSpace(name),
		On:   on,
	}
}
