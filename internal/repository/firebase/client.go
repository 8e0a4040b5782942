// Package firebase implements the storage ports over the Firebase REST
// surface: the Realtime Database for live state and Firestore for history and
// the device registry.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
)

const (
	firestoreBaseURL = "https://firestore.googleapis.com/v1"

	defaultSensorPath        = "sensor_data"
	defaultControlPath       = "control"
	defaultHistoryCollection = "history_sensor_data"
	defaultDeviceCollection  = "active_device"
	defaultTimeField         = "dateTime"
	defaultTimeout           = 15 * time.Second
)

var scopes = []string{
	"https://www.googleapis.com/auth/datastore",
	"https://www.googleapis.com/auth/firebase.database",
	"https://www.googleapis.com/auth/userinfo.email",
}

// Config carries the project coordinates and store layout.
type Config struct {
	ProjectID   string
	DatabaseURL string

	// CredentialsFile is a service-account JSON key. Empty means
	// unauthenticated access, which only works against emulators or open
	// rules.
	CredentialsFile string

	SensorPath        string
	ControlPath       string
	HistoryCollection string
	DeviceCollection  string
	TimeField         string

	HTTPClient *http.Client
}

func (c *Config) applyDefaults() {
	if c.SensorPath == "" {
		c.SensorPath = defaultSensorPath
	}
	if c.ControlPath == "" {
		c.ControlPath = defaultControlPath
	}
	if c.HistoryCollection == "" {
		c.HistoryCollection = defaultHistoryCollection
	}
	if c.DeviceCollection == "" {
		c.DeviceCollection = defaultDeviceCollection
	}
	if c.TimeField == "" {
		c.TimeField = defaultTimeField
	}
}

// Client is a thin authenticated HTTP client over both Firebase stores.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient validates the config and wires service-account authentication
// when a credentials file is configured.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("firebase: project id is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("firebase: database url is required")
	}
	cfg.applyDefaults()

	httpClient := cfg.HTTPClient
	if cfg.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("firebase: read credentials: %w", err)
		}
		conf, err := google.JWTConfigFromJSON(data, scopes...)
		if err != nil {
			return nil, fmt.Errorf("firebase: parse credentials: %w", err)
		}
		httpClient = conf.Client(ctx)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{cfg: cfg, http: httpClient}, nil
}

func (c *Client) databaseURL(path string) string {
	return fmt.Sprintf("%s/%s.json", strings.TrimRight(c.cfg.DatabaseURL, "/"), strings.Trim(path, "/"))
}

func (c *Client) documentsURL() string {
	return fmt.Sprintf("%s/projects/%s/databases/(default)/documents", firestoreBaseURL, c.cfg.ProjectID)
}

// do sends one request and decodes the JSON response into out when non-nil.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("firebase: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("firebase: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("firebase: send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("firebase: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("firebase: %s %s: status %d: %s", method, url, resp.StatusCode, truncate(string(raw), 200))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("firebase: decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
