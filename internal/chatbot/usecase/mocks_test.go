package usecase

import (
	"context"
	"fmt"
	"sync"

	"smartfarm-assistant/internal/catalog"
	"smartfarm-assistant/internal/chatbot"
	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/internal/repository"
	"smartfarm-assistant/pkg/llm"
	"smartfarm-assistant/pkg/timectx"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, args ...any) {}
func (mockLogger) Debugf(ctx context.Context, template string, args ...any) {}
func (mockLogger) Info(ctx context.Context, args ...any) {}
func (mockLogger) Infof(ctx context.Context, template string, args ...any) {}
func (mockLogger) Warn(ctx context.Context, args ...any) {}
func (mockLogger) Warnf(ctx context.Context, template string, args ...any) {}
func (mockLogger) Error(ctx context.Context, args ...any) {}
func (mockLogger) Errorf(ctx context.Context, template string, args ...any) {}
func (mockLogger) Fatal(ctx context.Context, args ...any) {}
func (mockLogger) Fatalf(ctx context.Context, template string, args ...any) {}
func (mockLogger) DPanic(ctx context.Context, args ...any) {}
func (mockLogger) DPanicf(ctx context.Context, template string, args ...any) {}
func (mockLogger) Panic(ctx context.Context, args ...any) {}
func (mockLogger) Panicf(ctx context.Context, template string, args ...any) {}

// stubProvider replays canned replies in order and records the prompts it was
// given.
type stubProvider struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (s *stubProvider) GenerateContent(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(req.Messages) > 0 && len(req.Messages[0].Parts) > 0 {
		s.prompts = append(s.prompts, req.Messages[0].Parts[0].Text)
	}
	if s.err != nil {
		return nil, s.err
	}

	// An exhausted reply list yields an empty response, which the manager
	// surfaces as ErrEmptyResponse.
	var parts []llm.Part
	if len(s.replies) > 0 {
		parts = []llm.Part{{Text: s.replies[0]}}
		s.replies = s.replies[1:]
	}
	return &llm.Response{
		Content:      llm.Message{Role: "model", Parts: parts},
		ProviderName: "stub",
		ModelName:    "stub-model",
	}, nil
}

func (s *stubProvider) Name() string  { return "stub" }
func (s *stubProvider) Model() string { return "stub-model" }

type fakeTelemetry struct {
	latest    model.Record
	latestErr error

	rangeRecords []model.Record
	rangeErr     error

	nearestBefore model.Record
	nearestAfter  model.Record
}

func (f *fakeTelemetry) Latest(ctx context.Context) (model.Record, error) {
	return f.latest, f.latestErr
}

func (f *fakeTelemetry) Range(ctx context.Context, opt repository.RangeOptions) ([]model.Record, error) {
	return f.rangeRecords, f.rangeErr
}

func (f *fakeTelemetry) Nearest(ctx context.Context, opt repository.NearestOptions) (model.Record, error) {
	var rec model.Record
	if opt.Direction == repository.DirectionBefore {
		rec = f.nearestBefore
	} else {
		rec = f.nearestAfter
	}
	if rec == nil {
		return nil, repository.ErrNoRecord
	}
	return rec, nil
}

type fakeDevices struct {
	list     []model.DeviceStatus
	listErr  error
	setCalls []string
	setErr   error
}

func (f *fakeDevices) ListActive(ctx context.Context) ([]model.DeviceStatus, error) {
	return f.list, f.listErr
}

func (f *fakeDevices) FindByName(ctx context.Context, name string) (model.DeviceStatus, error) {
	for _, d := range f.list {
		if d.Name == name {
			return d, nil
		}
	}
	return model.DeviceStatus{}, repository.ErrDeviceNotFound
}

func (f *fakeDevices) SetStatus(ctx context.Context, id string, on bool) error {
	f.setCalls = append(f.setCalls, fmt.Sprintf("%s=%t", id, on))
	return f.setErr
}

type fakeActuators struct {
	calls []string
	err   error
}

func (f *fakeActuators) TurnOn(ctx context.Context, key string) error {
	f.calls = append(f.calls, "on:"+key)
	return f.err
}

func (f *fakeActuators) TurnOff(ctx context.Context, key string) error {
	f.calls = append(f.calls, "off:"+key)
	return f.err
}

type fakeTopics struct {
	topics map[string][]string
	err    error
}

func (f *fakeTopics) Load(ctx context.Context) (map[string][]string, error) {
	return f.topics, f.err
}

type testEnv struct {
	uc        chatbot.UseCase
	provider  *stubProvider
	telemetry *fakeTelemetry
	devices   *fakeDevices
	actuators *fakeActuators
	topics    *fakeTopics
}

func newTestEnv(replies ...string) *testEnv {
	provider := &stubProvider{replies: replies}
	manager := llm.NewManager([]llm.Provider{provider}, &llm.Config{RetryAttempts: 1}, mockLogger{})
	parser, err := timectx.NewParser("UTC")
	if err != nil {
		panic(err)
	}

	env := &testEnv{
		provider:  provider,
		telemetry: &fakeTelemetry{},
		devices:   &fakeDevices{},
		actuators: &fakeActuators{},
		topics:    &fakeTopics{topics: map[string][]string{}},
	}
	env.uc = New(
		mockLogger{},
		manager,
		env.telemetry,
		env.devices,
		env.actuators,
		env.topics,
		catalog.DefaultSensors(),
		parser,
	)
	return env
}

func (e *testEnv) impl() *implUseCase {
	return e.uc.(*implUseCase)
}
