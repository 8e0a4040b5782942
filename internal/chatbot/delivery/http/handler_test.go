package http

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"smartfarm-assistant/internal/chatbot"
	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/pkg/vntext"
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

type stubUseCase struct {
	out chatbot.ResolveOutput
	err error
	got chatbot.ResolveInput
}

func (s *stubUseCase) Resolve(ctx context.Context, ip chatbot.ResolveInput) (chatbot.ResolveOutput, error) {
	s.got = ip
	return s.out, s.err
}

func newTestRouter(uc chatbot.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	MapChatbotRoutes(r.Group("/api/v1/chatbot"), New(mockLogger{}, uc))
	return r
}

func TestResolveHandler(t *testing.T) {
	uc := &stubUseCase{out: chatbot.ResolveOutput{
		Reply:    "🌡️ Nhiệt độ: 33.0°C (Cao)",
		Language: vntext.LanguageVietnamese,
		Intent:   model.IntentSensor,
	}}
	router := newTestRouter(uc)

	body := `{"message":"nhiệt độ hiện tại","includeSensors":true,"sensorData":{"temperature":33}}`
	req := httptest.NewRequest("POST", "/api/v1/chatbot", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "33.0°C") {
		t.Errorf("body missing reply: %s", w.Body.String())
	}
	if !uc.got.IncludeSensors {
		t.Error("includeSensors not passed through")
	}
	if v, ok := uc.got.SensorData.Float("temperature"); !ok || v != 33 {
		t.Errorf("sensorData not passed through: %v", uc.got.SensorData)
	}
}

func TestResolveHandlerEmptyMessage(t *testing.T) {
	uc := &stubUseCase{err: chatbot.ErrEmptyMessage}
	router := newTestRouter(uc)

	req := httptest.NewRequest("POST", "/api/v1/chatbot", strings.NewReader(`{"message":""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Thiếu trường") {
		t.Errorf("body missing validation message: %s", w.Body.String())
	}
}
