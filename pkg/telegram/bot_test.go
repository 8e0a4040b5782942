package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendMessage(t *testing.T) {
	var got SendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sendMessage" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		_ = json.NewEncoder(w).Encode(APIResponse{OK: true})
	}))
	defer server.Close()

	bot := NewBot("test-token")
	bot.SetAPIURL(server.URL)

	if err := bot.SendMessage(42, "🌡️ Nhiệt độ: 28.0°C"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ChatID != 42 || got.Text != "🌡️ Nhiệt độ: 28.0°C" {
		t.Errorf("payload = %+v", got)
	}
}

func TestSendMessageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	bot := NewBot("test-token")
	bot.SetAPIURL(server.URL)

	if err := bot.SendMessage(42, "hi"); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

func TestSetWebhookFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(APIResponse{OK: false, Description: "bad url"})
	}))
	defer server.Close()

	bot := NewBot("test-token")
	bot.SetAPIURL(server.URL)

	if err := bot.SetWebhook("not-a-url"); err == nil {
		t.Fatal("expected an error when telegram rejects the webhook")
	}
}
