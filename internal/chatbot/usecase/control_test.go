package usecase

import (
	"context"
	"strings"
	"testing"

	"smartfarm-assistant/internal/chatbot"
	"smartfarm-assistant/internal/model"
)

func TestControlFastPath(t *testing.T) {
	env := newTestEnv()

	out, err := env.uc.Resolve(context.Background(), chatbot.ResolveInput{Message: "bật máy bơm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(env.provider.prompts) != 0 {
		t.Errorf("fast path must not call the model, prompts = %v", env.provider.prompts)
	}
	if len(env.actuators.calls) != 1 || env.actuators.calls[0] != "on:pump" {
		t.Fatalf("actuator calls = %v, want [on:pump]", env.actuators.calls)
	}
	if !strings.Contains(out.Reply, "Đã bật") {
		t.Errorf("reply = %q", out.Reply)
	}
}

func TestControlTurnOffLight(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Resolve(context.Background(), chatbot.ResolveInput{Message: "tắt đèn giúp tôi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.actuators.calls) != 1 || env.actuators.calls[0] != "off:led" {
		t.Fatalf("actuator calls = %v, want [off:led]", env.actuators.calls)
	}
}

func TestControlDedup(t *testing.T) {
	// Two aliases of the same actuator with the same action collapse to one
	// execution.
	env := newTestEnv(`{"commands":[{"target":"light","action":"on"},{"target":"den","action":"on"}]}`)

	_, err := env.uc.Resolve(context.Background(), chatbot.ResolveInput{Message: "turn on the light and the lamp"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.actuators.calls) != 1 || env.actuators.calls[0] != "on:led" {
		t.Fatalf("actuator calls = %v, want [on:led]", env.actuators.calls)
	}
}

func TestControlInvalidEntriesDropped(t *testing.T) {
	env := newTestEnv(`{"commands":[
		{"target":"spaceship","action":"on"},
		{"target":"pump","action":"explode"},
		{"target":"pump","action":"off"}
	]}`)

	_, err := env.uc.Resolve(context.Background(), chatbot.ResolveInput{Message: "turn off the pump and the fan"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.actuators.calls) != 1 || env.actuators.calls[0] != "off:pump" {
		t.Fatalf("actuator calls = %v, want [off:pump]", env.actuators.calls)
	}
}

func TestControlAIFailureFallsBackToRule(t *testing.T) {
	// Ambiguous (connector present) so the AI path runs, returns garbage, and
	// the rule-based single command still executes.
	env := newTestEnv("not json at all")

	_, err := env.uc.Resolve(context.Background(), chatbot.ResolveInput{Message: "bật máy bơm, nhanh lên"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.actuators.calls) != 1 || env.actuators.calls[0] != "on:pump" {
		t.Fatalf("actuator calls = %v, want [on:pump]", env.actuators.calls)
	}
}

func TestControlGenericDevice(t *testing.T) {
	env := newTestEnv()
	env.devices.list = []model.DeviceStatus{
		{ID: "device2", Name: "device2", On: false},
	}

	out, err := env.uc.Resolve(context.Background(), chatbot.ResolveInput{Message: "bật thiết bị hai"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(env.devices.setCalls) != 1 || env.devices.setCalls[0] != "device2=true" {
		t.Fatalf("status writes = %v, want [device2=true]", env.devices.setCalls)
	}
	if len(env.actuators.calls) != 0 {
		t.Errorf("no actuator should fire for a generic device: %v", env.actuators.calls)
	}
	if !strings.Contains(out.Reply, "✅") {
		t.Errorf("reply = %q", out.Reply)
	}
}

func TestControlNoMatchedDevice(t *testing.T) {
	env := newTestEnv(`{"commands":[]}`)

	out, err := env.uc.Resolve(context.Background(), chatbot.ResolveInput{Message: "bật quạt trần"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.actuators.calls) != 0 {
		t.Errorf("nothing should execute: %v", env.actuators.calls)
	}
	if !strings.Contains(out.Reply, "không nhận ra") {
		t.Errorf("expected a not-found reply, got %q", out.Reply)
	}
}

func TestCanonicalizeDeviceTokens(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "bat thiet bi hai", want: "bat device2"},
		{in: "turn on device one", want: "turn on device1"},
		{in: "tat device 3", want: "tat device3"},
		{in: "bat den", want: "bat den"},
	}

	for _, tt := range tests {
		got := canonicalizeDeviceTokens([]string{tt.in})
		if got[0] != tt.want {
			t.Errorf("canonicalizeDeviceTokens(%q) = %q, want %q", tt.in, got[0], tt.want)
		}
	}
}
