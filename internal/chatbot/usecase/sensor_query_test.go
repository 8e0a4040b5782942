package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"smartfarm-assistant/internal/catalog"
	"smartfarm-assistant/internal/model"
	"smartfarm-assistant/pkg/timectx"
	"smartfarm-assistant/pkg/vntext"
)

func temperatureSensor(t *testing.T) catalog.Sensor {
	t.Helper()
	s, ok := catalog.DefaultSensors().ByKey("temperature")
	if !ok {
		t.Fatal("temperature sensor missing")
	}
	return s
}

func TestAnswerAbsoluteNearestSelection(t *testing.T) {
	env := newTestEnv()
	requested := time.Date(2024, 5, 1, 11, 30, 0, 0, time.UTC)

	// Candidates at 200s before and 45s after: the 45s one wins and counts
	// as exact.
	env.telemetry.nearestBefore = model.Record{"temperature": 31.0, "dateTime": requested.Add(-200 * time.Second)}
	env.telemetry.nearestAfter = model.Record{"temperature": 32.0, "dateTime": requested.Add(45 * time.Second)}

	abs := &timectx.AbsoluteInstant{RequestedAt: requested, RequestedDescription: "11:30 01/05/2024"}
	reply := env.impl().answerAbsolute(context.Background(), []catalog.Sensor{temperatureSensor(t)}, abs, vntext.LanguageVietnamese)

	if !strings.Contains(reply, "32.0°C") {
		t.Errorf("expected the 45s candidate, got %q", reply)
	}
	if strings.Contains(reply, "gần nhất") {
		t.Errorf("a ≤60s match must not carry the nearest disclaimer: %q", reply)
	}
	if abs.ActualDescription == "" {
		t.Error("actual description must be annotated")
	}
}

func TestAnswerAbsoluteNearestDisclaimer(t *testing.T) {
	env := newTestEnv()
	requested := time.Date(2024, 5, 1, 11, 30, 0, 0, time.UTC)

	env.telemetry.nearestBefore = model.Record{"temperature": 31.0, "dateTime": requested.Add(-200 * time.Second)}
	env.telemetry.nearestAfter = model.Record{"temperature": 32.0, "dateTime": requested.Add(400 * time.Second)}

	abs := &timectx.AbsoluteInstant{RequestedAt: requested, RequestedDescription: "11:30 01/05/2024"}
	reply := env.impl().answerAbsolute(context.Background(), []catalog.Sensor{temperatureSensor(t)}, abs, vntext.LanguageVietnamese)

	if !strings.Contains(reply, "31.0°C") {
		t.Errorf("expected the closer 200s candidate, got %q", reply)
	}
	if !strings.Contains(reply, "gần nhất") {
		t.Errorf("a >60s match must carry the nearest disclaimer: %q", reply)
	}
	if !strings.Contains(reply, "11:30 01/05/2024") {
		t.Errorf("disclaimer must name the requested time: %q", reply)
	}
}

func TestAnswerAbsoluteNoCandidates(t *testing.T) {
	env := newTestEnv()
	abs := &timectx.AbsoluteInstant{
		RequestedAt:          time.Date(2024, 5, 1, 11, 30, 0, 0, time.UTC),
		RequestedDescription: "11:30 01/05/2024",
	}

	reply := env.impl().answerAbsolute(context.Background(), []catalog.Sensor{temperatureSensor(t)}, abs, vntext.LanguageVietnamese)
	if !strings.Contains(reply, "Không tìm thấy dữ liệu") {
		t.Errorf("expected a miss message, got %q", reply)
	}
}

func TestAnswerRelativeUsesWindowRecord(t *testing.T) {
	env := newTestEnv()
	ts := time.Date(2024, 5, 1, 15, 25, 0, 0, time.UTC)
	env.telemetry.rangeRecords = []model.Record{
		{"temperature": 29.5, "dateTime": ts},
	}

	rel := &timectx.RelativeWindow{
		Unit:        timectx.UnitMinute,
		Value:       5,
		WindowStart: ts.Add(-30 * time.Second),
		WindowEnd:   ts.Add(2 * time.Minute),
		Description: "5 minute",
	}
	reply := env.impl().answerRelative(context.Background(), []catalog.Sensor{temperatureSensor(t)}, rel, vntext.LanguageVietnamese)

	if !strings.Contains(reply, "29.5°C") {
		t.Errorf("expected the window record value, got %q", reply)
	}
	if !strings.Contains(reply, "5 phút trước") {
		t.Errorf("expected the relative label, got %q", reply)
	}
}

func TestFormatReadingsPartialData(t *testing.T) {
	sensors := catalog.DefaultSensors()
	temp, _ := sensors.ByKey("temperature")
	hum, _ := sensors.ByKey("humidity")

	reply := formatReadings("header", []catalog.Sensor{temp, hum},
		model.Record{"temperature": 25.0}, vntext.LanguageVietnamese)

	if !strings.Contains(reply, "25.0°C") {
		t.Errorf("present value missing: %q", reply)
	}
	if !strings.Contains(reply, "Chưa có giá trị cho: Độ ẩm không khí") {
		t.Errorf("missing sensors must be listed separately: %q", reply)
	}
}

func TestResolveDeviceStatus(t *testing.T) {
	env := newTestEnv()
	env.devices.list = []model.DeviceStatus{
		{ID: "device1", Name: "device1", On: true},
		{ID: "device2", Name: "device2", On: false},
	}

	t.Run("All devices when none is named", func(t *testing.T) {
		reply := env.impl().resolveDeviceStatus(context.Background(),
			[]string{"trang thai thiet bi"}, timectx.Current(), vntext.LanguageVietnamese)
		if !strings.Contains(reply, "device1: Bật") || !strings.Contains(reply, "device2: Tắt") {
			t.Errorf("expected both device lines, got %q", reply)
		}
	})

	t.Run("Named device only", func(t *testing.T) {
		reply := env.impl().resolveDeviceStatus(context.Background(),
			[]string{"trang thai device2"}, timectx.Current(), vntext.LanguageVietnamese)
		if !strings.Contains(reply, "device2: Tắt") {
			t.Errorf("expected the named device, got %q", reply)
		}
		if strings.Contains(reply, "device1") {
			t.Errorf("unexpected other device in reply: %q", reply)
		}
	})

	t.Run("Rejects non-current time context", func(t *testing.T) {
		reply := env.impl().resolveDeviceStatus(context.Background(),
			[]string{"trang thai thiet bi hom qua"},
			timectx.TimeContext{Kind: timectx.KindUnsupportedPast}, vntext.LanguageVietnamese)
		if !strings.Contains(reply, "hiện tại") {
			t.Errorf("expected a current-only rejection, got %q", reply)
		}
	})
}

func TestStatusValueShapes(t *testing.T) {
	tests := []struct {
		name string
		rec  model.Record
		want string
	}{
		{name: "Bool true", rec: model.Record{"pumpStatus": true}, want: "Bật"},
		{name: "Numeric zero", rec: model.Record{"pumpStatus": 0.0}, want: "Tắt"},
		{name: "String on", rec: model.Record{"pumpStatus": "ON"}, want: "Bật"},
		{name: "Vietnamese string", rec: model.Record{"pumpStatus": "đang bật"}, want: "Bật"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := statusValue(tt.rec, "pumpStatus", vntext.LanguageVietnamese)
			if !ok || got != tt.want {
				t.Errorf("statusValue = %q, %v, want %q", got, ok, tt.want)
			}
		})
	}
}
