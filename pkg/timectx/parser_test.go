package timectx_test

import (
	"testing"
	"time"

	"smartfarm-assistant/pkg/timectx"
)

func TestNewParser(t *testing.T) {
	_, err := timectx.NewParser("Asia/Ho_Chi_Minh")
	if err != nil {
		t.Fatalf("unexpected error creating valid parser: %v", err)
	}

	_, err = timectx.NewParser("Invalid/Timezone")
	if err == nil {
		t.Fatalf("expected error for invalid timezone")
	}
}

func TestResolveRelative(t *testing.T) {
	parser, _ := timectx.NewParser("UTC")
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		texts     []string
		wantUnit  timectx.Unit
		wantValue int
	}{
		{name: "Vietnamese minutes", texts: []string{"nhiet do 5 phut truoc"}, wantUnit: timectx.UnitMinute, wantValue: 5},
		{name: "English minutes", texts: []string{"temperature 10 minutes ago"}, wantUnit: timectx.UnitMinute, wantValue: 10},
		{name: "Vietnamese hours", texts: []string{"do am 2 tieng truoc"}, wantUnit: timectx.UnitHour, wantValue: 2},
		{name: "Number word hour", texts: []string{"do am mot gio truoc"}, wantUnit: timectx.UnitHour, wantValue: 1},
		{name: "English article hour", texts: []string{"humidity an hour ago"}, wantUnit: timectx.UnitHour, wantValue: 1},
		{name: "Days", texts: []string{"muc nuoc 3 ngay truoc"}, wantUnit: timectx.UnitDay, wantValue: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Resolve(tt.texts, now)
			if got.Kind != timectx.KindRelative {
				t.Fatalf("expected relative kind, got %s", got.Kind)
			}
			rel := got.Relative
			if rel.Unit != tt.wantUnit || rel.Value != tt.wantValue {
				t.Errorf("got %d %s, want %d %s", rel.Value, rel.Unit, tt.wantValue, tt.wantUnit)
			}

			span := tt.wantUnit.Duration()
			wantEnd := now.Add(-time.Duration(tt.wantValue) * span)
			wantStart := now.Add(-time.Duration((float64(tt.wantValue) + timectx.RelativeTolerance) * float64(span)))
			if !rel.WindowEnd.Equal(wantEnd) {
				t.Errorf("WindowEnd = %v, want %v", rel.WindowEnd, wantEnd)
			}
			if !rel.WindowStart.Equal(wantStart) {
				t.Errorf("WindowStart = %v, want %v", rel.WindowStart, wantStart)
			}
			if !rel.WindowStart.Before(rel.WindowEnd) {
				t.Error("window start must precede window end")
			}
		})
	}
}

func TestResolveAbsolute(t *testing.T) {
	parser, _ := timectx.NewParser("UTC")
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		texts []string
		want  time.Time
	}{
		{
			name:  "Clock time in the past today",
			texts: []string{"nhiet do luc 11:30"},
			want:  time.Date(2024, 5, 1, 11, 30, 0, 0, time.UTC),
		},
		{
			name:  "Clock time with seconds",
			texts: []string{"do am luc 09:15:30"},
			want:  time.Date(2024, 5, 1, 9, 15, 30, 0, time.UTC),
		},
		{
			name:  "Future clock rolls back one day",
			texts: []string{"nhiet do luc 23:00"},
			want:  time.Date(2024, 4, 30, 23, 0, 0, 0, time.UTC),
		},
		{
			name:  "Within rollback slack stays today",
			texts: []string{"nhiet do luc 15:45"},
			want:  time.Date(2024, 5, 1, 15, 45, 0, 0, time.UTC),
		},
		{
			name:  "Cue word with bare hour",
			texts: []string{"do am vao luc 9 gio"},
			want:  time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "English at with pm hint",
			texts: []string{"temperature at 7 pm yesterday evening"},
			want:  time.Date(2024, 4, 30, 19, 0, 0, 0, time.UTC),
		},
		{
			name:  "Evening hint promotes hour",
			texts: []string{"nhiet do luc 8 gio toi"},
			want:  time.Date(2024, 4, 30, 20, 0, 0, 0, time.UTC),
		},
		{
			name:  "Vietnamese date token",
			texts: []string{"nhiet do luc 10:00 ngay 5 thang 3"},
			want:  time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "Vietnamese date token with year",
			texts: []string{"nhiet do luc 10:00 ngay 5 thang 3 nam 2023"},
			want:  time.Date(2023, 3, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "Slash date",
			texts: []string{"do am luc 22:00 28/4"},
			want:  time.Date(2024, 4, 28, 22, 0, 0, 0, time.UTC),
		},
		{
			name:  "ISO date with future clock keeps the date",
			texts: []string{"humidity at 23:00 2024-04-20"},
			want:  time.Date(2024, 4, 20, 23, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Resolve(tt.texts, now)
			if got.Kind != timectx.KindAbsolute {
				t.Fatalf("expected absolute kind, got %s", got.Kind)
			}
			if !got.Absolute.RequestedAt.Equal(tt.want) {
				t.Errorf("RequestedAt = %v, want %v", got.Absolute.RequestedAt, tt.want)
			}
			if got.Absolute.RequestedDescription == "" {
				t.Error("requested description must be set")
			}
		})
	}
}

func TestResolveCurrentAndFallbacks(t *testing.T) {
	parser, _ := timectx.NewParser("UTC")
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		texts []string
		want  timectx.Kind
	}{
		{name: "Explicit Vietnamese cue", texts: []string{"nhiet do hien tai"}, want: timectx.KindCurrent},
		{name: "Bay gio is not seven hours", texts: []string{"do am bay gio"}, want: timectx.KindCurrent},
		{name: "English now", texts: []string{"temperature now"}, want: timectx.KindCurrent},
		{name: "No reference defaults to current", texts: []string{"nhiet do"}, want: timectx.KindCurrent},
		{name: "Bare past cue", texts: []string{"nhiet do vua roi"}, want: timectx.KindUnsupportedPast},
		{name: "Yesterday without clock", texts: []string{"do am hom qua"}, want: timectx.KindUnsupportedPast},
		{name: "Relative marker blocks absolute", texts: []string{"nhiet do 2 gio truoc"}, want: timectx.KindRelative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Resolve(tt.texts, now)
			if got.Kind != tt.want {
				t.Errorf("Resolve(%v) kind = %s, want %s", tt.texts, got.Kind, tt.want)
			}
		})
	}
}

func TestResolveMixedVariants(t *testing.T) {
	parser, _ := timectx.NewParser("UTC")
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	// Mixed-language input is matched across all variants with OR semantics.
	got := parser.Resolve([]string{"temperature 5 phut truoc", "temperature 5 phút trước"}, now)
	if got.Kind != timectx.KindRelative {
		t.Fatalf("expected relative kind, got %s", got.Kind)
	}
	if got.Relative.Value != 5 || got.Relative.Unit != timectx.UnitMinute {
		t.Errorf("got %d %s, want 5 minute", got.Relative.Value, got.Relative.Unit)
	}
}

func TestWithFutureRollback(t *testing.T) {
	parser, _ := timectx.NewParser("UTC", timectx.WithFutureRollback(2*time.Hour))
	now := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	// 17:00 is 1.5h ahead: within the widened slack, so no rollback.
	got := parser.Resolve([]string{"nhiet do luc 17:00"}, now)
	if got.Kind != timectx.KindAbsolute {
		t.Fatalf("expected absolute kind, got %s", got.Kind)
	}
	want := time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC)
	if !got.Absolute.RequestedAt.Equal(want) {
		t.Errorf("RequestedAt = %v, want %v", got.Absolute.RequestedAt, want)
	}
}
