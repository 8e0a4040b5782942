package vntext_test

import (
	"reflect"
	"testing"

	"smartfarm-assistant/pkg/vntext"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Empty", in: "", want: ""},
		{name: "Whitespace only", in: "   ", want: ""},
		{name: "Diacritics stripped", in: "Nhiệt độ hiện tại", want: "nhiet do hien tai"},
		{name: "D stroke mapped", in: "Độ ẩm đất", want: "do am dat"},
		{name: "Plain english untouched", in: "Turn ON the Pump", want: "turn on the pump"},
		{name: "Trimmed", in: "  bật đèn  ", want: "bat den"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vntext.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want vntext.Language
	}{
		{name: "Vietnamese sensor query", in: "nhiệt độ hiện tại là bao nhiêu", want: vntext.LanguageVietnamese},
		{name: "Vietnamese control", in: "bật máy bơm giúp tôi", want: vntext.LanguageVietnamese},
		{name: "English control", in: "turn on the pump and the light", want: vntext.LanguageEnglish},
		{name: "English sensor query", in: "what is the current temperature", want: vntext.LanguageEnglish},
		{name: "No keywords at all", in: "xyzzy 12345", want: vntext.LanguageMixed},
		{name: "Empty", in: "", want: vntext.LanguageMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vntext.Detect(tt.in); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVariants(t *testing.T) {
	t.Run("Vietnamese uses normalized only", func(t *testing.T) {
		got := vntext.Variants("Nhiệt độ", vntext.LanguageVietnamese)
		want := []string{"nhiet do"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("English uses lowered raw only", func(t *testing.T) {
		got := vntext.Variants("Turn ON pump", vntext.LanguageEnglish)
		want := []string{"turn on pump"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Mixed carries both forms", func(t *testing.T) {
		got := vntext.Variants("turn on đèn", vntext.LanguageMixed)
		want := []string{"turn on den", "turn on đèn"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Mixed deduplicates identical forms", func(t *testing.T) {
		got := vntext.Variants("turn on pump", vntext.LanguageMixed)
		if len(got) != 1 {
			t.Errorf("expected a single deduplicated variant, got %v", got)
		}
	})
}

func TestContainsAnyWord(t *testing.T) {
	texts := []string{"do am mot gio truoc"}
	if vntext.ContainsAnyWord(texts, "mo") {
		t.Error("short keyword must not match inside a longer token")
	}
	if !vntext.ContainsAnyWord([]string{"mo may bom"}, "mo") {
		t.Error("expected whole-word hit")
	}
	if !vntext.ContainsAnyWord([]string{"please turn on the pump"}, "turn on") {
		t.Error("expected phrase hit on word boundaries")
	}
}

func TestContainsAny(t *testing.T) {
	texts := []string{"nhiet do hien tai", "nhiệt độ hiện tại"}
	if !vntext.ContainsAny(texts, "hien tai") {
		t.Error("expected hit on normalized variant")
	}
	if vntext.ContainsAny(texts, "pump", "light") {
		t.Error("unexpected hit")
	}
}
