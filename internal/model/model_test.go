package model

import (
	"encoding/json"
	"testing"
)

func TestDisplayValueRatings(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"1", "A (1)"},
		{"2", "B (2)"},
		{"3", "C (3)"},
		{"4", "D (4)"},
		{"5", "E (5)"},
	}

	for _, key := range []string{"sqale_rating", "reliability_rating", "security_rating"} {
		for _, tt := range tests {
			if got := DisplayValue(key, tt.raw); got != tt.want {
				t.Errorf("DisplayValue(%q, %q) = %q, want %q", key, tt.raw, got, tt.want)
			}
		}
	}
}

func TestDisplayValuePassThrough(t *testing.T) {
	tests := []struct {
		key string
		raw string
	}{
		{"coverage", "1"},
		{"ncloc", "1234"},
		{"alert_status", "OK"},
		{"sqale_rating", "6"},
		{"sqale_rating", "1.0"},
		{"security_rating", NotAvailable},
		{"reliability_rating", ""},
	}

	for _, tt := range tests {
		if got := DisplayValue(tt.key, tt.raw); got != tt.raw {
			t.Errorf("DisplayValue(%q, %q) = %q, want raw value", tt.key, tt.raw, got)
		}
	}
}

func TestIsRatingMetric(t *testing.T) {
	if !IsRatingMetric("sqale_rating") {
		t.Error("sqale_rating should be a rating metric")
	}
	if IsRatingMetric("sqale_index") {
		t.Error("sqale_index should not be a rating metric")
	}
}

func TestMetricKeys(t *testing.T) {
	if len(MetricKeys) != 14 {
		t.Fatalf("len(MetricKeys) = %d, want 14", len(MetricKeys))
	}
	seen := make(map[string]bool)
	for _, k := range MetricKeys {
		if seen[k] {
			t.Errorf("duplicate metric key %q", k)
		}
		seen[k] = true
	}
}

func TestParseGateStatus(t *testing.T) {
	tests := []struct {
		input string
		want  GateStatus
	}{
		{"OK", GateStatusOK},
		{"WARN", GateStatusWarn},
		{"ERROR", GateStatusError},
		{"NONE", GateStatusNone},
		{"", GateStatusUnknown},
		{"ok", GateStatusUnknown},
	}

	for _, tt := range tests {
		if got := ParseGateStatus(tt.input); got != tt.want {
			t.Errorf("ParseGateStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestServerGateStatus(t *testing.T) {
	tests := []struct {
		input string
		want  GateStatus
	}{
		{"OK", GateStatusOK},
		{"", GateStatusUnknown},
		{"IN_PROGRESS", GateStatus("IN_PROGRESS")},
		{"ok", GateStatus("ok")},
	}

	for _, tt := range tests {
		if got := ServerGateStatus(tt.input); got != tt.want {
			t.Errorf("ServerGateStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGateStatusColorAndIcon(t *testing.T) {
	if c := GateStatusOK.Color(); c != "green" {
		t.Errorf("GateStatusOK.Color() = %q, want %q", c, "green")
	}
	if c := GateStatusError.Color(); c != "red" {
		t.Errorf("GateStatusError.Color() = %q, want %q", c, "red")
	}
	if i := GateStatusWarn.Icon(); i != "⚠" {
		t.Errorf("GateStatusWarn.Icon() = %q, want %q", i, "⚠")
	}
}

func TestCountsMarshalKeepsOrder(t *testing.T) {
	c := Counts{{"zeta", 3}, {"alpha", 2}, {"mid", 1}}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"zeta":3,"alpha":2,"mid":1}`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}
}

func TestCountsMarshalEmpty(t *testing.T) {
	b, err := json.Marshal(Counts(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "{}" {
		t.Errorf("json = %s, want {}", b)
	}
}

func TestCountsGet(t *testing.T) {
	c := Counts{{"BUG", 4}}
	if got := c.Get("BUG"); got != 4 {
		t.Errorf("Get(BUG) = %d, want 4", got)
	}
	if got := c.Get("missing"); got != 0 {
		t.Errorf("Get(missing) = %d, want 0", got)
	}
}
