package entities

import (
	"errors"
	"strings"
	"testing"
)

// Every key referenced by a positional query must have an entity
// definition; this is the startup invariant run as a test.
func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
}

func TestQueryShapes(t *testing.T) {
	tests := []struct {
		name   string
		fields int
	}{
		{name: "QPIRI", fields: 25},
		{name: "QPIGS", fields: 21},
		{name: "QDI", fields: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := Queries[tt.name]
			if !ok {
				t.Fatalf("query %s not defined", tt.name)
			}
			if len(q.Fields) != tt.fields {
				t.Errorf("%s has %d fields, want %d", tt.name, len(q.Fields), tt.fields)
			}
		})
	}
}

// Each query is either positional or custom, never both.
func TestQueryVariantsExclusive(t *testing.T) {
	for name, q := range Queries {
		hasFields := len(q.Fields) > 0
		hasDecode := q.Decode != nil
		if hasFields == hasDecode {
			t.Errorf("query %s: Fields and Decode must be mutually exclusive", name)
		}
	}
}

func TestParseDeviceFlags(t *testing.T) {
	res, err := ParseDeviceFlags("EabkDxy")
	if err != nil {
		t.Fatalf("ParseDeviceFlags() error: %v", err)
	}

	enabled := map[string]bool{
		"alarm_act":        true,
		"ovrl_bypass":      true,
		"lcd_rtn":          true,
		"back_light":       false,
		"alrm_pri_src_off": false,
	}
	for key, want := range enabled {
		v, ok := res.Get(key)
		if !ok {
			t.Fatalf("flag key %q missing from result", key)
		}
		if v.Bool != want {
			t.Errorf("%s = %v, want %v", key, v.Bool, want)
		}
	}
	if res.Len() != len(enabled) {
		t.Errorf("Len() = %d, want %d", res.Len(), len(enabled))
	}
}

func TestParseDeviceFlagsUnknownFlag(t *testing.T) {
	_, err := ParseDeviceFlags("EabqDxy")

	var unknown *UnknownFlagError
	if !errors.As(err, &unknown) {
		t.Fatalf("ParseDeviceFlags() error = %v, want UnknownFlagError", err)
	}
	if unknown.Flag != 'q' {
		t.Errorf("UnknownFlagError.Flag = %q, want 'q'", unknown.Flag)
	}
	if unknown.Input != "EabqDxy" {
		t.Errorf("UnknownFlagError.Input = %q, want the full flag string", unknown.Input)
	}
}

func TestParseDeviceFlagsMissingMarker(t *testing.T) {
	if _, err := ParseDeviceFlags("abk"); err == nil {
		t.Fatal("ParseDeviceFlags() accepted flags before any E/D marker")
	}
}

func TestParseWarnings(t *testing.T) {
	stat := strings.Repeat("0", 32)
	stat = stat[:1] + "1" + stat[2:]

	res, err := ParseWarnings(stat)
	if err != nil {
		t.Fatalf("ParseWarnings() error: %v", err)
	}
	if res.Len() != 32 {
		t.Fatalf("Len() = %d, want 32", res.Len())
	}

	for i, key := range WarningIndicators {
		v, _ := res.Get(key)
		want := i == 1
		if v.Bool != want {
			t.Errorf("indicator %d (%s) = %v, want %v", i, key, v.Bool, want)
		}
	}
	if WarningIndicators[1] != "wi_inv_fault" {
		t.Errorf("indicator 1 = %q, want wi_inv_fault", WarningIndicators[1])
	}
}

func TestParseWarningsBadInput(t *testing.T) {
	tests := []struct {
		name string
		stat string
	}{
		{name: "too short", stat: strings.Repeat("0", 31)},
		{name: "too long", stat: strings.Repeat("0", 33)},
		{name: "bad character", stat: strings.Repeat("0", 31) + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseWarnings(tt.stat); err == nil {
				t.Errorf("ParseWarnings(%q) accepted bad input", tt.stat)
			}
		})
	}
}
