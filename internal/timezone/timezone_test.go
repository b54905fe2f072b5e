package timezone

import (
	"testing"
	"time"
)

// Reference instants pin DST rules so zone offsets are deterministic.
var (
	winterRef = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	summerRef = time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)
)

func TestNormalizeHourOffsets(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"0", "UTC+0"},
		{"8", "UTC+8 Asia/Taipei"},
		{"-5", "UTC-5"},
		{"14", "UTC+14"},
		{"-12", "UTC-12"},
	}
	for _, tc := range cases {
		got, errNormalize := Normalize(tc.input, winterRef)
		if errNormalize != nil {
			t.Fatalf("Normalize(%q): %v", tc.input, errNormalize)
		}
		if got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeOutOfRangeRejected(t *testing.T) {
	for _, input := range []string{"-13", "15", "100"} {
		if _, errNormalize := Normalize(input, winterRef); errNormalize == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestNormalizeOffsetLiterals(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"UTC+8", "UTC+8"},
		{"GMT+2", "UTC+2"},
		{"UTC-05:30", "UTC-05:30"},
		{"UTC+8 Asia/Taipei", "UTC+8 Asia/Taipei"},
		{"GMT-5 America/Chicago", "UTC-5 America/Chicago"},
		{"utc+8", "UTC+8"},
		{"gmt+2", "UTC+2"},
		{"utc+8 Asia/Taipei", "UTC+8 Asia/Taipei"},
	}
	for _, tc := range cases {
		got, errNormalize := Normalize(tc.input, winterRef)
		if errNormalize != nil {
			t.Fatalf("Normalize(%q): %v", tc.input, errNormalize)
		}
		if got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalizeIANAZones(t *testing.T) {
	got, errNormalize := Normalize("America/New_York", winterRef)
	if errNormalize != nil {
		t.Fatalf("Normalize winter: %v", errNormalize)
	}
	if got != "UTC-5 America/New_York" {
		t.Fatalf("winter offset = %q, want UTC-5 America/New_York", got)
	}

	got, errNormalize = Normalize("America/New_York", summerRef)
	if errNormalize != nil {
		t.Fatalf("Normalize summer: %v", errNormalize)
	}
	if got != "UTC-4 America/New_York" {
		t.Fatalf("summer offset = %q, want UTC-4 America/New_York", got)
	}

	got, errNormalize = Normalize("Asia/Kolkata", winterRef)
	if errNormalize != nil {
		t.Fatalf("Normalize half-hour zone: %v", errNormalize)
	}
	if got != "UTC+5:30 Asia/Kolkata" {
		t.Fatalf("half-hour offset = %q, want UTC+5:30 Asia/Kolkata", got)
	}
}

func TestNormalizeGarbageRejected(t *testing.T) {
	for _, input := range []string{"", "   ", "Not/AZone", "tomorrow", "UTC+99"} {
		if _, errNormalize := Normalize(input, winterRef); errNormalize == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}
