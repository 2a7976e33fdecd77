package ledger

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)

func TestParseFilterAll(t *testing.T) {
	for _, raw := range []string{"all", ""} {
		f, err := ParseFilter(raw, "", "", testNow)
		if err != nil {
			t.Fatalf("ParseFilter(%q) returned error: %v", raw, err)
		}
		if f.Type != FilterAll || f.Bounded {
			t.Errorf("ParseFilter(%q) = %+v, want unbounded all", raw, f)
		}
	}
}

func TestParseFilterWeekly(t *testing.T) {
	f, err := ParseFilter("weekly", "", "", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Bounded {
		t.Fatal("weekly filter should be bounded")
	}
	if want := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC); !f.Start.Equal(want) {
		t.Errorf("start = %v, want %v", f.Start, want)
	}
	if want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC); !f.End.Equal(want) {
		t.Errorf("end = %v, want %v", f.End, want)
	}
}

func TestParseFilterMonthly(t *testing.T) {
	f, err := ParseFilter("monthly", "", "", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC); !f.Start.Equal(want) {
		t.Errorf("start = %v, want %v", f.Start, want)
	}
}

func TestParseFilterCustom(t *testing.T) {
	f, err := ParseFilter("custom", "2025-01-01", "2025-01-31", testNow)
	if err != nil {
		t.Fatal(err)
	}
	if f.Start.Day() != 1 || f.End.Day() != 31 {
		t.Errorf("unexpected range %v..%v", f.Start, f.End)
	}

	// Same-day range is valid (inclusive bounds).
	if _, err := ParseFilter("custom", "2025-01-05", "2025-01-05", testNow); err != nil {
		t.Errorf("single-day custom range rejected: %v", err)
	}
}

func TestParseFilterCustomMissingBound(t *testing.T) {
	for _, tt := range [][2]string{{"2025-01-01", ""}, {"", "2025-01-31"}, {"", ""}} {
		_, err := ParseFilter("custom", tt[0], tt[1], testNow)
		if !errors.Is(err, ErrMissingDateRange) {
			t.Errorf("ParseFilter(custom, %q, %q) err = %v, want ErrMissingDateRange", tt[0], tt[1], err)
		}
	}
}

func TestParseFilterCustomInverted(t *testing.T) {
	_, err := ParseFilter("custom", "2025-02-01", "2025-01-01", testNow)
	if !errors.Is(err, ErrInvertedDateRange) {
		t.Errorf("err = %v, want ErrInvertedDateRange", err)
	}
}

func TestParseFilterUnknownType(t *testing.T) {
	if _, err := ParseFilter("yearly", "", "", testNow); err == nil {
		t.Error("expected error for unknown filter type")
	}
}

func TestValidateRange(t *testing.T) {
	start, end, err := ValidateRange("2025-03-01", "2025-03-15")
	if err != nil {
		t.Fatal(err)
	}
	if !start.Before(end) {
		t.Errorf("range %v..%v not ordered", start, end)
	}

	if _, _, err := ValidateRange("2025-03-15", "2025-03-01"); !errors.Is(err, ErrInvertedDateRange) {
		t.Errorf("inverted range err = %v, want ErrInvertedDateRange", err)
	}
	if _, _, err := ValidateRange("", "2025-03-01"); !errors.Is(err, ErrMissingDateRange) {
		t.Errorf("missing bound err = %v, want ErrMissingDateRange", err)
	}
	if _, _, err := ValidateRange("yesterday", "2025-03-01"); err == nil {
		t.Error("expected error for malformed date")
	}
}
