package util

import (
	"testing"
	"time"
)

func TestMonthLabel(t *testing.T) {
	d := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	if got := MonthLabel(d); got != "January 2025" {
		t.Errorf("Expected 'January 2025', got %q", got)
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, time.May, 31, 23, 59, 58, 0, time.FixedZone("IST", 5*3600+1800))
	got := DateOnly(in)

	want := time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestValidMonth(t *testing.T) {
	for m := 1; m <= 12; m++ {
		if !ValidMonth(m) {
			t.Errorf("Expected month %d to be valid", m)
		}
	}
	for _, m := range []int{0, 13, -1} {
		if ValidMonth(m) {
			t.Errorf("Expected month %d to be invalid", m)
		}
	}
}
