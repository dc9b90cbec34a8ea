package commons

import (
	"testing"
	"time"
)

func TestTime(t *testing.T) {
	tt := Now()
	if tt.Location() != AsiaSeoul {
		t.Errorf("Now should be in Seoul, got %v", tt.Location())
	}
}

func TestMidnight(t *testing.T) {
	// 2024-03-04 23:30 UTC is 2024-03-05 08:30 in Seoul
	utc := time.Date(2024, 3, 4, 23, 30, 0, 0, time.UTC)
	got := Midnight(utc)
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, AsiaSeoul)
	if !got.Equal(want) {
		t.Errorf("Midnight(%v) = %v, want %v", utc, got, want)
	}
}
