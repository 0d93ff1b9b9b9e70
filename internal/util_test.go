/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"testing"
	"time"
)

func TestParseDateOrZero(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"", time.Time{}, false},
		{"null", time.Time{}, false},
		{"2026-10-14", time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), false},
		{"10/14/2026", time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), false},
		{"not a date", time.Time{}, true},
	}

	for _, tc := range tests {
		got, err := ParseDateOrZero(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDateOrZero(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDateOrZero(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseDateOrZero(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestSessionTitle(t *testing.T) {
	if got := SessionTitle(time.Time{}, 3, 8); got != "Pickleball Rotation: 3 courts, 8 rounds" {
		t.Errorf("unexpected title %q", got)
	}
	d := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	want := "Pickleball Rotation: 2 courts, 6 rounds (Wed Oct 14, 2026)"
	if got := SessionTitle(d, 2, 6); got != want {
		t.Errorf("SessionTitle=%q want %q", got, want)
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{0, 1, 16, 1},
		{20, 1, 16, 16},
		{5, 1, 16, 5},
	}
	for _, tc := range tests {
		if got := ClampInt(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("ClampInt(%v,%v,%v)=%v want %v", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	for _, lvl := range []string{"", "debug", "info", "warn", "error"} {
		logger, err := NewLogger(lvl)
		if err != nil {
			t.Errorf("NewLogger(%q) failed: %v", lvl, err)
			continue
		}
		logger.Sync()
	}
	if _, err := NewLogger("loud"); err == nil {
		t.Errorf("expected error for bad level")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Brown, Mike", "Mike Brown"},
		{"  Ana   Lopez ", "Ana Lopez"},
		{"Cher,", "Cher,"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Errorf("NormalizeName(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestFitCourts(t *testing.T) {
	tests := []struct {
		players, courts int
		wantCourts      int
		wantWarnings    []string
	}{
		{8, 2, 2, nil},
		{10, 2, 2, []string{"2 players will sit out each round (rotated fairly)"}},
		{9, 2, 2, []string{"1 player will sit out each round (rotated fairly)"}},
		{10, 3, 2, []string{
			"Not enough players to fill 3 courts. Will use 2 courts.",
			"2 players will sit out each round (rotated fairly)",
		}},
		{6, 4, 1, []string{
			"Not enough players to fill 4 courts. Will use 1 court.",
			"2 players will sit out each round (rotated fairly)",
		}},
	}
	for _, tc := range tests {
		courts, warnings := FitCourts(tc.players, tc.courts)
		if courts != tc.wantCourts {
			t.Errorf("FitCourts(%v,%v) courts=%v want %v", tc.players, tc.courts,
				courts, tc.wantCourts)
		}
		if len(warnings) != len(tc.wantWarnings) {
			t.Errorf("FitCourts(%v,%v) warnings=%q want %q", tc.players, tc.courts,
				warnings, tc.wantWarnings)
			continue
		}
		for i := range warnings {
			if warnings[i] != tc.wantWarnings[i] {
				t.Errorf("FitCourts(%v,%v) warning %v=%q want %q", tc.players,
					tc.courts, i, warnings[i], tc.wantWarnings[i])
			}
		}
	}
}
