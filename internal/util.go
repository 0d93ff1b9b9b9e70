/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// SessionTitle is the header printed above a schedule. A zero date yields
// the bare title.
func SessionTitle(date time.Time, numCourts, numRounds int) string {
	title := fmt.Sprintf("Pickleball Rotation: %v courts, %v rounds", numCourts,
		numRounds)
	if date.IsZero() {
		return title
	}
	return fmt.Sprintf("%v (%v)", title, date.Format("Mon Jan 2, 2006"))
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeName turns "Last, First" into "First Last" and collapses runs of
// whitespace.
func NormalizeName(name string) string {
	if last, first, ok := strings.Cut(name, ","); ok &&
		strings.TrimSpace(first) != "" {
		name = first + " " + last
	}
	return strings.Join(strings.Fields(name), " ")
}

// FitCourts caps numCourts at what numPlayers can fill, four per court, and
// returns the notices an organizer should see about the fit.
func FitCourts(numPlayers, numCourts int) (int, []string) {
	const perCourt = 4
	var warnings []string

	maxCourts := numPlayers / perCourt
	if numCourts > maxCourts {
		warnings = append(warnings,
			fmt.Sprintf("Not enough players to fill %v courts. Will use %v %v.",
				numCourts, maxCourts, plural(maxCourts, "court", "courts")))
		numCourts = maxCourts
	}
	if sitOuts := numPlayers - numCourts*perCourt; sitOuts > 0 {
		warnings = append(warnings,
			fmt.Sprintf("%v %v will sit out each round (rotated fairly)", sitOuts,
				plural(sitOuts, "player", "players")))
	}
	return numCourts, warnings
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
