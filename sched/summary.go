/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sched

import (
	"sort"
	"strings"
)

// Summary is the after-the-fact tally of a finished schedule, replayed into
// a fresh History.
type Summary struct {
	// Participants sorted by name.
	Participants []Participant
	History      *History
}

func Summarize(schedule Schedule, participants []Participant) Summary {
	h := NewHistory(participants)
	for _, r := range schedule.Rounds {
		h.RecordRound(r.Courts, r.SitOuts)
		if r.Gendered {
			h.RecordMixedExposure(r.Courts)
		}
	}

	sorted := append([]Participant(nil), participants...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	return Summary{Participants: sorted, History: h}
}

// RepeatPartners sums, over every pair that has partnered, the number of
// times beyond the first.
func (s Summary) RepeatPartners() int {
	return repeats(s.History.partners)
}

func (s Summary) RepeatOpponents() int {
	return repeats(s.History.opponents)
}

func repeats(counts map[PairKey]int) int {
	total := 0
	for _, n := range counts {
		if n > 1 {
			total += n - 1
		}
	}
	return total
}

// GamesSpread is the difference between the most and fewest games played
// by any participant.
func (s Summary) GamesSpread() int {
	if len(s.Participants) == 0 {
		return 0
	}
	lo := s.History.GamesPlayed(s.Participants[0].ID)
	hi := lo
	for _, p := range s.Participants[1:] {
		g := s.History.GamesPlayed(p.ID)
		lo = min(lo, g)
		hi = max(hi, g)
	}
	return hi - lo
}
