/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sched

// PairKey identifies an unordered pair of participant ids.
type PairKey struct {
	Lo string
	Hi string
}

func MakePairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

// History accumulates per-session statistics across rounds. Counters only
// ever grow; a nil *History reads as all zeros.
type History struct {
	partners      map[PairKey]int
	opponents     map[PairKey]int
	sitOuts       map[string]int
	gamesPlayed   map[string]int
	mixedExposure map[string]int
}

func NewHistory(participants []Participant) *History {
	h := &History{
		partners:      make(map[PairKey]int),
		opponents:     make(map[PairKey]int),
		sitOuts:       make(map[string]int, len(participants)),
		gamesPlayed:   make(map[string]int, len(participants)),
		mixedExposure: make(map[string]int, len(participants)),
	}
	for _, p := range participants {
		h.sitOuts[p.ID] = 0
		h.gamesPlayed[p.ID] = 0
		h.mixedExposure[p.ID] = 0
	}

	return h
}

func (h *History) PartnerCount(a, b string) int {
	if h == nil {
		return 0
	}
	return h.partners[MakePairKey(a, b)]
}

func (h *History) OpponentCount(a, b string) int {
	if h == nil {
		return 0
	}
	return h.opponents[MakePairKey(a, b)]
}

func (h *History) SitOuts(id string) int {
	if h == nil {
		return 0
	}
	return h.sitOuts[id]
}

func (h *History) GamesPlayed(id string) int {
	if h == nil {
		return 0
	}
	return h.gamesPlayed[id]
}

func (h *History) MixedExposure(id string) int {
	if h == nil {
		return 0
	}
	return h.mixedExposure[id]
}

// teamPartnerCount is how often the two members of t have already been
// teammates.
func (h *History) teamPartnerCount(t Team) int {
	return h.PartnerCount(t[0].ID, t[1].ID)
}

// RecordRound folds one finalized round into the history.
func (h *History) RecordRound(courts []CourtAssignment, sitOuts []Participant) {
	for _, c := range courts {
		for _, team := range []Team{c.Team1, c.Team2} {
			h.partners[MakePairKey(team[0].ID, team[1].ID)]++
		}
		for _, p1 := range c.Team1 {
			for _, p2 := range c.Team2 {
				h.opponents[MakePairKey(p1.ID, p2.ID)]++
			}
		}
		for _, p := range c.Players() {
			h.gamesPlayed[p.ID]++
		}
	}
	for _, p := range sitOuts {
		h.sitOuts[p.ID]++
	}
}

// RecordMixedExposure is only called for gendered rounds.
func (h *History) RecordMixedExposure(courts []CourtAssignment) {
	for _, c := range courts {
		if !c.Mixed() {
			continue
		}
		for _, p := range c.Players() {
			h.mixedExposure[p.ID]++
		}
	}
}
