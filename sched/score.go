/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sched

import (
	"math"
)

const (
	PlayersPerCourt = 4

	BalanceWeight        = 10.0
	PartnerRepeatWeight  = 8.0
	OpponentRepeatWeight = 4.0
	// LockPenalty is charged for every locked pair that does not end up as
	// teammates. It dwarfs every other term so a lock is broken only when
	// the pool leaves no alternative.
	LockPenalty = 1000.0
)

// lockSet holds the locks that apply to one optimizer pool.
type lockSet map[PairKey]bool

func newLockSet(locks []LockedPair, pool []Participant) lockSet {
	if len(locks) == 0 {
		return nil
	}
	present := make(map[string]bool, len(pool))
	for _, p := range pool {
		present[p.ID] = true
	}
	ls := make(lockSet)
	for _, lp := range locks {
		if present[lp.Player1ID] && present[lp.Player2ID] {
			ls[lp.key()] = true
		}
	}

	return ls
}

func (ls lockSet) has(t Team) bool {
	return ls[MakePairKey(t[0].ID, t[1].ID)]
}

// brokenWithin counts locks whose members are both among the court's four
// players but on opposite teams.
func (ls lockSet) brokenWithin(t1, t2 Team) int {
	broken := 0
	for _, p1 := range t1 {
		for _, p2 := range t2 {
			if ls[MakePairKey(p1.ID, p2.ID)] {
				broken++
			}
		}
	}
	return broken
}

func ratingGap(t1, t2 Team) float64 {
	return math.Abs(t1.Rating() - t2.Rating())
}

// SplitCost is the per-court heuristic used to choose a team split: rating
// imbalance plus partner repetition. Opponent repetition is left to
// ScoreAssignment.
func SplitCost(t1, t2 Team, history *History) float64 {
	return BalanceWeight*ratingGap(t1, t2) +
		PartnerRepeatWeight*float64(history.teamPartnerCount(t1)) +
		PartnerRepeatWeight*float64(history.teamPartnerCount(t2))
}

// BestSplit divides four participants into the lowest cost pair of teams.
// On equal cost the earliest split in enumeration order wins.
func BestSplit(four [4]Participant, history *History, courtNumber int) CourtAssignment {
	return bestSplit(four, history, nil, courtNumber)
}

func bestSplit(four [4]Participant, history *History, locks lockSet,
	courtNumber int) CourtAssignment {

	splits := [3][2]Team{
		{{four[0], four[1]}, {four[2], four[3]}},
		{{four[0], four[2]}, {four[1], four[3]}},
		{{four[0], four[3]}, {four[1], four[2]}},
	}

	best := 0
	bestCost := math.Inf(1)
	for i, s := range splits {
		cost := SplitCost(s[0], s[1], history) +
			LockPenalty*float64(locks.brokenWithin(s[0], s[1]))
		if cost < bestCost {
			bestCost = cost
			best = i
		}
	}

	t1, t2 := splits[best][0], splits[best][1]
	return CourtAssignment{
		CourtNumber: courtNumber,
		Team1:       t1,
		Team2:       t2,
		RatingDiff:  ratingGap(t1, t2),
	}
}

// ScoreAssignment is the whole-round objective minimized by Optimize.
func ScoreAssignment(courts []CourtAssignment, history *History) float64 {
	return scoreAssignment(courts, history, nil)
}

func scoreAssignment(courts []CourtAssignment, history *History,
	locks lockSet) float64 {

	total := 0.0
	kept := 0
	for _, c := range courts {
		total += BalanceWeight * ratingGap(c.Team1, c.Team2)
		for _, team := range []Team{c.Team1, c.Team2} {
			total += PartnerRepeatWeight * float64(history.teamPartnerCount(team))
			if locks.has(team) {
				kept++
			}
		}
		for _, p1 := range c.Team1 {
			for _, p2 := range c.Team2 {
				total += OpponentRepeatWeight *
					float64(history.OpponentCount(p1.ID, p2.ID))
			}
		}
	}
	total += LockPenalty * float64(len(locks)-kept)

	return total
}
