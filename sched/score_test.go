/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func abcd() (a, b, c, d Participant) {
	return mkPlayer("A", 4.0, Male), mkPlayer("B", 3.5, Female),
		mkPlayer("C", 4.5, Male), mkPlayer("D", 3.0, Female)
}

func TestBestSplitBalancesRatings(t *testing.T) {
	a, b, c, d := abcd()
	court := BestSplit([4]Participant{a, b, c, d}, NewHistory(nil), 1)

	assert.Equal(t, 1, court.CourtNumber)
	assert.Equal(t, Team{a, b}, court.Team1)
	assert.Equal(t, Team{c, d}, court.Team2)
	assert.Zero(t, court.RatingDiff)
}

func TestBestSplitAvoidsRepeatPartners(t *testing.T) {
	a, b, c, d := abcd()
	h := NewHistory([]Participant{a, b, c, d})
	h.partners[MakePairKey("A", "B")] = 2

	// {A,B}/{C,D} now costs 16, {A,C}/{B,D} 20 and {A,D}/{B,C} 10
	court := BestSplit([4]Participant{a, b, c, d}, h, 2)
	assert.Equal(t, Team{a, d}, court.Team1)
	assert.Equal(t, Team{b, c}, court.Team2)
	assert.InDelta(t, 1.0, court.RatingDiff, 1e-9)
}

func TestBestSplitTieKeepsFirst(t *testing.T) {
	four := [4]Participant{mkPlayer("w", 4, Male), mkPlayer("x", 4, Male),
		mkPlayer("y", 4, Male), mkPlayer("z", 4, Male)}
	court := BestSplit(four, nil, 1)
	assert.Equal(t, Team{four[0], four[1]}, court.Team1)
	assert.Equal(t, Team{four[2], four[3]}, court.Team2)
}

func TestBestSplitHonorsLock(t *testing.T) {
	a, b, c, d := abcd()
	locks := newLockSet([]LockedPair{{Player1ID: "A", Player2ID: "C"}},
		[]Participant{a, b, c, d})
	court := bestSplit([4]Participant{a, b, c, d}, nil, locks, 1)
	assert.Equal(t, Team{a, c}, court.Team1)
	assert.Equal(t, Team{b, d}, court.Team2)
	assert.InDelta(t, 2.0, court.RatingDiff, 1e-9)
}

func TestSplitCost(t *testing.T) {
	a, b, c, d := abcd()
	h := NewHistory(nil)
	h.partners[MakePairKey("C", "D")] = 1
	assert.InDelta(t, 8.0, SplitCost(Team{a, b}, Team{c, d}, h), 1e-9)
	assert.InDelta(t, 10.0, SplitCost(Team{a, d}, Team{b, c}, h), 1e-9)
}

func TestScoreAssignment(t *testing.T) {
	a, b, c, d := abcd()
	e := mkPlayer("E", 5.0, Male)
	f := mkPlayer("F", 3.0, Female)
	g := mkPlayer("G", 3.0, Male)
	hh := mkPlayer("H", 3.0, Female)

	h := NewHistory(nil)
	h.partners[MakePairKey("A", "B")] = 1
	h.opponents[MakePairKey("A", "C")] = 2

	courts := []CourtAssignment{
		{CourtNumber: 1, Team1: Team{a, b}, Team2: Team{c, d}},
		{CourtNumber: 2, Team1: Team{e, f}, Team2: Team{g, hh}},
	}
	// court 1: 8*1 + 4*2, court 2: 10*|8-6|
	assert.InDelta(t, 36.0, ScoreAssignment(courts, h), 1e-9)
	assert.Zero(t, ScoreAssignment(nil, h))
}

func TestScoreAssignmentLockPenalty(t *testing.T) {
	a, b, c, d := abcd()
	pool := []Participant{a, b, c, d}
	locks := newLockSet([]LockedPair{{Player1ID: "B", Player2ID: "A"}}, pool)
	kept := []CourtAssignment{{Team1: Team{a, b}, Team2: Team{c, d}}}
	broken := []CourtAssignment{{Team1: Team{a, c}, Team2: Team{b, d}}}

	assert.InDelta(t, 0.0, scoreAssignment(kept, nil, locks), 1e-9)
	assert.InDelta(t, 20.0+LockPenalty, scoreAssignment(broken, nil, locks), 1e-9)
	// a lock whose member is not in the pool does not apply
	assert.Empty(t, newLockSet([]LockedPair{{Player1ID: "A", Player2ID: "Z"}}, pool))
}

func TestScoresNonNegative(t *testing.T) {
	rng := seeded(11)
	ps := mkPlayers(12)
	for i := range ps {
		ps[i].Rating = 3.0 + rng.Float64()*2.0
	}
	h := NewHistory(ps)
	for i := 0; i < 40; i++ {
		x, y := ps[rng.Intn(len(ps))], ps[rng.Intn(len(ps))]
		h.partners[MakePairKey(x.ID, y.ID)] += rng.Intn(3)
		h.opponents[MakePairKey(x.ID, y.ID)] += rng.Intn(3)
	}

	for i := 0; i < 200; i++ {
		rng.Shuffle(len(ps), func(i, j int) { ps[i], ps[j] = ps[j], ps[i] })
		var courts []CourtAssignment
		for c := 0; c < 3; c++ {
			var four [4]Participant
			copy(four[:], ps[c*4:(c+1)*4])
			court := BestSplit(four, h, c+1)
			assert.GreaterOrEqual(t, SplitCost(court.Team1, court.Team2, h), 0.0)
			assert.GreaterOrEqual(t, court.RatingDiff, 0.0)
			courts = append(courts, court)
		}
		assert.GreaterOrEqual(t, ScoreAssignment(courts, h), 0.0)
	}
}
