/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sched

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mkPlayer(id string, rating float64, g Gender) Participant {
	return Participant{ID: id, Name: "P-" + id, Rating: rating, Gender: g}
}

// mkPlayers returns n participants with ratings spread over 3.0-5.0 and
// alternating gender.
func mkPlayers(n int) []Participant {
	ps := make([]Participant, n)
	for i := range ps {
		g := Male
		if i%2 == 1 {
			g = Female
		}
		ps[i] = mkPlayer(fmt.Sprintf("p%02d", i), 3.0+float64(i%5)*0.5, g)
	}
	return ps
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestMakePairKeyUnordered(t *testing.T) {
	assert.Equal(t, MakePairKey("a", "b"), MakePairKey("b", "a"))
	assert.Equal(t, PairKey{Lo: "a", Hi: "b"}, MakePairKey("b", "a"))
}

func TestNewHistoryZeroed(t *testing.T) {
	ps := mkPlayers(4)
	h := NewHistory(ps)
	for _, p := range ps {
		assert.Zero(t, h.GamesPlayed(p.ID))
		assert.Zero(t, h.SitOuts(p.ID))
		assert.Zero(t, h.MixedExposure(p.ID))
	}
	assert.Zero(t, h.PartnerCount(ps[0].ID, ps[1].ID))
	assert.Zero(t, h.OpponentCount("nobody", "else"))
	assert.Zero(t, h.GamesPlayed("nobody"))

	var nilHist *History
	assert.Zero(t, nilHist.PartnerCount("a", "b"))
	assert.Zero(t, nilHist.MixedExposure("a"))
}

func TestRecordRound(t *testing.T) {
	a := mkPlayer("a", 4.0, Male)
	b := mkPlayer("b", 3.5, Female)
	c := mkPlayer("c", 4.5, Male)
	d := mkPlayer("d", 3.0, Female)
	e := mkPlayer("e", 3.0, Male)
	h := NewHistory([]Participant{a, b, c, d, e})

	court := CourtAssignment{CourtNumber: 1, Team1: Team{a, b}, Team2: Team{c, d}}
	h.RecordRound([]CourtAssignment{court}, []Participant{e})
	h.RecordRound([]CourtAssignment{court}, []Participant{e})

	assert.Equal(t, 2, h.PartnerCount("a", "b"))
	assert.Equal(t, 2, h.PartnerCount("d", "c"))
	assert.Zero(t, h.PartnerCount("a", "c"))
	for _, pair := range [][2]string{{"a", "c"}, {"a", "d"}, {"b", "c"}, {"b", "d"}} {
		assert.Equal(t, 2, h.OpponentCount(pair[1], pair[0]), "opponents %v", pair)
	}
	assert.Zero(t, h.OpponentCount("a", "b"))
	assert.Equal(t, 2, h.GamesPlayed("a"))
	assert.Zero(t, h.GamesPlayed("e"))
	assert.Equal(t, 2, h.SitOuts("e"))
	assert.Zero(t, h.SitOuts("a"))
}

func TestRecordMixedExposure(t *testing.T) {
	mixed := CourtAssignment{
		Team1: Team{mkPlayer("m1", 4, Male), mkPlayer("m2", 4, Male)},
		Team2: Team{mkPlayer("f1", 4, Female), mkPlayer("f2", 4, Female)},
	}
	single := CourtAssignment{
		Team1: Team{mkPlayer("m3", 4, Male), mkPlayer("m4", 4, Male)},
		Team2: Team{mkPlayer("m5", 4, Male), mkPlayer("m6", 4, Male)},
	}
	h := NewHistory(nil)
	h.RecordMixedExposure([]CourtAssignment{mixed, single})

	assert.True(t, mixed.Mixed())
	assert.False(t, single.Mixed())
	for _, id := range []string{"m1", "m2", "f1", "f2"} {
		assert.Equal(t, 1, h.MixedExposure(id), id)
	}
	for _, id := range []string{"m3", "m4", "m5", "m6"} {
		assert.Zero(t, h.MixedExposure(id), id)
	}
}
