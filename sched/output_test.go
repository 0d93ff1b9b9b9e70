/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sched

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSchedule() (Schedule, []Participant) {
	a, b, c, d := abcd()
	e := mkPlayer("E", 3.0, Male)
	ps := []Participant{a, b, c, d, e}
	s := Schedule{Rounds: []Round{
		{
			RoundNumber: 1,
			Courts: []CourtAssignment{{CourtNumber: 1, Team1: Team{a, b},
				Team2: Team{c, d}, RatingDiff: 0}},
			SitOuts: []Participant{e},
		},
		{
			RoundNumber: 2,
			Courts: []CourtAssignment{{CourtNumber: 1, Team1: Team{a, b},
				Team2: Team{c, e}, RatingDiff: 0}},
			SitOuts:  []Participant{d},
			Gendered: true,
		},
	}}
	return s, ps
}

func TestSummarize(t *testing.T) {
	s, ps := fixedSchedule()
	sum := Summarize(s, ps)

	require.Len(t, sum.Participants, 5)
	assert.Equal(t, "P-A", sum.Participants[0].Name)
	assert.Equal(t, 2, sum.History.GamesPlayed("A"))
	assert.Equal(t, 1, sum.History.GamesPlayed("E"))
	assert.Equal(t, 1, sum.History.SitOuts("D"))
	assert.Equal(t, 2, sum.History.PartnerCount("A", "B"))
	assert.Equal(t, 1, sum.RepeatPartners())
	// A and B faced C twice
	assert.Equal(t, 2, sum.RepeatOpponents())
	assert.Equal(t, 1, sum.GamesSpread())
	// only round 2 was gendered and its court was mixed
	assert.Equal(t, 1, sum.History.MixedExposure("E"))
	assert.Equal(t, 0, sum.History.MixedExposure("D"))
}

func TestBuildScheduleOutput(t *testing.T) {
	s, _ := fixedSchedule()
	out := BuildScheduleOutput(s, "Pickleball Round Robin")

	assert.True(t, strings.HasPrefix(out, "Pickleball Round Robin\n\n"))
	assert.Contains(t, out, "Round 1\n")
	assert.Contains(t, out, "Round 2 (Gendered Round)\n")
	assert.Contains(t, out, "P-A & P-B(7.5)")
	assert.Contains(t, out, "P-C & P-E(7.5)")
	assert.Contains(t, out, "Sitting out: P-E\n")
	assert.Contains(t, out, "Sitting out: P-D\n")

	lines := strings.Split(out, "\n")
	var header, row string
	for i, l := range lines {
		if strings.HasPrefix(l, "Court") {
			header, row = l, lines[i+1]
			break
		}
	}
	require.NotEmpty(t, header)
	assert.Equal(t, strings.Index(header, "Team B"), strings.Index(row, "P-C"))
}

func TestBuildScheduleOutputEmpty(t *testing.T) {
	assert.Equal(t, "No rounds scheduled\n", BuildScheduleOutput(Schedule{}, ""))

	out := BuildScheduleOutput(Schedule{Rounds: []Round{{RoundNumber: 1,
		SitOuts: mkPlayers(2)}}}, "")
	assert.Contains(t, out, "No courts this round")
	assert.Contains(t, out, "Sitting out: P-p00, P-p01")
}

func TestBuildSummaryOutput(t *testing.T) {
	s, ps := fixedSchedule()
	out := BuildSummaryOutput(Summarize(s, ps))

	assert.Contains(t, out, "  P-A: 2 (sat out 0)\n")
	assert.Contains(t, out, "  P-E: 1 (sat out 1)\n")
	assert.Contains(t, out, "2/0")
	assert.Contains(t, out, "0/2")
	assert.Contains(t, out, "Repeat partners: 1  Repeat opponents: 2")
}
