/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sched

import (
	"math/rand"
	"sort"
)

// OptimizeGendered fills as many single gender courts as the active pool
// allows (women's courts first, then men's) and gives the remaining
// courts to a mixed pool. It uses the default 1000 trials per pool.
func OptimizeGendered(rng *rand.Rand, active []Participant, numCourts int,
	history *History) ([]CourtAssignment, []Participant) {

	o := &optimizer{rng: rng, history: history, trials: DefaultTrials, workers: 1}
	return o.optimizeGendered(active, numCourts)
}

func (o *optimizer) optimizeGendered(active []Participant,
	numCourts int) ([]CourtAssignment, []Participant) {

	if numCourts < 0 {
		numCourts = 0
	}
	var females, males []Participant
	for _, p := range active {
		if p.Gender == Female {
			females = append(females, p)
		} else {
			males = append(males, p)
		}
	}

	femaleCourts := min(len(females)/PlayersPerCourt, numCourts)
	maleCourts := min(len(males)/PlayersPerCourt, numCourts-femaleCourts)
	mixedCourts := numCourts - femaleCourts - maleCourts

	females = o.rankByMixedExposure(females)
	males = o.rankByMixedExposure(males)

	nf := femaleCourts * PlayersPerCourt
	nm := maleCourts * PlayersPerCourt
	mixedPool := make([]Participant, 0, len(active)-nf-nm)
	mixedPool = append(mixedPool, males[nm:]...)
	mixedPool = append(mixedPool, females[nf:]...)

	fCourts, fExtras := o.optimize(females[:nf], femaleCourts)
	mCourts, mExtras := o.optimize(males[:nm], maleCourts)
	xCourts, xExtras := o.optimize(mixedPool, mixedCourts)

	courts := make([]CourtAssignment, 0, len(fCourts)+len(mCourts)+len(xCourts))
	courts = append(courts, fCourts...)
	courts = append(courts, mCourts...)
	courts = append(courts, xCourts...)
	for i := range courts {
		courts[i].CourtNumber = i + 1
	}

	extras := make([]Participant, 0, len(fExtras)+len(mExtras)+len(xExtras))
	extras = append(extras, fExtras...)
	extras = append(extras, mExtras...)
	extras = append(extras, xExtras...)

	return courts, extras
}

// rankByMixedExposure puts those with the most mixed court rounds first so
// they are the ones given a single gender court this time.
func (o *optimizer) rankByMixedExposure(group []Participant) []Participant {
	ranked := append([]Participant(nil), group...)
	o.rng.Shuffle(len(ranked), func(i, j int) {
		ranked[i], ranked[j] = ranked[j], ranked[i]
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		return o.history.MixedExposure(ranked[i].ID) >
			o.history.MixedExposure(ranked[j].ID)
	})

	return ranked
}
