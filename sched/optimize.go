/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sched

import (
	"math/rand"

	"golang.org/x/sync/errgroup"
)

const DefaultTrials = 1000

// optimizer carries everything a round search needs besides the pool
// itself. history is only read while trials run.
type optimizer struct {
	rng     *rand.Rand
	history *History
	locks   []LockedPair
	trials  int
	workers int
}

type trialResult struct {
	index  int
	cost   float64
	courts []CourtAssignment
	extras []Participant
}

func (tr *trialResult) betterThan(other *trialResult) bool {
	if other == nil {
		return true
	}
	if tr.cost != other.cost {
		return tr.cost < other.cost
	}
	return tr.index < other.index
}

// Optimize runs the default 1000 trial search over active for one round and
// returns the best courts found along with any participants left without a
// court.
func Optimize(rng *rand.Rand, active []Participant, numCourts int,
	history *History) ([]CourtAssignment, []Participant) {

	o := &optimizer{rng: rng, history: history, trials: DefaultTrials, workers: 1}
	return o.optimize(active, numCourts)
}

func effectiveCourts(numActive, numCourts int) int {
	n := numActive / PlayersPerCourt
	if numCourts < n {
		n = numCourts
	}
	if n < 0 {
		n = 0
	}
	return n
}

func (o *optimizer) optimize(active []Participant,
	numCourts int) ([]CourtAssignment, []Participant) {

	nCourts := effectiveCourts(len(active), numCourts)
	if nCourts == 0 {
		return []CourtAssignment{}, append([]Participant{}, active...)
	}

	units := buildUnits(active, o.locks)
	locks := newLockSet(o.locks, active)

	var best *trialResult
	if o.workers <= 1 {
		for i := 0; i < o.trials; i++ {
			tr := o.runTrial(o.rng, i, units, nCourts, locks)
			if tr.betterThan(best) {
				best = tr
			}
		}
	} else {
		best = o.runParallel(units, nCourts, locks)
	}

	if best == nil {
		// trials <= 0; fall back to a single pass
		best = o.runTrial(o.rng, 0, units, nCourts, locks)
	}

	return best.courts, best.extras
}

// runParallel spreads trials round-robin over o.workers goroutines. Each
// worker owns an rng seeded from o.rng before launch, and the winner is
// chosen by (cost, trial index), so a seeded run gives the same result
// however the goroutines are scheduled.
func (o *optimizer) runParallel(units [][]Participant, nCourts int,
	locks lockSet) *trialResult {

	workers := o.workers
	if workers > o.trials {
		workers = o.trials
	}
	rngs := make([]*rand.Rand, workers)
	for w := range rngs {
		rngs[w] = rand.New(rand.NewSource(o.rng.Int63()))
	}

	results := make([]*trialResult, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			var local *trialResult
			for i := w; i < o.trials; i += workers {
				tr := o.runTrial(rngs[w], i, units, nCourts, locks)
				if tr.betterThan(local) {
					local = tr
				}
			}
			results[w] = local
			return nil
		})
	}
	_ = g.Wait()

	var best *trialResult
	for _, tr := range results {
		if tr != nil && tr.betterThan(best) {
			best = tr
		}
	}

	return best
}

func (o *optimizer) runTrial(rng *rand.Rand, index int, units [][]Participant,
	nCourts int, locks lockSet) *trialResult {

	perm := rng.Perm(len(units))
	order := make([]Participant, 0, len(units)*2)
	for _, ui := range perm {
		order = append(order, units[ui]...)
	}

	numNeeded := nCourts * PlayersPerCourt
	courts := make([]CourtAssignment, 0, nCourts)
	for c := 0; c < nCourts; c++ {
		var four [4]Participant
		copy(four[:], order[c*PlayersPerCourt:(c+1)*PlayersPerCourt])
		courts = append(courts, bestSplit(four, o.history, locks, c+1))
	}
	extras := append([]Participant{}, order[numNeeded:]...)

	return &trialResult{
		index:  index,
		cost:   scoreAssignment(courts, o.history, locks),
		courts: courts,
		extras: extras,
	}
}

// buildUnits fuses each applicable locked pair into a single shuffle unit
// so that the pair lands next to each other. A participant joins at most one
// fused unit; later locks naming them are left to the lock penalty.
func buildUnits(active []Participant, locks []LockedPair) [][]Participant {
	byID := make(map[string]Participant, len(active))
	for _, p := range active {
		byID[p.ID] = p
	}
	partner := make(map[string]string)
	for _, lp := range locks {
		if lp.Player1ID == lp.Player2ID {
			continue
		}
		_, ok1 := byID[lp.Player1ID]
		_, ok2 := byID[lp.Player2ID]
		if !ok1 || !ok2 {
			continue
		}
		if _, taken := partner[lp.Player1ID]; taken {
			continue
		}
		if _, taken := partner[lp.Player2ID]; taken {
			continue
		}
		partner[lp.Player1ID] = lp.Player2ID
		partner[lp.Player2ID] = lp.Player1ID
	}

	units := make([][]Participant, 0, len(active))
	emitted := make(map[string]bool, len(partner))
	for _, p := range active {
		mate, fused := partner[p.ID]
		if !fused {
			units = append(units, []Participant{p})
			continue
		}
		if emitted[p.ID] {
			continue
		}
		emitted[p.ID] = true
		emitted[mate] = true
		units = append(units, []Participant{p, byID[mate]})
	}

	return units
}
