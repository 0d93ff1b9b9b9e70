/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sched

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

const DefaultGenderedFrequency = 2

type Options struct {
	NumCourts int
	NumRounds int

	// Every GenderedFrequency-th round is gendered when GenderedEnabled is
	// set. A frequency <= 0 disables gendered rounds.
	GenderedEnabled   bool
	GenderedFrequency int

	// Trials per optimizer pool; <= 0 means DefaultTrials.
	Trials int
	// Workers > 1 evaluates trials concurrently.
	Workers int

	// Rand is used when set. Otherwise a source is seeded from Seed, or
	// from the clock when Seed is 0.
	Rand *rand.Rand
	Seed int64

	Locks []LockedPair
	// Exempt lists participant ids that should not be chosen to sit out
	// while anyone else is still available.
	Exempt []string

	Logger *zap.Logger
}

// Generate builds a schedule with default options and a clock seeded random
// source, so repeated calls with the same input usually differ.
func Generate(participants []Participant, numCourts, numRounds int,
	genderedEnabled bool, genderedFrequency int) Schedule {

	return GenerateWithOptions(participants, Options{
		NumCourts:         numCourts,
		NumRounds:         numRounds,
		GenderedEnabled:   genderedEnabled,
		GenderedFrequency: genderedFrequency,
	})
}

func (opts Options) rng() *rand.Rand {
	if opts.Rand != nil {
		return opts.Rand
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func (opts Options) isGendered(roundNum int) bool {
	return opts.GenderedEnabled && opts.GenderedFrequency > 0 &&
		roundNum%opts.GenderedFrequency == 0
}

// GenerateWithOptions runs the full multi-round loop. It never fails; rounds
// that cannot fill a court simply come back with every participant sitting
// out.
func GenerateWithOptions(participants []Participant, opts Options) Schedule {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	trials := opts.Trials
	if trials <= 0 {
		trials = DefaultTrials
	}
	exempt := make(map[string]bool, len(opts.Exempt))
	for _, id := range opts.Exempt {
		exempt[id] = true
	}

	history := NewHistory(participants)
	o := &optimizer{
		rng:     opts.rng(),
		history: history,
		locks:   opts.Locks,
		trials:  trials,
		workers: opts.Workers,
	}

	// never more courts than the roster can fill; every sit-out then comes
	// from SelectSitOuts
	numCourts := effectiveCourts(len(participants), opts.NumCourts)

	schedule := Schedule{Rounds: make([]Round, 0, max(opts.NumRounds, 0))}
	previous := map[string]bool{}
	for r := 1; r <= opts.NumRounds; r++ {
		gendered := opts.isGendered(r)

		sitOuts := SelectSitOuts(o.rng, participants, numCourts, history,
			SitOutPolicy{Previous: previous, Exempt: exempt})
		sitting := make(map[string]bool, len(sitOuts))
		for _, p := range sitOuts {
			sitting[p.ID] = true
		}
		active := make([]Participant, 0, len(participants)-len(sitOuts))
		for _, p := range participants {
			if !sitting[p.ID] {
				active = append(active, p)
			}
		}

		var courts []CourtAssignment
		var extras []Participant
		if gendered {
			courts, extras = o.optimizeGendered(active, numCourts)
		} else {
			courts, extras = o.optimize(active, numCourts)
		}

		allSitOuts := make([]Participant, 0, len(sitOuts)+len(extras))
		allSitOuts = append(allSitOuts, sitOuts...)
		allSitOuts = append(allSitOuts, extras...)

		if ce := logger.Check(zap.DebugLevel, "sched: round assigned"); ce != nil {
			ce.Write(zap.Int("round", r), zap.Bool("gendered", gendered),
				zap.Int("courts", len(courts)), zap.Int("sitOuts", len(allSitOuts)),
				zap.Float64("cost", ScoreAssignment(courts, history)))
		}

		history.RecordRound(courts, allSitOuts)
		if gendered {
			history.RecordMixedExposure(courts)
		}

		previous = make(map[string]bool, len(allSitOuts))
		for _, p := range allSitOuts {
			previous[p.ID] = true
		}

		schedule.Rounds = append(schedule.Rounds, Round{
			RoundNumber: r,
			Courts:      courts,
			SitOuts:     allSitOuts,
			Gendered:    gendered,
		})
	}

	return schedule
}
