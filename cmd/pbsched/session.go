/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/mikeb26/pbrotation/internal"
	"github.com/mikeb26/pbrotation/roster"
	"github.com/mikeb26/pbrotation/s3store"
	"github.com/mikeb26/pbrotation/sched"
)

// sessionFlags are shared by every subcommand that generates a schedule.
type sessionFlags struct {
	roster   *string
	courts   *int
	rounds   *int
	gendered *bool
	every    *int
	seed     *int64
	workers  *int
	trials   *int
	lock     *string
	exempt   *string
	date     *string
}

func addSessionFlags(fs *flag.FlagSet) *sessionFlags {
	return &sessionFlags{
		roster:   fs.String("roster", "", "Roster file (.json, .csv, .html) or s3://NAME"),
		courts:   fs.Int("courts", 2, "Courts in play (1-16)"),
		rounds:   fs.Int("rounds", 8, "Rounds to schedule (1-16)"),
		gendered: fs.Bool("gendered", false, "Make every Nth round a gendered round"),
		every:    fs.Int("every", sched.DefaultGenderedFrequency, "Gendered round frequency (1-5)"),
		seed:     fs.Int64("seed", 0, "Random seed (0 picks one from the clock)"),
		workers:  fs.Int("workers", 1, "Goroutines used per optimizer run"),
		trials:   fs.Int("trials", sched.DefaultTrials, "Random trials per optimizer run"),
		lock:     fs.String("lock", "", "Pairs kept on the same team, e.g. \"A:B,C:D\""),
		exempt:   fs.String("exempt", "", "Players to avoid sitting out, e.g. \"A,B\""),
		date:     fs.String("date", "", "Session date shown in the header"),
	}
}

// sessionConfig is the flag values once parsed.
type sessionConfig struct {
	numCourts         int
	numRounds         int
	gendered          bool
	genderedFrequency int
	seed              int64
	workers           int
	trials            int
	locks             string
	exempt            string
	date              string
}

func (sf *sessionFlags) config() sessionConfig {
	return sessionConfig{
		numCourts:         *sf.courts,
		numRounds:         *sf.rounds,
		gendered:          *sf.gendered,
		genderedFrequency: *sf.every,
		seed:              *sf.seed,
		workers:           *sf.workers,
		trials:            *sf.trials,
		locks:             *sf.lock,
		exempt:            *sf.exempt,
		date:              *sf.date,
	}
}

type session struct {
	participants []sched.Participant
	opts         sched.Options
	title        string
	date         time.Time
	warnings     []string
}

// savedSchedule is the document written by --json and --save.
type savedSchedule struct {
	Title        string              `json:"title"`
	Date         string              `json:"date,omitempty"`
	Seed         int64               `json:"seed"`
	Participants []sched.Participant `json:"participants"`
	Schedule     sched.Schedule      `json:"schedule"`
}

func (sf *sessionFlags) build(ctx context.Context, env *environment) (*session, error) {
	if *sf.roster == "" {
		return nil, errors.New("please provide --roster")
	}
	participants, err := loadRoster(ctx, env, *sf.roster)
	if err != nil {
		return nil, err
	}
	sess, err := newSession(participants, sf.config())
	if err != nil {
		return nil, err
	}
	sess.opts.Logger = env.logger
	return sess, nil
}

func loadRoster(ctx context.Context, env *environment,
	ref string) ([]sched.Participant, error) {

	name, ok := s3store.ParseURI(ref)
	if !ok {
		return roster.LoadFile(ref)
	}

	store, err := env.store(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening bucket %v: %w", env.bucket, err)
	}
	var raw json.RawMessage
	if err := store.GetJSON(ctx, s3store.RosterKey(name), &raw); err != nil {
		return nil, err
	}
	return roster.ParseJSON(raw)
}

// newSession clamps the configuration to what the setup form allows,
// resolves lock and exempt names, and collects the warnings a session
// organizer should see before play starts.
func newSession(participants []sched.Participant,
	cfg sessionConfig) (*session, error) {

	n := len(participants)
	if n < sched.PlayersPerCourt {
		return nil, fmt.Errorf("need at least %v players to generate a schedule (have %v)",
			sched.PlayersPerCourt, n)
	}

	numCourts := internal.ClampInt(cfg.numCourts, 1, internal.MaxCourts)
	numRounds := internal.ClampInt(cfg.numRounds, 1, internal.MaxRounds)
	freq := internal.ClampInt(cfg.genderedFrequency, 1, internal.MaxGenderedFrequency)

	sess := &session{participants: participants}
	numCourts, sess.warnings = internal.FitCourts(n, numCourts)

	locks, err := roster.ParseLocks(participants, cfg.locks)
	if err != nil {
		return nil, err
	}
	exempt, err := roster.ParseNames(participants, cfg.exempt)
	if err != nil {
		return nil, err
	}
	sess.date, err = internal.ParseDateOrZero(cfg.date)
	if err != nil {
		return nil, fmt.Errorf("bad --date %q: %w", cfg.date, err)
	}

	seed := cfg.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sess.opts = sched.Options{
		NumCourts:         numCourts,
		NumRounds:         numRounds,
		GenderedEnabled:   cfg.gendered,
		GenderedFrequency: freq,
		Trials:            cfg.trials,
		Workers:           cfg.workers,
		Seed:              seed,
		Locks:             locks,
		Exempt:            exempt,
	}
	sess.title = internal.SessionTitle(sess.date, numCourts, numRounds)
	return sess, nil
}

func (s *session) generate() sched.Schedule {
	return sched.GenerateWithOptions(s.participants, s.opts)
}

func (s *session) printWarnings(w io.Writer) {
	for _, warning := range s.warnings {
		fmt.Fprintf(w, "Warning: %v\n", warning)
	}
	fmt.Fprintf(w, "Seed: %v\n", s.opts.Seed)
}

func (s *session) saved(schedule sched.Schedule) savedSchedule {
	out := savedSchedule{
		Title:        s.title,
		Seed:         s.opts.Seed,
		Participants: s.participants,
		Schedule:     schedule,
	}
	if !s.date.IsZero() {
		out.Date = s.date.Format("2006-01-02")
	}
	return out
}
