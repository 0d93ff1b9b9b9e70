/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package roster loads session participants from the formats organizers
// keep them in: JSON (including a browser localStorage export), CSV and
// HTML sign-up sheets.
package roster

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mikeb26/pbrotation/sched"
)

const (
	MinRating = 3.0
	MaxRating = 5.0

	// localStorage key the browser roster page persists under
	LocalStorageKey = "pb-roster"
)

var (
	ErrNoParticipants = errors.New("roster: no participants")
	ErrBadParticipant = errors.New("roster: invalid participant")
	ErrDuplicateID    = errors.New("roster: duplicate participant id")
	ErrUnknownName    = errors.New("roster: unknown name")
	ErrAmbiguousName  = errors.New("roster: ambiguous name")
	ErrBadLock        = errors.New("roster: invalid lock")
	ErrUnknownFormat  = errors.New("roster: unknown file format")
)

// LoadFile reads a roster from disk, choosing the parser from the file
// extension (.json, .csv, .html or .htm).
func LoadFile(filename string) ([]sched.Participant, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("roster.load: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return ParseJSON(data)
	case ".csv":
		return ParseCSV(strings.NewReader(string(data)))
	case ".html", ".htm":
		return ParseHTML(strings.NewReader(string(data)))
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, filename)
}

// newParticipant trims and validates one row, assigning a fresh id when the
// source carries none.
func newParticipant(id, name string, rating float64,
	gender string) (sched.Participant, error) {

	p := sched.Participant{
		ID:     strings.TrimSpace(id),
		Name:   strings.Join(strings.Fields(name), " "),
		Rating: rating,
	}
	if p.Name == "" {
		return p, fmt.Errorf("%w: empty name", ErrBadParticipant)
	}
	if rating < MinRating || rating > MaxRating {
		return p, fmt.Errorf("%w: %v has rating %v outside %.1f-%.1f",
			ErrBadParticipant, p.Name, rating, MinRating, MaxRating)
	}
	g, err := sched.ParseGender(gender)
	if err != nil {
		return p, fmt.Errorf("%w: %v: %w", ErrBadParticipant, p.Name, err)
	}
	p.Gender = g
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return p, nil
}

// finish rejects empty rosters and duplicate ids.
func finish(participants []sched.Participant) ([]sched.Participant, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true
	}
	return participants, nil
}
