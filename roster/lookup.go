/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-andiamo/splitter"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mikeb26/pbrotation/sched"
)

// Resolve finds the participant a typed name refers to. An exact id or
// case-insensitive name match wins. Otherwise the name is fuzzy matched
// against the roster and must clearly prefer one participant.
func Resolve(participants []sched.Participant,
	name string) (sched.Participant, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return sched.Participant{}, fmt.Errorf("%w: empty name", ErrUnknownName)
	}

	names := make([]string, len(participants))
	for i, p := range participants {
		if p.ID == name || strings.EqualFold(p.Name, name) {
			return p, nil
		}
		names[i] = p.Name
	}

	ranks := fuzzy.RankFindFold(name, names)
	if len(ranks) == 0 {
		return sched.Participant{}, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	sort.Sort(ranks)
	if len(ranks) > 1 && ranks[0].Distance == ranks[1].Distance {
		candidates := make([]string, 0, len(ranks))
		for _, r := range ranks {
			candidates = append(candidates, r.Target)
		}
		return sched.Participant{}, fmt.Errorf("%w: %q matches %v",
			ErrAmbiguousName, name, strings.Join(candidates, ", "))
	}
	return participants[ranks[0].OriginalIndex], nil
}

// splitList splits on sep honoring double quotes (plain or curly), so
// "Mary Ann, Jr" may appear as one name. unquote strips the quotes from
// each part.
func splitList(s string, sep rune, unquote bool) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	sp, err := splitter.NewSplitter(sep, splitter.DoubleQuotes,
		splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil, err
	}
	parts, err := sp.Split(s)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if unquote {
			part = strings.TrimSpace(strings.Trim(part, "\"“”"))
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}

// ParseNames resolves a comma separated list of names to participant ids.
func ParseNames(participants []sched.Participant, list string) ([]string, error) {
	names, err := splitList(list, ',', true)
	if err != nil {
		return nil, fmt.Errorf("roster.names: %w", err)
	}
	ids := make([]string, 0, len(names))
	for _, n := range names {
		p, err := Resolve(participants, n)
		if err != nil {
			return nil, err
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// ParseLocks reads "A:B,C:D" into locked pairs. Nobody may appear in more
// than one lock and nobody may be locked with themself.
func ParseLocks(participants []sched.Participant,
	list string) ([]sched.LockedPair, error) {

	specs, err := splitList(list, ',', false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadLock, err)
	}

	var locks []sched.LockedPair
	used := make(map[string]bool)
	for _, spec := range specs {
		members, err := splitList(spec, ':', true)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadLock, err)
		}
		if len(members) != 2 {
			return nil, fmt.Errorf("%w: %q is not NAME:NAME", ErrBadLock, spec)
		}
		p1, err := Resolve(participants, members[0])
		if err != nil {
			return nil, err
		}
		p2, err := Resolve(participants, members[1])
		if err != nil {
			return nil, err
		}
		if p1.ID == p2.ID {
			return nil, fmt.Errorf("%w: %v locked with themself", ErrBadLock,
				p1.Name)
		}
		for _, p := range []sched.Participant{p1, p2} {
			if used[p.ID] {
				return nil, fmt.Errorf("%w: %v is in more than one lock",
					ErrBadLock, p.Name)
			}
			used[p.ID] = true
		}
		locks = append(locks, sched.LockedPair{Player1ID: p1.ID, Player2ID: p2.ID})
	}
	return locks, nil
}
