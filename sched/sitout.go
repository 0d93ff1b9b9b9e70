/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sched

import (
	"math/rand"
	"sort"
)

// SitOutPolicy carries the optional inputs to SelectSitOuts. Both sets are
// keyed by participant id and may be nil.
type SitOutPolicy struct {
	// Previous holds those who sat out the round before; they are picked
	// again only after everyone else with the same games played.
	Previous map[string]bool
	// Exempt holds those who should keep playing; they are picked only once
	// every non-exempt participant is already sitting.
	Exempt map[string]bool
}

// SelectSitOuts chooses who sits out the coming round when participants
// outnumber the numCourts*4 available spots. Those who have played the most
// so far sit first, which evens out playing time over a session. Remaining
// ties are broken uniformly at random using rng.
func SelectSitOuts(rng *rand.Rand, participants []Participant, numCourts int,
	history *History, policy SitOutPolicy) []Participant {

	capacity := numCourts * PlayersPerCourt
	if capacity < 0 {
		capacity = 0
	}
	if len(participants) <= capacity {
		return nil
	}
	needed := len(participants) - capacity

	order := append([]Participant(nil), participants...)
	// shuffle then stable sort == random tie-break
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if ea, eb := policy.Exempt[a.ID], policy.Exempt[b.ID]; ea != eb {
			return eb
		}
		if ga, gb := history.GamesPlayed(a.ID), history.GamesPlayed(b.ID); ga != gb {
			return ga > gb
		}
		if pa, pb := policy.Previous[a.ID], policy.Previous[b.ID]; pa != pb {
			return pb
		}
		return false
	})

	return order[:needed]
}
