/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sched

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Gender int

const (
	Male Gender = iota
	Female
)

func (g Gender) String() string {
	if g == Female {
		return "F"
	}
	return "M"
}

// ParseGender accepts M/F (any case) as well as the spelled out forms.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return Male, nil
	case "f", "female":
		return Female, nil
	}
	return Male, fmt.Errorf("sched: unrecognized gender %q", s)
}

func (g Gender) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

func (g *Gender) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseGender(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Participant is one attendee of a session. Rating is typically 3.0-5.0.
type Participant struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Gender Gender  `json:"gender"`
}

type Team [2]Participant

func (t Team) Rating() float64 {
	return t[0].Rating + t[1].Rating
}

func (t Team) Has(id string) bool {
	return t[0].ID == id || t[1].ID == id
}

type CourtAssignment struct {
	CourtNumber int     `json:"courtNumber"`
	Team1       Team    `json:"team1"`
	Team2       Team    `json:"team2"`
	RatingDiff  float64 `json:"ratingDiff"`
}

func (c CourtAssignment) Players() [4]Participant {
	return [4]Participant{c.Team1[0], c.Team1[1], c.Team2[0], c.Team2[1]}
}

// Mixed reports whether the court holds more than one gender.
func (c CourtAssignment) Mixed() bool {
	players := c.Players()
	for _, p := range players[1:] {
		if p.Gender != players[0].Gender {
			return true
		}
	}
	return false
}

type Round struct {
	RoundNumber int               `json:"roundNumber"`
	Courts      []CourtAssignment `json:"courts"`
	SitOuts     []Participant     `json:"sitOuts"`
	Gendered    bool              `json:"isGendered,omitempty"`
}

type Schedule struct {
	Rounds []Round `json:"rounds"`
}

// LockedPair pins two participants to the same team whenever both of them
// are playing in the same pool.
type LockedPair struct {
	Player1ID string `json:"player1Id"`
	Player2ID string `json:"player2Id"`
}

func (lp LockedPair) key() PairKey {
	return MakePairKey(lp.Player1ID, lp.Player2ID)
}
