/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package sched

import (
	"fmt"
	"strings"
)

func teamNames(t Team) string {
	return t[0].Name + " & " + t[1].Name
}

// BuildScheduleOutput formats a schedule as one aligned table per round.
func BuildScheduleOutput(schedule Schedule, title string) string {
	var sb strings.Builder

	if title != "" {
		sb.WriteString(title + "\n\n")
	}
	if len(schedule.Rounds) == 0 {
		sb.WriteString("No rounds scheduled\n")
		return sb.String()
	}

	for _, r := range schedule.Rounds {
		sb.WriteString(fmt.Sprintf("Round %d", r.RoundNumber))
		if r.Gendered {
			sb.WriteString(" (Gendered Round)")
		}
		sb.WriteString("\n")

		type row struct{ court, teamA, teamB, diff string }
		var rows []row
		for _, c := range r.Courts {
			rows = append(rows, row{
				court: fmt.Sprintf("%d.", c.CourtNumber),
				teamA: fmt.Sprintf("%s(%.1f)", teamNames(c.Team1), c.Team1.Rating()),
				teamB: fmt.Sprintf("%s(%.1f)", teamNames(c.Team2), c.Team2.Rating()),
				diff:  fmt.Sprintf("%.1f", c.RatingDiff),
			})
		}

		maxC, maxA, maxB := len("Court"), len("Team A"), len("Team B")
		for _, rw := range rows {
			maxC = max(maxC, len(rw.court))
			maxA = max(maxA, len(rw.teamA))
			maxB = max(maxB, len(rw.teamB))
		}
		if len(rows) > 0 {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %s\n", maxC, "Court",
				maxA, "Team A", maxB, "Team B", "Diff"))
			for _, rw := range rows {
				sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %s\n", maxC,
					rw.court, maxA, rw.teamA, maxB, rw.teamB, rw.diff))
			}
		} else {
			sb.WriteString("No courts this round\n")
		}

		if len(r.SitOuts) > 0 {
			names := make([]string, 0, len(r.SitOuts))
			for _, p := range r.SitOuts {
				names = append(names, p.Name)
			}
			sb.WriteString("Sitting out: " + strings.Join(names, ", ") + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// BuildSummaryOutput lists games played per participant followed by a
// partner/opponent matrix whose cells read "partnered/opposed".
func BuildSummaryOutput(s Summary) string {
	var sb strings.Builder

	sb.WriteString("Games Played:\n")
	for _, p := range s.Participants {
		sb.WriteString(fmt.Sprintf("  %s: %d (sat out %d)\n", p.Name,
			s.History.GamesPlayed(p.ID), s.History.SitOuts(p.ID)))
	}
	sb.WriteString("\nPartner/Opponent Matrix:\n")

	nameW := 0
	for _, p := range s.Participants {
		nameW = max(nameW, len(p.Name))
	}
	cells := make([][]string, len(s.Participants))
	colW := make([]int, len(s.Participants))
	for j, col := range s.Participants {
		colW[j] = len(col.Name)
	}
	for i, row := range s.Participants {
		cells[i] = make([]string, len(s.Participants))
		for j, col := range s.Participants {
			cell := "-"
			if row.ID != col.ID {
				cell = fmt.Sprintf("%d/%d", s.History.PartnerCount(row.ID, col.ID),
					s.History.OpponentCount(row.ID, col.ID))
			}
			cells[i][j] = cell
			colW[j] = max(colW[j], len(cell))
		}
	}

	sb.WriteString(fmt.Sprintf("%-*s", nameW, ""))
	for j, col := range s.Participants {
		sb.WriteString(fmt.Sprintf("  %-*s", colW[j], col.Name))
	}
	sb.WriteString("\n")
	for i, row := range s.Participants {
		sb.WriteString(fmt.Sprintf("%-*s", nameW, row.Name))
		for j := range s.Participants {
			sb.WriteString(fmt.Sprintf("  %-*s", colW[j], cells[i][j]))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\nRepeat partners: %d  Repeat opponents: %d\n",
		s.RepeatPartners(), s.RepeatOpponents()))

	return sb.String()
}
