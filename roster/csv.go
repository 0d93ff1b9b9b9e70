/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mikeb26/pbrotation/internal"
	"github.com/mikeb26/pbrotation/sched"
)

// columns maps a roster field to its index in a header row; -1 when absent
type columns struct {
	id, name, rating, gender int
}

func matchColumns(header []string) (columns, error) {
	cols := columns{id: -1, name: -1, rating: -1, gender: -1}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case h == "id":
			cols.id = i
		case strings.Contains(h, "name") && cols.name < 0:
			cols.name = i
		case strings.Contains(h, "rating") || strings.Contains(h, "level") ||
			strings.Contains(h, "dupr"):
			cols.rating = i
		case strings.Contains(h, "gender") || h == "sex":
			cols.gender = i
		}
	}
	if cols.name < 0 || cols.rating < 0 || cols.gender < 0 {
		return cols, fmt.Errorf("%w: header needs name, rating and gender columns (have %v)",
			ErrBadParticipant, header)
	}
	return cols, nil
}

func (c columns) participant(row []string) (sched.Participant, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	rating, err := strconv.ParseFloat(cell(c.rating), 64)
	if err != nil {
		return sched.Participant{}, fmt.Errorf("%w: %v: bad rating %q",
			ErrBadParticipant, cell(c.name), cell(c.rating))
	}
	return newParticipant(cell(c.id), internal.NormalizeName(cell(c.name)),
		rating, cell(c.gender))
}

// ParseCSV reads a header row followed by one participant per row. Blank
// rows and rows starting with '#' are skipped.
func ParseCSV(r io.Reader) ([]sched.Participant, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoParticipants
	}
	if err != nil {
		return nil, fmt.Errorf("roster.csv: %w", err)
	}
	cols, err := matchColumns(header)
	if err != nil {
		return nil, fmt.Errorf("roster.csv: %w", err)
	}

	var participants []sched.Participant
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster.csv: %w", err)
		}
		if len(strings.TrimSpace(strings.Join(row, ""))) == 0 {
			continue
		}
		p, err := cols.participant(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("roster.csv: line %v: %w", line, err)
		}
		participants = append(participants, p)
	}

	return finish(participants)
}

// WriteCSV is the inverse of ParseCSV.
func WriteCSV(w io.Writer, participants []sched.Participant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "rating", "gender"}); err != nil {
		return err
	}
	for _, p := range participants {
		err := cw.Write([]string{p.ID, p.Name,
			strconv.FormatFloat(p.Rating, 'f', 1, 64), p.Gender.String()})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
