/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/pbrotation/internal"
	"github.com/mikeb26/pbrotation/sched"
)

// ParseHTML extracts participants from the first table on a sign-up page
// whose header row names the name, rating and gender columns. A table with
// id "roster" is preferred when present.
func ParseHTML(r io.Reader) ([]sched.Participant, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("roster.html: %w", err)
	}
	return parseDoc(doc)
}

// FetchHTML downloads and parses a sign-up page. Pass a cached client from
// internal.NewCachedHttpClient to avoid refetching the same sheet.
func FetchHTML(ctx context.Context, client *http.Client,
	url string) ([]sched.Participant, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("roster.fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster.fetch: status %d fetching %s",
			resp.StatusCode, url)
	}

	return ParseHTML(resp.Body)
}

func parseDoc(doc *goquery.Document) ([]sched.Participant, error) {
	tables := doc.Find("table#roster")
	if tables.Length() == 0 {
		tables = doc.Find("table")
	}

	var cols columns
	var table *goquery.Selection
	tables.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var err error
		cols, err = matchColumns(cellTexts(s.Find("tr").First()))
		if err != nil {
			return true
		}
		table = s
		return false
	})
	if table == nil {
		return nil, fmt.Errorf("%w: no roster table found", ErrNoParticipants)
	}

	var participants []sched.Participant
	var rowErr error
	table.Find("tr").Slice(1, goquery.ToEnd).EachWithBreak(func(i int,
		row *goquery.Selection) bool {

		cells := cellTexts(row)
		if len(strings.TrimSpace(strings.Join(cells, ""))) == 0 {
			return true
		}
		p, err := cols.participant(cells)
		if err != nil {
			rowErr = fmt.Errorf("roster.html: row %v: %w", i+1, err)
			return false
		}
		participants = append(participants, p)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return finish(participants)
}

func cellTexts(row *goquery.Selection) []string {
	var texts []string
	row.Find("th, td").Each(func(_ int, c *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(c.Text()))
	})
	return texts
}
