/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package announce

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/mikeb26/pbrotation/sched"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWebhook struct {
	calls  []*discordgo.WebhookParams
	ids    []string
	failAt int
}

func (f *fakeWebhook) WebhookExecute(webhookID, token string, wait bool,
	data *discordgo.WebhookParams,
	options ...discordgo.RequestOption) (*discordgo.Message, error) {

	f.calls = append(f.calls, data)
	f.ids = append(f.ids, webhookID+"/"+token)
	if f.failAt > 0 && len(f.calls) == f.failAt {
		return nil, errors.New("rate limited")
	}
	return &discordgo.Message{}, nil
}

func p(id string, rating float64, g sched.Gender) sched.Participant {
	return sched.Participant{ID: id, Name: strings.ToUpper(id), Rating: rating, Gender: g}
}

func testSchedule() sched.Schedule {
	a, b, c, d := p("a", 4.0, sched.Male), p("b", 3.5, sched.Female),
		p("c", 4.5, sched.Male), p("d", 3.0, sched.Female)
	e := p("e", 3.5, sched.Male)
	return sched.Schedule{Rounds: []sched.Round{
		{
			RoundNumber: 1,
			Courts: []sched.CourtAssignment{{CourtNumber: 1,
				Team1: sched.Team{a, d}, Team2: sched.Team{c, b}, RatingDiff: 1.0}},
			SitOuts: []sched.Participant{e},
		},
		{
			RoundNumber: 2,
			Gendered:    true,
			Courts: []sched.CourtAssignment{{CourtNumber: 1,
				Team1: sched.Team{a, b}, Team2: sched.Team{e, d}, RatingDiff: 1.0}},
			SitOuts: []sched.Participant{c},
		},
	}}
}

func TestParseWebhookURL(t *testing.T) {
	id, token, err := ParseWebhookURL("https://discord.com/api/webhooks/12345/abc-DEF_9")
	require.NoError(t, err)
	assert.Equal(t, "12345", id)
	assert.Equal(t, "abc-DEF_9", token)

	id, token, err = ParseWebhookURL("https://discordapp.com/api/v10/webhooks/9/tok/")
	require.NoError(t, err)
	assert.Equal(t, "9", id)
	assert.Equal(t, "tok", token)

	for _, bad := range []string{"", "https://discord.com/api/webhooks/123", "not a url"} {
		_, _, err = ParseWebhookURL(bad)
		assert.ErrorIs(t, err, ErrBadWebhook, bad)
	}
}

func TestBalanceColor(t *testing.T) {
	assert.Equal(t, ColorBalanced, BalanceColor(0))
	assert.Equal(t, ColorBalanced, BalanceColor(0.2))
	assert.Equal(t, ColorFair, BalanceColor(0.3))
	assert.Equal(t, ColorUneven, BalanceColor(0.5))
}

func TestBuildRoundEmbed(t *testing.T) {
	s := testSchedule()

	embed := BuildRoundEmbed(s.Rounds[0])
	assert.Equal(t, "Round 1", embed.Title)
	assert.Equal(t, ColorUneven, embed.Color)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Court 1 · Diff 1.0", embed.Fields[0].Name)
	assert.Equal(t, "A (4.0) & D (3.0)\nvs\nC (4.5) & B (3.5)", embed.Fields[0].Value)
	assert.True(t, embed.Fields[0].Inline)
	assert.Equal(t, "Sitting out", embed.Fields[1].Name)
	assert.Equal(t, "E", embed.Fields[1].Value)

	embed = BuildRoundEmbed(s.Rounds[1])
	assert.Equal(t, "Round 2 (Gendered Round)", embed.Title)

	embed = BuildRoundEmbed(sched.Round{RoundNumber: 3})
	assert.Empty(t, embed.Fields)
	assert.Equal(t, "No courts this round", embed.Description)
}

func TestAnnounce(t *testing.T) {
	fake := &fakeWebhook{}
	a := NewWithExecutor(fake, "id", "tok", nil, nil)

	err := a.Announce(context.Background(), "Tuesday Night", testSchedule())
	require.NoError(t, err)
	require.Len(t, fake.calls, 3)
	assert.Equal(t, "Tuesday Night", fake.calls[0].Content)
	assert.Equal(t, DefaultUsername, fake.calls[0].Username)
	for i, call := range fake.calls[1:] {
		require.Len(t, call.Embeds, 1)
		assert.True(t, strings.HasPrefix(call.Embeds[0].Title, "Round"), i)
	}
	for _, id := range fake.ids {
		assert.Equal(t, "id/tok", id)
	}
}

func TestAnnounceStopsOnError(t *testing.T) {
	fake := &fakeWebhook{failAt: 2}
	a := NewWithExecutor(fake, "id", "tok", nil, nil)

	err := a.Announce(context.Background(), "Tuesday Night", testSchedule())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post 2 of 3")
	assert.Len(t, fake.calls, 2)
}

func TestAnnounceCanceled(t *testing.T) {
	fake := &fakeWebhook{}
	a, err := New("https://discord.com/api/webhooks/1/t", nil)
	require.NoError(t, err)
	a.exec = fake

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = a.Announce(ctx, "x", testSchedule())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.calls)
}

func TestTruncateContent(t *testing.T) {
	long := strings.Repeat("x", 3000)
	got := truncateContent(long)
	assert.Equal(t, msgLimit+3, len([]rune(got)))
	assert.Equal(t, "short", truncateContent("short"))
}
