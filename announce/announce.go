/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package announce posts a generated schedule to a Discord channel through a
// webhook, one message per round.
package announce

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/mikeb26/pbrotation/sched"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultUsername = "Court Rotation"

	// discord rejects longer message content and embed field values
	msgLimit   = 1988
	fieldLimit = 1000

	ColorBalanced = 0x15803d
	ColorFair     = 0xa16207
	ColorUneven   = 0xb91c1c
)

var ErrBadWebhook = errors.New("announce: invalid webhook url")

// WebhookExecutor is satisfied by *discordgo.Session.
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool,
		data *discordgo.WebhookParams,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Announcer struct {
	Username string

	exec      WebhookExecutor
	webhookID string
	token     string
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// ParseWebhookURL extracts the id and token from a url of the form
// https://discord.com/api/webhooks/{id}/{token}.
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrBadWebhook, err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", ErrBadWebhook, raw)
}

// New returns an Announcer posting to webhookURL through a token-less
// discordgo session. Posts are spaced to stay under discord's webhook rate
// limit of 5 requests per 2 seconds.
func New(webhookURL string, logger *zap.Logger) (*Announcer, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("announce: failed to initialize discord client: %w", err)
	}
	limiter := rate.NewLimiter(rate.Every(400*time.Millisecond), 1)
	return NewWithExecutor(session, id, token, limiter, logger), nil
}

func NewWithExecutor(exec WebhookExecutor, webhookID, token string,
	limiter *rate.Limiter, logger *zap.Logger) *Announcer {

	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Announcer{
		Username:  DefaultUsername,
		exec:      exec,
		webhookID: webhookID,
		token:     token,
		limiter:   limiter,
		logger:    logger,
	}
}

// Announce posts the title followed by one embed message per round. It
// stops at the first failed post.
func (a *Announcer) Announce(ctx context.Context, title string,
	schedule sched.Schedule) error {

	msgs := []*discordgo.WebhookParams{{
		Content:  truncateContent(title),
		Username: a.Username,
	}}
	for _, r := range schedule.Rounds {
		msgs = append(msgs, &discordgo.WebhookParams{
			Username: a.Username,
			Embeds:   []*discordgo.MessageEmbed{BuildRoundEmbed(r)},
		})
	}

	for i, msg := range msgs {
		if err := a.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("announce: %w", err)
		}
		if _, err := a.exec.WebhookExecute(a.webhookID, a.token, false, msg); err != nil {
			return fmt.Errorf("announce: post %v of %v failed: %w", i+1,
				len(msgs), err)
		}
		a.logger.Debug("announce: posted", zap.Int("message", i+1),
			zap.Int("of", len(msgs)))
	}
	return nil
}

// BalanceColor grades a court's rating gap the way the schedule page
// colors its balance badges.
func BalanceColor(ratingDiff float64) int {
	switch {
	case ratingDiff <= 0.2:
		return ColorBalanced
	case ratingDiff <= 0.4:
		return ColorFair
	}
	return ColorUneven
}

func teamNames(t sched.Team) string {
	return fmt.Sprintf("%v (%.1f) & %v (%.1f)", t[0].Name, t[0].Rating,
		t[1].Name, t[1].Rating)
}

// BuildRoundEmbed renders one round as a discord embed: an inline field per
// court and a trailing sit-out field. The embed takes the color of its least
// balanced court.
func BuildRoundEmbed(r sched.Round) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Round %v", r.RoundNumber),
		Color: ColorBalanced,
	}
	if r.Gendered {
		embed.Title += " (Gendered Round)"
	}

	worst := 0.0
	for _, c := range r.Courts {
		if c.RatingDiff > worst {
			worst = c.RatingDiff
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("Court %v · Diff %.1f", c.CourtNumber, c.RatingDiff),
			Value: truncateField(fmt.Sprintf("%v\nvs\n%v", teamNames(c.Team1),
				teamNames(c.Team2))),
			Inline: true,
		})
	}
	if len(r.Courts) > 0 {
		embed.Color = BalanceColor(worst)
	} else {
		embed.Description = "No courts this round"
	}

	if len(r.SitOuts) > 0 {
		names := make([]string, len(r.SitOuts))
		for i, p := range r.SitOuts {
			names[i] = p.Name
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Sitting out",
			Value: truncateField(strings.Join(names, ", ")),
		})
	}
	return embed
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		s = fmt.Sprintf("%v...", string(runes[:limit]))
	}
	return s
}

func truncateContent(s string) string {
	return truncate(s, msgLimit)
}

func truncateField(s string) string {
	return truncate(s, fieldLimit)
}
