/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent     = "pbrotation/0.4.0 (+https://github.com/mikeb26/pbrotation)"
	DefaultBucket = "bopmatic-pbrotation-prod-store"

	EnvBucket         = "PBROTATION_BUCKET"
	EnvDiscordWebhook = "PBROTATION_DISCORD_WEBHOOK"
	EnvLogLevel       = "PBROTATION_LOG_LEVEL"

	// bounds offered by the session setup form
	MaxCourts            = 16
	MaxRounds            = 16
	MaxGenderedFrequency = 5
)
