/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a development style logger writing to stderr at the
// given level ("debug", "info", "warn", "error"). An empty level means warn
// so the CLI stays quiet unless asked.
func NewLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.WarnLevel
	if strings.TrimSpace(level) != "" {
		var err error
		lvl, err = zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("internal.logger: bad level %q: %w", level, err)
		}
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("internal.logger: build failed: %w", err)
	}
	return logger, nil
}
