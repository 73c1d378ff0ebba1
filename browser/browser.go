// Package browser provides the capture sessions used by screenshot: a
// chromedp-driven Chrome tab (the default) and a go-rod page.
package browser

import (
	"context"
	"fmt"
	"log/slog"

	"shotlist/config"
	"shotlist/screenshot"
)

var (
	_ screenshot.Session = (*ChromedpSession)(nil)
	_ screenshot.Session = (*RodSession)(nil)
)

// Open starts the session selected by cfg.Driver
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (screenshot.Session, error) {
	switch cfg.Driver {
	case config.DriverChromedp, "":
		s, err := NewChromedpSession(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverRod:
		s, err := NewRodSession(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
}

// Opener binds cfg and logger for screenshot.Screenshoter
func Opener(cfg *config.Config, logger *slog.Logger) screenshot.Opener {
	return func(ctx context.Context) (screenshot.Session, error) {
		logger.Debug("starting browser session", "driver", cfg.Driver, "headless", cfg.Headless)
		return Open(ctx, cfg, logger)
	}
}
