package screenshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"shotlist/config"
)

// ErrAborted is returned by Run when the user declines the confirmation prompt
var ErrAborted = errors.New("aborted by user")

// ItemError records a URL that could not be captured
type ItemError struct {
	URL string
	Err error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("error capturing %s: %v", e.URL, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// Summary is the outcome of a capture run
type Summary struct {
	Captured []string // output paths, in list order
	Failed   []*ItemError
}

// Screenshoter handles the screenshot capturing logic
type Screenshoter struct {
	Config *config.Config
	Open   Opener
	Logger *slog.Logger

	// Confirm is asked before anything is written unless
	// Config.SkipConfirmation is set. A nil Confirm always proceeds.
	Confirm func(cfg *config.Config) (bool, error)
}

// NewScreenshoter creates a new Screenshoter
func NewScreenshoter(cfg *config.Config, open Opener, logger *slog.Logger) *Screenshoter {
	return &Screenshoter{
		Config: cfg,
		Open:   open,
		Logger: logger,
	}
}

func (s *Screenshoter) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Run checks the input file and output folder, asks for confirmation and
// captures every URL of Config.InputFile into Config.OutputDir. Input and
// output folder problems are reported before a browser is started.
func (s *Screenshoter) Run(ctx context.Context) (*Summary, error) {
	cfg := s.Config
	log := s.log()

	if err := config.CheckInputFile(cfg.InputFile); err != nil {
		return nil, err
	}

	if !cfg.SkipConfirmation && s.Confirm != nil {
		ok, err := s.Confirm(cfg)
		if err != nil {
			return nil, fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			log.Info("exiting")
			return nil, ErrAborted
		}
	}

	status := config.DirStatus(cfg.OutputDir)
	created, err := config.PrepareOutputDir(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	if created {
		log.Info("output folder does not exist, created it", "dir", cfg.OutputDir)
	} else {
		log.Debug("using output folder", "dir", cfg.OutputDir, "status", status)
	}

	log.Info("starting screenshot capture", "input", cfg.InputFile, "output", cfg.OutputDir, "driver", cfg.Driver)
	startTime := time.Now()

	summary, err := s.CaptureList(ctx, cfg.InputFile, cfg.OutputDir)

	log.Info("screenshot capture finished",
		"captured", len(summary.Captured),
		"failed", len(summary.Failed),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)
	return summary, err
}

// CaptureList opens one browser session and captures every URL listed in
// inputPath into outputDir. A URL that fails is logged, recorded in the
// summary and skipped. Errors starting the session or reading the list end
// the run early. The session is closed on every return path.
func (s *Screenshoter) CaptureList(ctx context.Context, inputPath, outputDir string) (summary *Summary, err error) {
	log := s.log()
	summary = &Summary{}

	session, err := s.Open(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to start browser session: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Warn("failed to close browser session", "error", cerr)
		} else {
			log.Debug("browser session closed")
		}
	}()
	defer func() {
		// A driver panic ends the run like any other session failure
		if r := recover(); r != nil {
			err = fmt.Errorf("browser session failed: %v", r)
		}
	}()

	if err := session.SetViewport(ctx, s.Config.Viewport); err != nil {
		return summary, fmt.Errorf("failed to set default viewport %s: %w", s.Config.Viewport, err)
	}

	if err := config.EnsureOutputDir(outputDir); err != nil {
		return summary, fmt.Errorf("failed to create output folder %s: %w", outputDir, err)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return summary, fmt.Errorf("error opening URL list: %w", err)
	}
	defer f.Close()

	urls := newURLReader(f)
	for {
		url, err := urls.Next()
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			return summary, fmt.Errorf("error reading URL list %s: %w", inputPath, err)
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		path := filepath.Join(outputDir, Filename(url))
		log.Debug("capturing", "url", url, "path", path)

		if err := CaptureFullPage(ctx, session, url, path, s.Config.SettleDelay()); err != nil {
			summary.Failed = append(summary.Failed, &ItemError{URL: url, Err: err})
			log.Error("error capturing", "url", url, "error", err)
			continue
		}

		summary.Captured = append(summary.Captured, path)
		log.Info("screenshot saved", "url", url, "path", path)
	}
}
