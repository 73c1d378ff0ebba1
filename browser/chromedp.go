package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"shotlist/config"
)

// ChromedpSession drives one Chrome tab through chromedp
type ChromedpSession struct {
	ctx         context.Context // tab context, every action runs below it
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	viewport    config.Viewport
}

// NewChromedpSession starts (or attaches to) a browser and opens one tab.
// Priority: 1. remote DevTools endpoint, 2. local Chrome, 3. chromedp's own lookup.
func NewChromedpSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ChromedpSession, error) {
	var allocCtx context.Context
	var cancelAlloc context.CancelFunc

	if cfg.RemoteURL != "" {
		logger.Info("using remote browser", "url", cfg.RemoteURL)
		allocCtx, cancelAlloc = chromedp.NewRemoteAllocator(ctx, cfg.RemoteURL)
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.WindowSize(cfg.Viewport.Width, cfg.Viewport.Height),
			chromedp.DisableGPU,
			chromedp.Flag("headless", cfg.Headless),
		)
		if cfg.NoSandbox {
			opts = append(opts, chromedp.NoSandbox)
		}

		execPath, err := FindChrome(cfg.ChromePath)
		switch {
		case err == nil:
			logger.Debug("using local Chrome executable", "path", execPath)
			opts = append(opts, chromedp.ExecPath(execPath))
		case cfg.ChromePath != "":
			return nil, err
		default:
			logger.Debug("local Chrome not found, falling back to default Chrome settings", "error", err)
		}

		allocCtx, cancelAlloc = chromedp.NewExecAllocator(ctx, opts...)
	}

	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logf(logger)),
		chromedp.WithErrorf(logf(logger)),
	)

	// The browser starts lazily on the first Run, force it here so a missing
	// or broken binary is reported before the first URL
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &ChromedpSession{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		viewport:    cfg.Viewport,
	}, nil
}

// run executes actions in the tab, aborting them when ctx is done
func (s *ChromedpSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func (s *ChromedpSession) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, chromedp.Navigate(url))
}

func (s *ChromedpSession) Viewport(context.Context) (config.Viewport, error) {
	return s.viewport, nil
}

func (s *ChromedpSession) SetViewport(ctx context.Context, v config.Viewport) error {
	if err := s.run(ctx, emulation.SetDeviceMetricsOverride(int64(v.Width), int64(v.Height), 1, false)); err != nil {
		return err
	}
	s.viewport = v
	return nil
}

func (s *ChromedpSession) Evaluate(ctx context.Context, expression string, res any) error {
	return s.run(ctx, chromedp.Evaluate(expression, res))
}

func (s *ChromedpSession) SaveScreenshot(ctx context.Context, path string) error {
	var buf []byte
	if err := s.run(ctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// Close shuts the browser down gracefully, or detaches from a remote one
func (s *ChromedpSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancelTab()
	s.cancelAlloc()
	return err
}

// logf routes chromedp's printf-style logging to slog at debug level
func logf(logger *slog.Logger) func(string, ...any) {
	return func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...), "component", "chromedp")
	}
}
