package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"shotlist/config"
)

// RodSession drives one Chrome page through go-rod
type RodSession struct {
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher // nil when attached to a remote browser
	logger   *slog.Logger
	viewport config.Viewport
}

// NewRodSession launches a browser (or connects to cfg.RemoteURL) and opens one page
func NewRodSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*RodSession, error) {
	var l *launcher.Launcher
	var controlURL string

	if cfg.RemoteURL != "" {
		u, err := launcher.ResolveURL(cfg.RemoteURL)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve remote browser %s: %w", cfg.RemoteURL, err)
		}
		logger.Info("using remote browser", "url", cfg.RemoteURL)
		controlURL = u
	} else {
		l = launcher.New().
			Context(ctx).
			Headless(cfg.Headless).
			NoSandbox(cfg.NoSandbox).
			Set("window-size", fmt.Sprintf("%d,%d", cfg.Viewport.Width, cfg.Viewport.Height))

		execPath, err := FindChrome(cfg.ChromePath)
		switch {
		case err == nil:
			logger.Debug("using local Chrome executable", "path", execPath)
			l = l.Bin(execPath)
		case cfg.ChromePath != "":
			return nil, err
		default:
			logger.Debug("local Chrome not found, rod will resolve a browser itself", "error", err)
		}

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		logger.Debug("browser launched", "controlURL", u)
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		if l != nil {
			l.Kill()
		}
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		if l != nil {
			l.Kill()
		}
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &RodSession{
		browser:  browser,
		page:     page,
		launcher: l,
		logger:   logger,
		viewport: cfg.Viewport,
	}, nil
}

func (s *RodSession) Navigate(ctx context.Context, url string) error {
	p := s.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

func (s *RodSession) Viewport(context.Context) (config.Viewport, error) {
	return s.viewport, nil
}

func (s *RodSession) SetViewport(ctx context.Context, v config.Viewport) error {
	err := s.page.Context(ctx).SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             v.Width,
		Height:            v.Height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		return err
	}
	s.viewport = v
	return nil
}

func (s *RodSession) Evaluate(ctx context.Context, expression string, res any) error {
	obj, err := s.page.Context(ctx).Eval(expression)
	if err != nil {
		return err
	}
	return obj.Value.Unmarshal(res)
}

func (s *RodSession) SaveScreenshot(ctx context.Context, path string) error {
	buf, err := s.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// Close closes the page and, for a launched browser, kills the process
// and removes its profile directory
func (s *RodSession) Close() error {
	if s.launcher == nil {
		return s.page.Close()
	}

	err := s.browser.Close()
	s.launcher.Kill()
	s.launcher.Cleanup()
	s.logger.Debug("browser closed")
	return err
}
