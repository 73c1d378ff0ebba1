package screenshot

import (
	"context"
	"fmt"
	"time"

	"shotlist/config"
)

// Full document size, the root element's scroll box
const (
	scrollWidthScript  = `document.body.parentNode.scrollWidth`
	scrollHeightScript = `document.body.parentNode.scrollHeight`
)

// CaptureFullPage navigates to url, waits for the page to settle, grows the
// viewport to the whole document and saves a screenshot to path. The original
// viewport is restored whenever it was changed, including after a failed save.
func CaptureFullPage(ctx context.Context, s Session, url, path string, settle time.Duration) (err error) {
	if err := s.Navigate(ctx, url); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}

	if err := sleep(ctx, settle); err != nil {
		return fmt.Errorf("settle: %w", err)
	}

	original, err := s.Viewport(ctx)
	if err != nil {
		return fmt.Errorf("read viewport: %w", err)
	}

	var width, height int64
	if err := s.Evaluate(ctx, scrollWidthScript, &width); err != nil {
		return fmt.Errorf("measure page width: %w", err)
	}
	if err := s.Evaluate(ctx, scrollHeightScript, &height); err != nil {
		return fmt.Errorf("measure page height: %w", err)
	}

	full := config.Viewport{Width: int(width), Height: int(height)}
	// An empty document measures 0, which the browser reads as "no override"
	if full.Width <= 0 {
		full.Width = original.Width
	}
	if full.Height <= 0 {
		full.Height = original.Height
	}

	if err := s.SetViewport(ctx, full); err != nil {
		return fmt.Errorf("resize viewport to %s: %w", full, err)
	}
	defer func() {
		if rerr := s.SetViewport(ctx, original); rerr != nil && err == nil {
			err = fmt.Errorf("restore viewport to %s: %w", original, rerr)
		}
	}()

	if err := s.SaveScreenshot(ctx, path); err != nil {
		return fmt.Errorf("save screenshot: %w", err)
	}

	return nil
}

// sleep waits for d unless ctx is done first
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
