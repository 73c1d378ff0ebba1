package screenshot

import (
	"context"

	"shotlist/config"
)

// Session is a live browser handle shared by every capture of a run.
// Implementations are not safe for concurrent use.
type Session interface {
	// Navigate loads url in the current tab
	Navigate(ctx context.Context, url string) error
	// Viewport returns the current viewport size
	Viewport(ctx context.Context) (config.Viewport, error)
	// SetViewport resizes the viewport
	SetViewport(ctx context.Context, v config.Viewport) error
	// Evaluate runs a JavaScript expression in the page and decodes its value into res
	Evaluate(ctx context.Context, expression string, res any) error
	// SaveScreenshot writes a PNG of the current viewport to path
	SaveScreenshot(ctx context.Context, path string) error
	// Close shuts the browser down
	Close() error
}

// Opener starts a capture session
type Opener func(ctx context.Context) (Session, error)
