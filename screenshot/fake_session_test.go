package screenshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"shotlist/config"
)

// pngHeader stands in for real image bytes
var pngHeader = []byte("\x89PNG\r\n\x1a\n")

// fakeSession records every call and fails on demand
type fakeSession struct {
	viewport config.Viewport
	page     config.Viewport // scroll size reported for every page
	current  string

	calls        []string
	navigateErr  map[string]error
	evaluateErr  error
	saveErr      error
	setErrAfter  int // SetViewport fails once it has been called this many times; 0 disables
	setCalls     int
	panicOnVisit string
	closed       int
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		page:        config.Viewport{Width: 1280, Height: 4000},
		navigateErr: map[string]error{},
	}
}

func (f *fakeSession) Navigate(_ context.Context, url string) error {
	f.calls = append(f.calls, "navigate "+url)
	if url == f.panicOnVisit {
		panic("driver exploded")
	}
	if err := f.navigateErr[url]; err != nil {
		return err
	}
	f.current = url
	return nil
}

func (f *fakeSession) Viewport(context.Context) (config.Viewport, error) {
	f.calls = append(f.calls, "viewport")
	return f.viewport, nil
}

func (f *fakeSession) SetViewport(_ context.Context, v config.Viewport) error {
	f.setCalls++
	f.calls = append(f.calls, "set "+v.String())
	if f.setErrAfter > 0 && f.setCalls >= f.setErrAfter {
		return errors.New("resize refused")
	}
	f.viewport = v
	return nil
}

func (f *fakeSession) Evaluate(_ context.Context, expression string, res any) error {
	f.calls = append(f.calls, "eval "+expression)
	if f.evaluateErr != nil {
		return f.evaluateErr
	}
	value := f.page.Height
	if strings.HasSuffix(expression, "scrollWidth") {
		value = f.page.Width
	}
	return json.Unmarshal([]byte(fmt.Sprint(value)), res)
}

func (f *fakeSession) SaveScreenshot(_ context.Context, path string) error {
	f.calls = append(f.calls, "save "+path)
	if f.saveErr != nil {
		return f.saveErr
	}
	return os.WriteFile(path, pngHeader, 0644)
}

func (f *fakeSession) Close() error {
	f.closed++
	f.calls = append(f.calls, "close")
	return nil
}

func (f *fakeSession) opener() Opener {
	return func(context.Context) (Session, error) {
		return f, nil
	}
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}
