package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
)

// Supported capture drivers
const (
	DriverChromedp = "chromedp"
	DriverRod      = "rod"
)

const (
	defaultOutputDir = "output"
	defaultDelay     = 2000 // milliseconds
	defaultWidth     = 1920
	defaultHeight    = 1080
	defaultLogLevel  = "info"
)

// Viewport represents browser viewport dimensions
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// String formats the viewport as WIDTHxHEIGHT
func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// Config represents the application configuration
type Config struct {
	InputFile        string   `json:"-"` // Positional argument, never read from the file
	OutputDir        string   `json:"outputDir,omitempty"`
	SkipConfirmation bool     `json:"skipConfirmation,omitempty"`
	Viewport         Viewport `json:"viewport,omitzero"`
	Delay            int      `json:"delay,omitempty"` // Settle delay in milliseconds
	Driver           string   `json:"driver,omitempty"`
	ChromePath       string   `json:"chromePath,omitempty"`
	RemoteURL        string   `json:"remoteURL,omitempty"` // DevTools endpoint of an already running browser
	Headless         bool     `json:"headless"`
	NoSandbox        bool     `json:"noSandbox,omitempty"`
	LogLevel         string   `json:"logLevel,omitempty"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	return &Config{
		OutputDir: defaultOutputDir,
		Viewport:  Viewport{Width: defaultWidth, Height: defaultHeight},
		Delay:     defaultDelay,
		Driver:    DriverChromedp,
		Headless:  true,
		LogLevel:  defaultLogLevel,
	}
}

// LoadConfig loads configuration from a file on top of the defaults.
// An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := json.Unmarshal(data, config, json.RejectUnknownMembers(true)); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// SettleDelay is the wait between navigation and measuring the page
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Delay) * time.Millisecond
}

// Validate validates configuration and sets defaults
func Validate(config *Config) error {
	if config.OutputDir == "" {
		config.OutputDir = defaultOutputDir
	}

	// Zero keeps the default, negative values are a mistake
	if config.Delay == 0 {
		config.Delay = defaultDelay
	} else if config.Delay < 0 {
		return fmt.Errorf("delay must not be negative")
	}

	if config.Viewport.Width == 0 {
		config.Viewport.Width = defaultWidth
	}
	if config.Viewport.Height == 0 {
		config.Viewport.Height = defaultHeight
	}
	if config.Viewport.Width < 0 || config.Viewport.Height < 0 {
		return fmt.Errorf("invalid viewport %s", config.Viewport)
	}

	config.Driver = strings.ToLower(strings.TrimSpace(config.Driver))
	switch config.Driver {
	case "":
		config.Driver = DriverChromedp
	case DriverChromedp, DriverRod:
	default:
		return fmt.Errorf("unsupported driver: %s (supported: %s, %s)", config.Driver, DriverChromedp, DriverRod)
	}

	config.LogLevel = strings.ToLower(strings.TrimSpace(config.LogLevel))
	switch config.LogLevel {
	case "":
		config.LogLevel = defaultLogLevel
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (supported: debug, info, warn, error)", config.LogLevel)
	}

	return nil
}
