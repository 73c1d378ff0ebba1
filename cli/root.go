// Package cli implements the shotlist command line using Cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"shotlist/browser"
	"shotlist/config"
	"shotlist/screenshot"
)

// ExitError carries a process exit status out of the command. The wrapped
// error has already been reported through the logger.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// OpenerFunc builds the session opener for a run
type OpenerFunc func(cfg *config.Config, logger *slog.Logger) screenshot.Opener

// NewRootCmd builds the shotlist command around newOpener
func NewRootCmd(newOpener OpenerFunc) *cobra.Command {
	var (
		configPath string
		flagCfg    = config.Default()
	)

	cmd := &cobra.Command{
		Use:   "shotlist <input_file>",
		Short: "Capture full-page screenshots of URLs listed in a CSV file",
		Long: `shotlist reads a CSV file, skips its header row and takes the first
column of every other row as a URL. Each URL is loaded in one shared
headless Chrome session and saved as a full-page PNG named
screenshot_<url>.png in the output folder.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			// Flags given on the command line win over the config file
			f := cmd.Flags()
			if f.Changed("output_folder") {
				cfg.OutputDir = flagCfg.OutputDir
			}
			if f.Changed("skip-confirmation") {
				cfg.SkipConfirmation = flagCfg.SkipConfirmation
			}
			if f.Changed("driver") {
				cfg.Driver = flagCfg.Driver
			}
			if f.Changed("delay") {
				cfg.Delay = flagCfg.Delay
			}
			if f.Changed("width") {
				cfg.Viewport.Width = flagCfg.Viewport.Width
			}
			if f.Changed("height") {
				cfg.Viewport.Height = flagCfg.Viewport.Height
			}
			if f.Changed("chrome-path") {
				cfg.ChromePath = flagCfg.ChromePath
			}
			if f.Changed("remote-url") {
				cfg.RemoteURL = flagCfg.RemoteURL
			}
			if f.Changed("headless") {
				cfg.Headless = flagCfg.Headless
			}
			if f.Changed("no-sandbox") {
				cfg.NoSandbox = flagCfg.NoSandbox
			}
			if f.Changed("log-level") {
				cfg.LogLevel = flagCfg.LogLevel
			}
			cfg.InputFile = args[0]

			if err := config.Validate(cfg); err != nil {
				return err
			}

			logger := newLogger(cfg.LogLevel, cmd.OutOrStdout())
			s := screenshot.NewScreenshoter(cfg, newOpener(cfg, logger), logger)
			s.Confirm = confirmer(cmd.InOrStdin(), cmd.OutOrStdout())

			_, err = s.Run(cmd.Context())
			switch {
			case err == nil, errors.Is(err, screenshot.ErrAborted):
				return nil
			case errors.Is(err, config.ErrInputNotFound):
				logger.Error("CSV file does not exist", "file", cfg.InputFile)
			case errors.Is(err, config.ErrInputEmpty):
				logger.Error("CSV file is empty", "file", cfg.InputFile)
			default:
				logger.Error("an error occurred", "error", err)
			}
			return &ExitError{Code: 1, Err: err}
		},
	}

	f := cmd.Flags()
	f.StringVar(&flagCfg.OutputDir, "output_folder", flagCfg.OutputDir, "Output folder for screenshots")
	f.BoolVar(&flagCfg.SkipConfirmation, "skip-confirmation", false, "Do not ask for confirmation before capturing")
	f.StringVar(&configPath, "config", "", "Path to a JSON configuration file")
	f.StringVar(&flagCfg.Driver, "driver", flagCfg.Driver, "Browser driver: chromedp or rod")
	f.IntVar(&flagCfg.Delay, "delay", flagCfg.Delay, "Delay in milliseconds between page load and capture")
	f.IntVar(&flagCfg.Viewport.Width, "width", flagCfg.Viewport.Width, "Default viewport width")
	f.IntVar(&flagCfg.Viewport.Height, "height", flagCfg.Viewport.Height, "Default viewport height")
	f.StringVar(&flagCfg.ChromePath, "chrome-path", "", "Path to the Chrome executable (default: search common locations)")
	f.StringVar(&flagCfg.RemoteURL, "remote-url", "", "DevTools URL of an already running browser, e.g. http://localhost:9222")
	f.BoolVar(&flagCfg.Headless, "headless", flagCfg.Headless, "Run the browser headless")
	f.BoolVar(&flagCfg.NoSandbox, "no-sandbox", false, "Disable the Chrome sandbox (needed in some containers)")
	f.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "Log level: debug, info, warn or error")

	return cmd
}

// Execute runs the root command and returns the process exit status
func Execute(ctx context.Context) int {
	cmd := NewRootCmd(browser.Opener)
	if err := cmd.ExecuteContext(ctx); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Run '%s --help' for usage.\n", cmd.Name())
		return 1
	}
	return 0
}
