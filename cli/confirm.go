package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shotlist/config"
)

var (
	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Bold(true)
)

// confirmer prints the run options and reads a y/n answer from in.
// Anything but "y" (any case), including a closed input, declines.
func confirmer(in io.Reader, out io.Writer) func(*config.Config) (bool, error) {
	reader := bufio.NewReader(in)
	return func(cfg *config.Config) (bool, error) {
		fmt.Fprintln(out, renderSummary(cfg))
		fmt.Fprintln(out, "Please confirm the options above.")
		fmt.Fprintln(out, "Press 'y' to confirm, or any other key to exit.")
		fmt.Fprint(out, "Is this correct? (y/n): ")

		answer, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
	}
}

func renderSummary(cfg *config.Config) string {
	row := func(label, value string) string {
		return labelStyle.Render(label) + " " + value
	}
	return summaryStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		row("CSV file:", cfg.InputFile),
		row("Output folder:", cfg.OutputDir+" "+config.DirStatus(cfg.OutputDir)),
		row("Driver:", cfg.Driver),
		row("Viewport:", cfg.Viewport.String()),
	))
}
