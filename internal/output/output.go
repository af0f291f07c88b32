// Package output provides the CLI's colored terminal output.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/deckardlabs/baseline/pkg/models"
)

// UI writes human-facing command output.
type UI struct {
	Out    io.Writer
	ErrOut io.Writer
}

// New creates a UI with default stdout/stderr writers.
func New() *UI {
	return &UI{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

var (
	errorPrefix = color.New(color.FgHiRed).Sprint("✗")
	green       = color.New(color.FgHiGreen).SprintFunc()
	yellow      = color.New(color.FgHiYellow).SprintFunc()
	red         = color.New(color.FgHiRed).SprintFunc()
)

func (u *UI) Printf(format string, a ...any) {
	fmt.Fprintf(u.Out, format, a...)
}

func (u *UI) Error(format string, a ...any) {
	fmt.Fprintf(u.ErrOut, "%s %s\n", errorPrefix, fmt.Sprintf(format, a...))
}

// Verdict colors a classification: green for human, yellow for suspicious,
// red for likely bot.
func Verdict(c models.Classification) string {
	switch c {
	case models.ClassHuman:
		return green(string(c))
	case models.ClassSuspicious:
		return yellow(string(c))
	default:
		return red(string(c))
	}
}

// Score colors the 0-100 human score with the classification cutoffs in
// mind: high is reassuring, low is not.
func Score(score int) string {
	s := fmt.Sprintf("%d", score)
	switch {
	case score >= 70:
		return green(s)
	case score >= 50:
		return yellow(s)
	default:
		return red(s)
	}
}

// Table creates a tablewriter configured with consistent styling.
func (u *UI) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}
