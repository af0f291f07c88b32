package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckardlabs/baseline/internal/output"
	"github.com/deckardlabs/baseline/pkg/engine"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <login>",
	Short: "Analyze one GitHub account and print the verdict",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return analyzeRun(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func analyzeRun(cmd *cobra.Command, login string) error {
	client, err := newGitHubClient()
	if err != nil {
		return err
	}

	profile, events, err := client.FetchAccount(cmd.Context(), login)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", login, err)
	}

	result := engine.New(engine.DefaultConfig()).Evaluate(profile, events, time.Now())

	ui.Printf("%s  score %s  verdict %s\n", profile.Login,
		output.Score(result.Score), output.Verdict(result.Classification))
	ui.Printf("account age %d days, %d followers, %d repos, %d recent events\n\n",
		result.Profile.AgeDays, result.Profile.Followers, result.Profile.Repos, len(events))

	if len(result.Flags) == 0 {
		ui.Printf("No suspicious signals found.\n")
		return nil
	}

	table := ui.Table([]string{"FLAG", "POINTS", "DETAIL"})
	for _, f := range result.Flags {
		_ = table.Append([]string{f.Label, strconv.Itoa(f.Points), f.Detail})
	}
	return table.Render()
}
