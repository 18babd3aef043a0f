package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/exercise"
	"github.com/shioubi0216/ToneMasterAI/internal/ui/theme"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the exercise types for a difficulty",
	RunE: func(cmd *cobra.Command, args []string) error {
		levelFlag, _ := cmd.Flags().GetString("level")
		levels := corpus.Difficulties
		if levelFlag != "" {
			d, err := corpus.ParseDifficulty(levelFlag)
			if err != nil {
				return err
			}
			levels = []corpus.Difficulty{d}
		}

		out := cmd.OutOrStdout()
		for i, d := range levels {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, theme.Subtitle.Render(string(d)))
			for _, k := range exercise.ListPracticeKinds(d) {
				fmt.Fprintf(out, "  %-26s %s\n", k, theme.Hint.Render(k.Title()))
			}
		}
		return nil
	},
}

func init() {
	kindsCmd.Flags().StringP("level", "l", "", "Difficulty (default: all)")
}
