package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/ui/theme"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest what to practise next",
	RunE: func(cmd *cobra.Command, args []string) error {
		levelFlag, _ := cmd.Flags().GetString("level")
		blurb, _ := cmd.Flags().GetBool("blurb")

		level, err := corpus.ParseDifficulty(levelFlag)
		if err != nil {
			return err
		}
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		out := cmd.OutOrStdout()
		kind, ok := s.app.Recommend(level)
		if !ok {
			fmt.Fprintf(out, "No %s practice recorded yet. Try `tonemaster practice --level %s`.\n", level, level)
			return nil
		}
		fmt.Fprintf(out, "Next up: %s %s\n", theme.Title.Render(kind.Title()), theme.Hint.Render("("+string(kind)+")"))

		if blurb {
			ctx, cancel := s.app.LLMContext(cmd.Context())
			defer cancel()
			st := s.app.Stats()[level][kind]
			text, err := s.app.Advisor().RecommendationBlurb(ctx, level, kind, st)
			if err != nil {
				s.log.Debug("recommendation blurb fallback", zap.Error(err))
			}
			fmt.Fprintln(out, text)
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().StringP("level", "l", string(corpus.Beginner), "Difficulty: beginner, intermediate or advanced")
	recommendCmd.Flags().Bool("blurb", false, "Add a short encouragement (uses the AI provider when configured)")
}
