package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shioubi0216/ToneMasterAI/internal/advisor"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Study aids from the AI tutor",
	Long: "Asks the configured AI provider for study help. Without a provider,\n" +
		"or when a request fails, built-in text is shown instead.",
}

// adviseText runs one text-producing advisor call and prints the result.
func adviseText(cmd *cobra.Command, call func(s *session) (string, error)) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	text, err := call(s)
	if err != nil {
		s.log.Debug("advisor fallback", zap.Error(err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

var advisePathCmd = &cobra.Command{
	Use:   "path <interest>...",
	Short: "Suggest a kana learning path based on your interests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return adviseText(cmd, func(s *session) (string, error) {
			ctx, cancel := s.app.LLMContext(cmd.Context())
			defer cancel()
			return s.app.Advisor().LearningPath(ctx, args)
		})
	},
}

var adviseTipsCmd = &cobra.Command{
	Use:   "tips <character>",
	Short: "Memorization tips for a kana",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return adviseText(cmd, func(s *session) (string, error) {
			ctx, cancel := s.app.LLMContext(cmd.Context())
			defer cancel()
			return s.app.Advisor().LearningTips(ctx, args[0])
		})
	},
}

var adviseExamplesCmd = &cobra.Command{
	Use:   "examples <character>",
	Short: "Example words and sentences using a kana",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interests, _ := cmd.Flags().GetStringSlice("interests")
		return adviseText(cmd, func(s *session) (string, error) {
			ctx, cancel := s.app.LLMContext(cmd.Context())
			defer cancel()
			return s.app.Advisor().ExampleSentences(ctx, args[0], interests)
		})
	},
}

var adviseVocabCmd = &cobra.Command{
	Use:   "vocab <theme>",
	Short: "Beginner vocabulary for a theme",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		return adviseText(cmd, func(s *session) (string, error) {
			ctx, cancel := s.app.LLMContext(cmd.Context())
			defer cancel()
			words, err := s.app.Advisor().ThemedVocabulary(ctx, args[0], count)
			return "・" + strings.Join(words, "\n・"), err
		})
	},
}

func init() {
	adviseExamplesCmd.Flags().StringSlice("interests", nil, "Interests to theme the examples (comma separated)")
	adviseVocabCmd.Flags().IntP("count", "n", advisor.DefaultThemedWords, fmt.Sprintf("Number of words (max %d)", advisor.MaxThemedWords))

	adviseCmd.AddCommand(advisePathCmd)
	adviseCmd.AddCommand(adviseTipsCmd)
	adviseCmd.AddCommand(adviseExamplesCmd)
	adviseCmd.AddCommand(adviseVocabCmd)
}
