package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/exercise"
	"github.com/shioubi0216/ToneMasterAI/internal/progress"
	"github.com/shioubi0216/ToneMasterAI/internal/recommend"
	"github.com/shioubi0216/ToneMasterAI/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		out := cmd.OutOrStdout()
		stats := s.app.Stats()
		for _, d := range corpus.Difficulties {
			fmt.Fprintln(out, theme.Subtitle.Render(string(d)))
			renderStatsTable(out, s.app.ListPracticeKinds(d), stats[d])
			renderSuggestions(out, s.app.Suggestions(d))
			fmt.Fprintln(out)
		}

		sum := s.app.Progress().Summary()
		fmt.Fprintln(out, theme.Subtitle.Render("overall"))
		fmt.Fprintf(out, "Hiragana: %d learned, %d mastered\n", sum.HiraganaLearned, sum.HiraganaMastered)
		fmt.Fprintf(out, "Katakana: %d learned, %d mastered\n", sum.KatakanaLearned, sum.KatakanaMastered)
		fmt.Fprintf(out, "Answers:  %d/%d correct (%.2f%%)\n", sum.CorrectAnswers, sum.TotalAttempts, sum.Accuracy)
		fmt.Fprintf(out, "Sessions: %d\n", sum.Sessions)
		if sum.LastActive != nil {
			fmt.Fprintf(out, "Last active: %s\n", formatTime(sum.LastActive))
		}
		for _, script := range []corpus.Script{corpus.Hiragana, corpus.Katakana} {
			review, err := s.app.Progress().NeedsReview(script, 10)
			if err == nil && len(review) > 0 {
				fmt.Fprintf(out, "Review %s: %s\n", script, strings.Join(review, " "))
			}
		}
		return nil
	},
}

func renderStatsTable(w io.Writer, kinds []exercise.Kind, stats map[exercise.Kind]progress.KindStats) {
	fmt.Fprintf(w, "%-26s  %8s  %7s  %-26s  %s\n", "Exercise", "Attempts", "Correct", "Accuracy", "Last practiced")
	fmt.Fprintln(w, theme.Rule(90))
	for _, k := range kinds {
		st := stats[k]
		fmt.Fprintf(w, "%-26s  %8d  %7d  %s  %s\n",
			k.Title(), st.Attempts, st.Correct, theme.Bar(st.Accuracy(), 20), formatTime(st.LastPracticed))
	}
}

func renderSuggestions(w io.Writer, s recommend.Suggestions) {
	if s.HasLeastPracticed {
		fmt.Fprintln(w, theme.Hint.Render("Least practised: "+s.LeastPracticed.Title()))
	}
	if s.HasFocus {
		fmt.Fprintln(w, theme.Hint.Render("Needs focus: "+s.Focus.Title()))
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "Never"
	}
	return t.Local().Format("2006-01-02 15:04")
}
