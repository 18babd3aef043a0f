package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shioubi0216/ToneMasterAI/internal/app"
	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/exercise"
	"github.com/shioubi0216/ToneMasterAI/internal/sampler"
	"github.com/shioubi0216/ToneMasterAI/internal/ui/theme"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session",
	Long: "Generates exercises one at a time and grades your answers.\n" +
		"Without --kind the recommended exercise type is used. Type q to stop.",
	RunE: runPractice,
}

// errQuit ends a session early on "q" or end of input.
var errQuit = errors.New("quit")

func runPractice(cmd *cobra.Command, _ []string) error {
	levelFlag, _ := cmd.Flags().GetString("level")
	kindFlag, _ := cmd.Flags().GetString("kind")
	scriptFlag, _ := cmd.Flags().GetString("script")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")

	level, err := corpus.ParseDifficulty(levelFlag)
	if err != nil {
		return err
	}
	script, err := corpus.ParseScript(scriptFlag)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	var opts []app.Option
	if seed != 0 {
		opts = append(opts, app.WithSampler(sampler.New(seed)))
	}
	s, err := openSession(cmd, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	kind, err := pickKind(s.app, level, kindFlag)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())

	id := s.app.Progress().StartSession(ctx, level)
	fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("%s · %s", kind.Title(), level)))

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			break
		}
		ex, err := s.app.Generate(kind, level, exercise.Context{Script: script})
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Subtitle.Render(fmt.Sprintf("[%d/%d]", i+1, count)))
		renderExercise(out, ex)

		resp, err := readResponse(out, in, ex)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return err
		}

		ok, err := s.app.Answer(ctx, ex, resp)
		if err != nil {
			s.log.Warn("record character", zap.Error(err))
		}
		renderVerdict(out, ex, ok)
	}

	sess, err := s.app.Progress().EndSession(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Rule(40))
	if sess.Attempts == 0 {
		fmt.Fprintln(out, theme.Hint.Render("No answers recorded."))
		return nil
	}
	ratio := float64(sess.Correct) / float64(sess.Attempts)
	fmt.Fprintf(out, "Session: %d/%d correct  %s\n", sess.Correct, sess.Attempts, theme.Bar(ratio, 20))
	return nil
}

// pickKind resolves --kind, falling back to the recommendation and then to
// the first kind in the catalog.
func pickKind(a *app.App, level corpus.Difficulty, flag string) (exercise.Kind, error) {
	if flag != "" {
		return exercise.ParseKind(flag)
	}
	if k, ok := a.Recommend(level); ok {
		return k, nil
	}
	kinds := a.ListPracticeKinds(level)
	if len(kinds) == 0 {
		return "", fmt.Errorf("no exercise types for %s", level)
	}
	return kinds[0], nil
}

func renderExercise(w io.Writer, ex *exercise.Exercise) {
	fmt.Fprintln(w, theme.Body.Render(ex.Question))

	if ex.JapaneseText != "" && !strings.Contains(ex.Question, ex.JapaneseText) {
		fmt.Fprintln(w, "  "+theme.Kana.Render(ex.JapaneseText))
	}
	if ex.AudioText != "" && ex.AudioText != ex.JapaneseText {
		fmt.Fprintln(w, theme.Hint.Render("Listen (read aloud): ")+theme.Kana.Render(ex.AudioText))
	}
	if ex.Passage != "" {
		fmt.Fprintln(w, theme.Card.Render(ex.Passage))
	}
	if len(ex.Dialogue) > 0 {
		lines := make([]string, len(ex.Dialogue))
		for i, l := range ex.Dialogue {
			lines[i] = fmt.Sprintf("%s: %s", l.Speaker, l.Text)
		}
		fmt.Fprintln(w, theme.Card.Render(strings.Join(lines, "\n")))
	}
	if ex.Scenario != "" {
		fmt.Fprintln(w, ex.Scenario)
	}
	if len(ex.Vocabulary) > 0 {
		fmt.Fprintln(w, theme.Hint.Render("Try to use: ")+strings.Join(ex.Vocabulary, "、"))
	}
	if ex.PronunciationGuidance != "" {
		fmt.Fprintln(w, theme.Hint.Render(ex.PronunciationGuidance))
	}
	if len(ex.KeyVocabulary) > 0 {
		fmt.Fprintln(w, theme.Hint.Render("Key words: ")+strings.Join(ex.KeyVocabulary, "、"))
	}
	if ex.TimeLimitSecs > 0 {
		fmt.Fprintln(w, theme.Hint.Render(fmt.Sprintf("Answer within %d seconds!", ex.TimeLimitSecs)))
	}
	for i, opt := range ex.Options {
		fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
	}
}

func renderVerdict(w io.Writer, ex *exercise.Exercise, ok bool) {
	fmt.Fprintln(w, theme.Verdict(ok))
	if !ok {
		switch ex.Format {
		case exercise.FormatMultipleChoice:
			fmt.Fprintf(w, "Answer: %s\n", ex.Answer)
		case exercise.FormatMultiSelect:
			fmt.Fprintf(w, "Answer: %s\n", strings.Join(ex.Answers, ", "))
		}
	}
	if ex.FullSentence != "" {
		fmt.Fprintln(w, theme.Kana.Render(ex.FullSentence))
	}
	if ex.Translation != "" {
		fmt.Fprintln(w, theme.Hint.Render(ex.Translation))
	}
	if ex.Explanation != "" {
		fmt.Fprintln(w, theme.Hint.Render(ex.Explanation))
	}
}

func prompt(f exercise.Format) string {
	switch f {
	case exercise.FormatMultipleChoice:
		return "Your answer (number): "
	case exercise.FormatMultiSelect:
		return "Your answers (numbers, comma separated): "
	case exercise.FormatSelfAssessment:
		return "How well did you do? (1-5): "
	}
	return "Your answer: "
}

// readResponse prompts until the learner gives a well-formed answer.
func readResponse(w io.Writer, in *bufio.Scanner, ex *exercise.Exercise) (exercise.Response, error) {
	for {
		fmt.Fprint(w, prompt(ex.Format))
		if !in.Scan() {
			if err := in.Err(); err != nil {
				return exercise.Response{}, err
			}
			return exercise.Response{}, errQuit
		}
		line := strings.TrimSpace(in.Text())
		if strings.EqualFold(line, "q") {
			return exercise.Response{}, errQuit
		}
		resp, err := parseResponse(ex, line)
		if err == nil {
			return resp, nil
		}
		fmt.Fprintln(w, theme.Hint.Render(err.Error()))
	}
}

// parseResponse turns one input line into a Response for ex. Choices may be
// given by number or by option text.
func parseResponse(ex *exercise.Exercise, line string) (exercise.Response, error) {
	switch ex.Format {
	case exercise.FormatMultipleChoice:
		opt, err := optionFor(ex.Options, line)
		if err != nil {
			return exercise.Response{}, err
		}
		return exercise.Response{Choice: opt}, nil

	case exercise.FormatMultiSelect:
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '、' })
		if len(fields) == 0 {
			return exercise.Response{}, fmt.Errorf("pick at least one option")
		}
		choices := make([]string, 0, len(fields))
		for _, f := range fields {
			opt, err := optionFor(ex.Options, f)
			if err != nil {
				return exercise.Response{}, err
			}
			choices = append(choices, opt)
		}
		return exercise.Response{Choices: choices}, nil

	case exercise.FormatSelfAssessment:
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > 5 {
			return exercise.Response{}, fmt.Errorf("enter a number from 1 to 5")
		}
		return exercise.Response{Confidence: n}, nil
	}

	if line == "" {
		return exercise.Response{}, fmt.Errorf("write a short answer")
	}
	return exercise.Response{Text: line}, nil
}

func optionFor(options []string, s string) (string, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(options) {
			return "", fmt.Errorf("choose 1-%d", len(options))
		}
		return options[n-1], nil
	}
	for _, opt := range options {
		if opt == s {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%q is not one of the options", s)
}

func init() {
	practiceCmd.Flags().StringP("level", "l", string(corpus.Beginner), "Difficulty: beginner, intermediate or advanced")
	practiceCmd.Flags().StringP("kind", "k", "", "Exercise type (see `tonemaster kinds`)")
	practiceCmd.Flags().StringP("script", "s", string(corpus.Hiragana), "Kana script: hiragana or katakana")
	practiceCmd.Flags().IntP("count", "n", 5, "Number of exercises")
	practiceCmd.Flags().Uint64("seed", 0, "Random seed for a reproducible session (0 = random)")
}
