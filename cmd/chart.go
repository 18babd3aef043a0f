package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shioubi0216/ToneMasterAI/internal/corpus"
	"github.com/shioubi0216/ToneMasterAI/internal/ui/theme"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show the kana chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		scriptFlag, _ := cmd.Flags().GetString("script")
		script, err := corpus.ParseScript(scriptFlag)
		if err != nil {
			return err
		}
		rows, err := corpus.Chart(script)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render(strings.ToUpper(string(script))))
		renderChart(out, rows)
		return nil
	},
}

func renderChart(w io.Writer, rows []corpus.ChartRow) {
	var b strings.Builder
	b.WriteString("    ")
	for _, v := range []string{"A", "I", "U", "E", "O"} {
		b.WriteString(theme.Cell.Render(theme.Hint.Render(v)))
	}
	fmt.Fprintln(w, b.String())

	for _, row := range rows {
		b.Reset()
		fmt.Fprintf(&b, "%-4s", row.Consonant)
		for _, c := range row.Cells {
			if c == nil {
				b.WriteString(theme.Cell.Render(""))
				continue
			}
			b.WriteString(theme.Cell.Render(theme.Kana.Render(c.Symbol)))
		}
		fmt.Fprintln(w, b.String())

		b.Reset()
		b.WriteString("    ")
		for _, c := range row.Cells {
			r := ""
			if c != nil {
				r = c.Romaji
			}
			b.WriteString(theme.Cell.Render(theme.Hint.Render(r)))
		}
		fmt.Fprintln(w, b.String())
	}
}

func init() {
	chartCmd.Flags().StringP("script", "s", string(corpus.Hiragana), "Kana script: hiragana or katakana")
}
