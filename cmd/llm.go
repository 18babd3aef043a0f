package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shioubi0216/ToneMasterAI/internal/llm"
	"github.com/shioubi0216/ToneMasterAI/internal/store"
	"github.com/shioubi0216/ToneMasterAI/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded AI requests",
}

// errNoEvents means the database has not been created yet.
var errNoEvents = errors.New("no LLM events recorded yet")

// openEventStore opens the configured database without creating it.
func openEventStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	path := cfg.DBPath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, errNoEvents
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// withEvents runs fn against the event log, printing a notice when there
// is none.
func withEvents(cmd *cobra.Command, fn func(repo store.EventRepo, out io.Writer) error) error {
	s, err := openEventStore(cmd)
	if errors.Is(err, errNoEvents) {
		fmt.Fprintln(cmd.OutOrStdout(), "No LLM events recorded yet.")
		return nil
	}
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s.EventRepo(), cmd.OutOrStdout())
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent AI requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		return withEvents(cmd, func(repo store.EventRepo, out io.Writer) error {
			events, err := repo.QueryLLMEvents(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}
			if len(events) == 0 {
				fmt.Fprintln(out, "No matching LLM events.")
				return nil
			}

			fmt.Fprintf(out, "%-5s  %-16s  %-18s  %-24s  %6s  %6s  %6s  %s\n",
				"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
			fmt.Fprintln(out, theme.Rule(100))
			for _, e := range events {
				ok := theme.Correct.Render("✓")
				if !e.Success {
					ok = theme.Incorrect.Render("✗")
				}
				fmt.Fprintf(out, "%-5d  %-16s  %-18s  %-24s  %6d  %6d  %6d  %s\n",
					e.ID,
					e.Timestamp.Local().Format("2006-01-02 15:04"),
					truncate(e.Purpose, 18),
					truncate(e.Model, 24),
					e.InputTokens,
					e.OutputTokens,
					e.LatencyMs,
					ok,
				)
			}
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one AI request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withEvents(cmd, func(repo store.EventRepo, out io.Writer) error {
			e, err := repo.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}

			fmt.Fprintf(out, "ID:        %d\n", e.ID)
			fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Provider:  %s\n", e.Provider)
			fmt.Fprintf(out, "Model:     %s\n", e.Model)
			fmt.Fprintf(out, "Purpose:   %s\n", e.Purpose)
			fmt.Fprintf(out, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
			fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
			fmt.Fprintf(out, "Success:   %v\n", e.Success)
			if e.ErrorMessage != "" {
				fmt.Fprintf(out, "Error:     %s\n", theme.Incorrect.Render(e.ErrorMessage))
			}

			section(out, "REQUEST", e.RequestBody)
			section(out, "RESPONSE", e.ResponseBody)
			return nil
		})
	},
}

func section(w io.Writer, title, body string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.Subtitle.Render(title))
	fmt.Fprintln(w, theme.Rule(60))
	if body == "" {
		body = theme.Hint.Render("(not captured)")
	}
	fmt.Fprintln(w, body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(repo store.EventRepo, out io.Writer) error {
			ctx := cmd.Context()
			byPurpose, err := repo.LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}
			if len(byPurpose) == 0 {
				fmt.Fprintln(out, "No LLM usage recorded yet.")
				return nil
			}

			fmt.Fprintln(out, theme.Subtitle.Render("Usage by purpose"))
			fmt.Fprintf(out, "%-18s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg Ms")
			fmt.Fprintln(out, theme.Rule(60))
			var calls, in, outTokens int
			for _, u := range byPurpose {
				fmt.Fprintf(out, "%-18s  %6d  %10d  %10d  %8d\n",
					u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
				calls += u.Calls
				in += u.InputTokens
				outTokens += u.OutputTokens
			}
			fmt.Fprintln(out, theme.Rule(60))
			fmt.Fprintf(out, "%-18s  %6d  %10d  %10d\n", "TOTAL", calls, in, outTokens)

			byModel, err := repo.LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			if len(byModel) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, theme.Subtitle.Render("Estimated cost (USD)"))
			fmt.Fprintf(out, "%-28s  %6s  %10s\n", "Model", "Calls", "Cost")
			fmt.Fprintln(out, theme.Rule(60))
			var total float64
			var unknown []string
			for _, u := range byModel {
				cost := llm.LookupCost(u.Model)
				if cost == nil {
					unknown = append(unknown, u.Model)
					fmt.Fprintf(out, "%-28s  %6d  %10s\n", truncate(u.Model, 28), u.Calls, "?")
					continue
				}
				c := cost.Cost(u.InputTokens, u.OutputTokens)
				total += c
				fmt.Fprintf(out, "%-28s  %6d  %10s\n", truncate(u.Model, 28), u.Calls, formatCost(c))
			}
			fmt.Fprintln(out, theme.Rule(60))
			label := "TOTAL"
			if len(unknown) > 0 {
				label = "TOTAL (partial)"
			}
			fmt.Fprintf(out, "%-28s  %6s  %10s\n", label, "", formatCost(total))
			if len(unknown) > 0 {
				fmt.Fprintf(out, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
			}
			return nil
		})
	},
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "",
		"Filter by purpose ("+strings.Join(llm.Purposes(), ", ")+")")
	llmListCmd.Flags().Duration("since", 0, "Only show events newer than this, e.g. 24h")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
