package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/store"
	"github.com/spf13/cobra"
)

// Call kinds as shown to operators. Each maps to one llm purpose label.
var callKinds = map[string]string{
	"generate": llm.PurposeQuestionGen,
	"feedback": llm.PurposeFeedback,
}

var callsCmd = &cobra.Command{
	Use:     "calls",
	Aliases: []string{"llm"},
	Short:   "Inspect the model calls made for quiz generation and answer feedback",
	Long: `Every question-generation request and every streamed feedback reply is
recorded in the local event log. These commands read that log.`,
}

var callsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation and feedback calls",
	Example: `  quizgen calls list -n 50
  quizgen calls list --kind feedback --session abc123 --failed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")
		sessionID, _ := cmd.Flags().GetString("session")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		purpose := ""
		if kind != "" {
			p, ok := callKinds[kind]
			if !ok {
				return fmt.Errorf("unknown kind %q (want generate or feedback)", kind)
			}
			purpose = p
		}

		s, err := openEventLog(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose, SessionID: sessionID}
		if failedOnly {
			// Failures are filtered after the query, so widen the window.
			opts.Limit = 0
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query calls: %w", err)
		}
		if failedOnly {
			events = failedCalls(events, limit)
		}

		renderCallList(cmd.OutOrStdout(), events)
		return nil
	},
}

var callsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the prompt and reply of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid call id %q", args[0])
		}

		s, err := openEventLog(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get call: %w", err)
		}
		if e == nil {
			return fmt.Errorf("call %d not found", id)
		}

		renderCall(cmd.OutOrStdout(), e)
		return nil
	},
}

var callsUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Summarize token usage, failures and estimated cost per call kind",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventLog(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		renderUsage(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

func openEventLog(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	return s, nil
}

// kindOf is the operator-facing name for a purpose label.
func kindOf(purpose string) string {
	for k, p := range callKinds {
		if p == purpose {
			return k
		}
	}
	if purpose == "" {
		return "-"
	}
	return purpose
}

// failedCalls keeps at most limit failed calls, newest first. A limit of
// zero or less keeps all of them.
func failedCalls(events []store.LLMEventRecord, limit int) []store.LLMEventRecord {
	var out []store.LLMEventRecord
	for _, e := range events {
		if e.Success {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func renderCallList(w io.Writer, events []store.LLMEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No calls recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-16s  %-8s  %-12s  %-24s  %7s  %6s  %s\n",
		"ID", "When", "Kind", "Session", "Model", "Tokens", "Ms", "Result")
	fmt.Fprintln(w, strings.Repeat("─", 100))

	for _, e := range events {
		result := "ok"
		if !e.Success {
			result = "failed: " + truncate(e.ErrorMessage, 30)
		}
		session := e.SessionID
		if session == "" {
			session = "-"
		}
		fmt.Fprintf(w, "%-5d  %-16s  %-8s  %-12s  %-24s  %7d  %6d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			kindOf(e.Purpose),
			truncate(session, 12),
			truncate(e.Model, 24),
			e.InputTokens+e.OutputTokens,
			e.LatencyMs,
			result,
		)
	}
}

func renderCall(w io.Writer, e *store.LLMEventRecord) {
	delivery := "single reply"
	if e.Streamed {
		delivery = "streamed"
	}

	fmt.Fprintf(w, "Call %d (%s, %s)\n", e.ID, kindOf(e.Purpose), delivery)
	fmt.Fprintf(w, "  at       %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  model    %s/%s\n", e.Provider, e.Model)
	if e.SessionID != "" {
		fmt.Fprintf(w, "  session  %s\n", e.SessionID)
	}
	fmt.Fprintf(w, "  call id  %s\n", e.CallID)
	fmt.Fprintf(w, "  tokens   %d in, %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "  latency  %dms\n", e.LatencyMs)
	if !e.Success {
		fmt.Fprintf(w, "  error    %s\n", e.ErrorMessage)
	}

	section(w, "Prompt", e.RequestBody)
	section(w, "Reply", e.ResponseBody)
}

// section prints a titled body. Generation replies are JSON and get
// indented.
func section(w io.Writer, title, body string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
	if strings.TrimSpace(body) == "" {
		fmt.Fprintln(w, "(not captured)")
		return
	}
	var buf bytes.Buffer
	if json.Indent(&buf, []byte(body), "", "  ") == nil {
		body = buf.String()
	}
	fmt.Fprintln(w, body)
}

func renderUsage(w io.Writer, byPurpose []store.PurposeUsage, byModel []store.ModelUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No calls recorded.")
		return
	}

	rule := strings.Repeat("─", 70)
	fmt.Fprintln(w, "Calls by kind")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-10s  %6s  %8s  %10s  %10s  %8s\n",
		"Kind", "Calls", "Failed", "Input", "Output", "Avg Ms")
	fmt.Fprintln(w, rule)

	var calls, failures, in, out int
	for _, u := range byPurpose {
		fmt.Fprintf(w, "%-10s  %6d  %8s  %10d  %10d  %8d\n",
			kindOf(u.Purpose), u.Calls, failureRate(u.Failures, u.Calls), u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		failures += u.Failures
		in += u.InputTokens
		out += u.OutputTokens
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-10s  %6d  %8s  %10d  %10d\n", "all", calls, failureRate(failures, calls), in, out)

	if len(byModel) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated cost (USD)")
	fmt.Fprintln(w, rule)

	var total float64
	var unpriced []string
	for _, m := range byModel {
		cost := llm.LookupCost(m.Model)
		if cost == nil {
			unpriced = append(unpriced, m.Model)
			fmt.Fprintf(w, "%-32s  %6d calls  %10s\n", truncate(m.Model, 32), m.Calls, "?")
			continue
		}
		c := cost.Cost(m.InputTokens, m.OutputTokens)
		total += c
		fmt.Fprintf(w, "%-32s  %6d calls  %10s\n", truncate(m.Model, 32), m.Calls, formatCost(c))
	}
	fmt.Fprintln(w, rule)
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	fmt.Fprintf(w, "%-32s  %12s  %10s\n", label, "", formatCost(total))
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

func failureRate(failures, calls int) string {
	if calls == 0 || failures == 0 {
		return "0"
	}
	return fmt.Sprintf("%d (%d%%)", failures, failures*100/calls)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	callsListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	callsListCmd.Flags().StringP("kind", "k", "", "Only show one kind of call (generate, feedback)")
	callsListCmd.Flags().StringP("session", "s", "", "Only show calls made for this quiz session")
	callsListCmd.Flags().Bool("failed", false, "Only show calls that failed")

	callsCmd.AddCommand(callsListCmd)
	callsCmd.AddCommand(callsShowCmd)
	callsCmd.AddCommand(callsUsageCmd)
}
