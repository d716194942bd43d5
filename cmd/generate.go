package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/extract"
	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/quizgen"
	"github.com/abhisek/quizgen/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate <file>",
	Short: "Generate a quiz from a PDF or text file and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		count, _ := cmd.Flags().GetInt("count")
		title, _ := cmd.Flags().GetString("title")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		text, err := extract.NewRegistry().Extract(ctx, filepath.Base(args[0]), data)
		if err != nil {
			return userError(err)
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		llmCfg := llm.ConfigFromEnv()
		provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		genCfg := quizgen.DefaultConfig()
		genCfg.Timeout = llmCfg.Timeout
		questions, err := quizgen.New(provider, genCfg).
			Generate(ctx, quizgen.GenerateInput{Text: text, Count: count})
		if err != nil {
			return userError(err)
		}

		if strings.TrimSpace(title) == "" {
			title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			QuizTitle string          `json:"quiz_title"`
			Questions []quiz.Question `json:"questions"`
		}{title, questions})
	},
}

// userError strips a classified error down to its client-safe message.
func userError(err error) error {
	var qe *quiz.Error
	if errors.As(err, &qe) {
		return fmt.Errorf("%s (%s)", qe.Message, qe.Kind)
	}
	return err
}

func init() {
	generateCmd.Flags().IntP("count", "n", 10, "Number of questions to ask for")
	generateCmd.Flags().StringP("title", "t", "", "Quiz title (default: file name)")
}
