package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	askDocument string
	askDocType  string
	askClause   string
	askTimeout  time.Duration
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a legal question, optionally grounded in a document",
	Long: `Ask answers a legal question conversationally. With --document the
answer is grounded in that document's text; with --clause the given
clause is explained in plain English instead.

Example:
  legalease ask "What does indemnification mean?"
  legalease ask "Can I sublet?" --document lease.txt --type "rental agreement"
  legalease ask --clause "Tenant shall indemnify Landlord..." --type "rental agreement"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askDocument, "document", "", "document file to ground the answer in")
	askCmd.Flags().StringVar(&askDocType, "type", "contract", "document type hint")
	askCmd.Flags().StringVar(&askClause, "clause", "", "clause text to explain instead of asking a question")
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 2*time.Minute, "request timeout")
	askCmd.Flags().StringVar(&providerName, "provider", "", "LLM provider (openrouter, openai, ollama)")
	askCmd.Flags().StringVar(&modelName, "model", "", "LLM model name")
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	cfg := buildConfig()
	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	// Clause explanation mode
	if askClause != "" {
		answer, err := analyzer.ExplainClause(ctx, askClause, askDocType)
		if err != nil {
			return fmt.Errorf("explain clause: %w", err)
		}
		fmt.Println(answer)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a question or --clause text")
	}
	question := args[0]

	// Document-grounded Q&A
	if askDocument != "" {
		data, err := os.ReadFile(askDocument)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		answer, err := analyzer.AnswerQuestion(ctx, question, string(data), askDocType)
		if err != nil {
			return fmt.Errorf("answer question: %w", err)
		}
		fmt.Println(answer)
		return nil
	}

	// Conversational mode always produces a reply, canned if the
	// provider is unavailable
	fmt.Println(analyzer.ChatReply(ctx, question, ""))
	return nil
}
