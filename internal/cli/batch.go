package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taksh1507/LegalEaseAI/internal/analyze"
	"github.com/taksh1507/LegalEaseAI/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple documents from a list file in parallel",
	Long: `Batch analyzes multiple documents concurrently:
- Read document paths from the input file (one per line)
- Analyze documents in parallel with a configurable worker count
- Chunks within each document remain sequential; all workers share
  one call pacer so the provider's rate limit holds in aggregate
- Write one JSON and Markdown report per document

Example:
  legalease batch documents.txt
  legalease batch documents.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./legalease-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")

	// Shared pipeline flags
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache")
	batchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	batchCmd.Flags().StringVar(&providerName, "provider", "", "LLM provider (openrouter, openai, ollama)")
	batchCmd.Flags().StringVar(&modelName, "model", "", "LLM model name")
	batchCmd.Flags().DurationVar(&callInterval, "call-interval", 0, "pause between sequential model calls (0 = config default)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	cfg.Concurrency.Workers = concurrency

	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Batch input: %s, workers: %d, output: %s\n", file, concurrency, outputDir)

	processor := worker.NewBatchProcessor(analyzer, cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	renderer := analyze.NewRenderer(cfg.Output.IncludeFooter)
	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, r.Error)
			continue
		}

		base := strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path))
		jsonPath := filepath.Join(outputDir, base+".json")
		mdPath := filepath.Join(outputDir, base+".md")

		if err := renderer.RenderJSON(r.Analysis, jsonPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(r.Analysis, mdPath); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s → %s (risk: %s, %d clauses, %d red flags)\n",
			r.Path, jsonPath, r.Analysis.OverallRiskLevel, len(r.Analysis.Clauses), len(r.Analysis.RedFlags))
	}

	fmt.Fprintf(os.Stderr, "\nProcessed %d documents, %d failed\n", len(results), failed)

	if failed == len(results) && len(results) > 0 {
		return fmt.Errorf("all %d documents failed", len(results))
	}
	return nil
}
