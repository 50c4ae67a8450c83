package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taksh1507/LegalEaseAI/internal/analyze"
	"github.com/taksh1507/LegalEaseAI/internal/cache"
	"github.com/taksh1507/LegalEaseAI/internal/llm"
	"github.com/taksh1507/LegalEaseAI/internal/model"
)

var (
	outJSON        string
	outMD          string
	analyzeTimeout time.Duration
	noCache        bool
	noFooter       bool
	providerName   string
	modelName      string
	maxChunkSize   int
	chunkThreshold int
	callInterval   time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a legal document and generate a risk/clause report",
	Long: `Analyze runs the full pipeline over one document:
- Classify whether the document contains legal/contractual content
- Route short documents to a single analysis pass
- Split long documents into structure-aware chunks, analyze each
  sequentially under a rate limit, and synthesize one report
- Degrade to a deterministic keyword analysis if the model is unavailable

The input must be plain UTF-8 text (extract PDF/DOCX content first).

Example:
  legalease analyze contract.txt
  legalease analyze lease.txt --json report.json --md report.md
  legalease analyze nda.txt --provider openai --model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Pipeline flags
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 10*time.Minute, "overall analysis timeout (chunked documents make many sequential calls)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache (force fresh analysis)")
	analyzeCmd.Flags().IntVar(&maxChunkSize, "max-chunk-size", 0, "max characters per chunk (0 = config default)")
	analyzeCmd.Flags().IntVar(&chunkThreshold, "chunk-threshold", 0, "document length that triggers chunked analysis (0 = config default)")
	analyzeCmd.Flags().DurationVar(&callInterval, "call-interval", 0, "pause between sequential model calls (0 = config default)")

	// LLM flags
	analyzeCmd.Flags().StringVar(&providerName, "provider", "", "LLM provider (openrouter, openai, ollama)")
	analyzeCmd.Flags().StringVar(&modelName, "model", "", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	cfg := buildConfig()

	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s (%d bytes)\n", file, len(data))
		fmt.Fprintf(os.Stderr, "Provider: %s\n\n", cfg.LLM.Provider)
	}

	result, err := analyzer.Analyze(ctx, string(data))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	renderer := analyze.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	renderer.RenderSummary(result)

	return nil
}

// buildConfig assembles configuration from defaults, config file/env,
// and flags (highest priority).
func buildConfig() model.Config {
	cfg := model.DefaultConfig()
	_ = viper.Unmarshal(&cfg)

	if providerName != "" {
		cfg.LLM.Provider = providerName
	}
	if modelName != "" {
		cfg.LLM.Model = modelName
	}
	if maxChunkSize > 0 {
		cfg.Chunking.MaxChunkSize = maxChunkSize
	}
	if chunkThreshold > 0 {
		cfg.Chunking.RouteThreshold = chunkThreshold
	}
	if callInterval > 0 {
		cfg.Chunking.CallInterval = callInterval
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	// API key resolution. A missing key is not an error: the
	// pipeline degrades to the static analysis.
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "ollama":
			// No key needed
		default:
			cfg.LLM.APIKey = os.Getenv("OPENROUTER_API_KEY")
			if cfg.LLM.APIKey == "" {
				cfg.LLM.APIKey = os.Getenv("OPENAI_ROUTER_KEY")
			}
		}
	}

	return cfg
}

// newAnalyzer wires the provider, cache, and orchestrator
func newAnalyzer(cfg model.Config) (*analyze.Analyzer, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, err
	}

	opts := []analyze.Option{analyze.WithVerbose(cfg.Output.Verbose)}

	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err == nil {
				dir = home + "/.legalease/cache"
			}
		}
		if dir != "" {
			store := cache.NewLayeredStore(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
			opts = append(opts, analyze.WithCache(store, cfg.Cache.MemoryTTL))
		}
	}

	return analyze.New(provider, cfg.Chunking, opts...), nil
}
