// Package analyze contains the top-level orchestrator for document
// analysis: classification gate, single-pass vs. chunked routing,
// per-chunk analysis with synthesis, and the degraded fallback that
// keeps the pipeline usable when the model is unreachable.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/taksh1507/LegalEaseAI/internal/cache"
	"github.com/taksh1507/LegalEaseAI/internal/chunk"
	"github.com/taksh1507/LegalEaseAI/internal/extract"
	"github.com/taksh1507/LegalEaseAI/internal/interpret"
	"github.com/taksh1507/LegalEaseAI/internal/llm"
	"github.com/taksh1507/LegalEaseAI/internal/model"
	"github.com/taksh1507/LegalEaseAI/internal/prompt"
)

// chunkFailurePrefix labels per-chunk placeholder analyses
const chunkFailurePrefix = "Analysis failed for this chunk: "

// Analyzer coordinates one analysis request end to end. The provider
// is injected so tests substitute fakes without global state. All
// per-request state lives on the stack; an Analyzer is safe for
// concurrent use.
type Analyzer struct {
	provider llm.Provider
	chunking model.ChunkingConfig
	pacer    *Pacer
	store    cache.Store
	cacheTTL time.Duration
	verbose  bool
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithCache enables result caching with the given TTL
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(a *Analyzer) {
		a.store = store
		a.cacheTTL = ttl
	}
}

// WithPacer substitutes a shared pacer. Batch processing passes one
// pacer to every worker so the aggregate provider call rate holds.
func WithPacer(p *Pacer) Option {
	return func(a *Analyzer) { a.pacer = p }
}

// WithVerbose enables progress output on stderr
func WithVerbose(verbose bool) Option {
	return func(a *Analyzer) { a.verbose = verbose }
}

// New creates an Analyzer with the given provider and chunking policy
func New(provider llm.Provider, chunking model.ChunkingConfig, opts ...Option) *Analyzer {
	if chunking.MaxChunkSize <= 0 {
		chunking.MaxChunkSize = 5000
	}
	if chunking.RouteThreshold <= 0 {
		chunking.RouteThreshold = 8000
	}

	a := &Analyzer{
		provider: provider,
		chunking: chunking,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.pacer == nil {
		a.pacer = NewPacer(chunking.CallInterval)
	}
	return a
}

// Analyze runs the full pipeline over raw document text. It returns an
// error only for invalid input (empty or too-short text), context
// cancellation, or an untyped provider failure; every recoverable
// model-side failure degrades to a well-formed result instead.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*model.AnalysisResult, error) {
	text, err := extract.Normalize(text)
	if err != nil {
		return nil, err
	}

	key := cache.Key(text)
	if a.store != nil {
		if res, found := a.store.Get(key); found {
			a.logf("cache hit, skipping model calls")
			return res, nil
		}
	}

	verdict, err := a.classify(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, llm.ErrMissingCredentials) {
			// No key configured: degrade immediately, no further
			// call attempts.
			a.logf("credentials missing, producing static analysis")
			return a.finish(key, interpret.StaticAnalysis(text)), nil
		}
		if !llm.IsRecoverable(err) {
			return nil, err
		}
		// Classification is a heuristic gate; a transport failure
		// here falls through to full analysis with the permissive
		// default verdict.
		a.logf("classification failed (%v), proceeding with legal analysis", err)
		verdict = model.DefaultVerdict()
	}

	if !verdict.IsLegal {
		a.logf("document classified as %q, short-circuiting", verdict.DocumentType)
		return a.finish(key, interpret.NotLegalResult(verdict)), nil
	}

	plan := chunk.Plan(text, a.chunking.RouteThreshold)
	a.logf("document: %d chars, ~%d pages, complex structure: %t, strategy: %s",
		plan.DocumentSize, plan.EstimatedPages, plan.HasComplexStructure, plan.RecommendedStrategy)

	var res *model.AnalysisResult
	if plan.ShouldChunk {
		res, err = a.analyzeChunked(ctx, text, verdict)
	} else {
		res, err = a.analyzeSingle(ctx, text, verdict)
	}
	if err != nil {
		return nil, err
	}

	return a.finish(key, res), nil
}

// classify runs the cheap classification call on a text prefix
func (a *Analyzer) classify(ctx context.Context, text string) (model.DocumentTypeVerdict, error) {
	content, err := a.call(ctx, prompt.Classification(text))
	if err != nil {
		return model.DocumentTypeVerdict{}, err
	}
	return interpret.DecodeVerdict(content, text), nil
}

// analyzeSingle is the short-document path: one full-analysis call
func (a *Analyzer) analyzeSingle(ctx context.Context, text string, verdict model.DocumentTypeVerdict) (*model.AnalysisResult, error) {
	content, err := a.call(ctx, prompt.FullAnalysis(text, verdict.DocumentType))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !llm.IsRecoverable(err) {
			return nil, err
		}
		a.logf("analysis call failed (%v), producing static analysis", err)
		return interpret.StaticAnalysis(text), nil
	}

	res, recovered := interpret.DecodeAnalysis(content)
	if recovered {
		res.Note = "Model output was not valid structured data; heuristic recovery applied."
	}
	return res, nil
}

// analyzeChunked analyzes each chunk sequentially through the pacer,
// tolerating per-chunk failures, then synthesizes one narrative.
func (a *Analyzer) analyzeChunked(ctx context.Context, text string, verdict model.DocumentTypeVerdict) (*model.AnalysisResult, error) {
	chunks := chunk.Split(text, a.chunking.MaxChunkSize)
	a.logf("split document into %d chunks", len(chunks))

	analyses := make([]model.ChunkAnalysis, 0, len(chunks))
	for _, c := range chunks {
		// Cancellation checkpoints sit between chunk iterations;
		// partial analysis lists are already fault-tolerant.
		if err := a.pacer.Wait(ctx); err != nil {
			return nil, err
		}

		content, err := a.call(ctx, prompt.ChunkAnalysis(c, len(chunks)))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if !llm.IsRecoverable(err) {
				return nil, err
			}
			a.logf("chunk %d/%d failed: %v", c.Index+1, len(chunks), err)
			content = chunkFailurePrefix + err.Error()
		} else {
			a.logf("chunk %d/%d analyzed (%d chars)", c.Index+1, len(chunks), c.Size)
		}

		analyses = append(analyses, model.ChunkAnalysis{
			ChunkIndex:        c.Index,
			Size:              c.Size,
			IsCritical:        c.IsCritical,
			Analysis:          content,
			HasFinancialTerms: c.HasFinancialTerms,
			HasDates:          c.HasDates,
		})
	}

	if err := a.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	content, err := a.call(ctx, prompt.Synthesis(analyses))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !llm.IsRecoverable(err) {
			return nil, err
		}
		a.logf("synthesis failed (%v), combining chunk analyses manually", err)
		res := interpret.ProseAnalysis(manualSynthesis(analyses))
		res.Note = "Synthesis unavailable; chunk analyses were combined without model assistance."
		return res, nil
	}

	res, recovered := interpret.DecodeAnalysis(content)
	if recovered {
		// Expected: the synthesis prompt asks for a narrative, not
		// the strict schema.
		res.Note = ""
	}
	return res, nil
}

// manualSynthesis is the no-model fallback: the literal concatenation
// of all chunk analyses under a labeled header.
func manualSynthesis(analyses []model.ChunkAnalysis) string {
	parts := make([]string, len(analyses))
	for i, a := range analyses {
		parts[i] = a.Analysis
	}
	return fmt.Sprintf("Combined analysis from %d document chunks:\n\n%s",
		len(analyses), strings.Join(parts, "\n\n"))
}

// ExplainClause returns a plain-English breakdown of one clause
func (a *Analyzer) ExplainClause(ctx context.Context, clauseText, documentType string) (string, error) {
	return a.call(ctx, prompt.ClauseExplanation(clauseText, documentType))
}

// AnswerQuestion answers a user question against the document text
func (a *Analyzer) AnswerQuestion(ctx context.Context, question, documentText, documentType string) (string, error) {
	return a.call(ctx, prompt.DocumentQA(question, documentText, documentType))
}

// Summarize produces an executive summary of the document
func (a *Analyzer) Summarize(ctx context.Context, documentText, documentType string) (string, error) {
	return a.call(ctx, prompt.DocumentSummary(documentText, documentType))
}

// fallbackReplies are served when the provider cannot answer a chat
// message. Generic on purpose: they must never claim specifics.
var fallbackReplies = []string{
	"Thank you for your question. For specific legal advice, I recommend consulting with a qualified attorney who can review your particular situation.",
	"That's an important legal consideration. Legal documents can be complex, and the specifics of your situation matter greatly.",
	"I understand your concern. Legal matters often require careful review of all relevant terms and conditions.",
	"This is a common question in legal document review. The answer often depends on the specific language used in your agreement.",
	"Legal documents can contain important nuances. I'd recommend having a legal professional review the specific terms that concern you.",
}

// ChatReply answers a conversational legal question, falling back to a
// canned reply when the provider fails.
func (a *Analyzer) ChatReply(ctx context.Context, message, docContext string) string {
	content, err := a.call(ctx, prompt.ChatReply(message, docContext))
	if err != nil {
		a.logf("chat call failed (%v), using fallback reply", err)
		return fallbackReplies[rand.IntN(len(fallbackReplies))]
	}
	return content
}

// call submits one prompt through the provider
func (a *Analyzer) call(ctx context.Context, p string) (string, error) {
	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{Prompt: p})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// finish stores the result and returns it
func (a *Analyzer) finish(key string, res *model.AnalysisResult) *model.AnalysisResult {
	if a.store != nil {
		if err := a.store.Set(key, res, a.cacheTTL); err != nil {
			a.logf("cache store failed: %v", err)
		}
	}
	return res
}

func (a *Analyzer) logf(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
