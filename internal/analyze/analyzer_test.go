package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/taksh1507/LegalEaseAI/internal/cache"
	"github.com/taksh1507/LegalEaseAI/internal/chunk"
	"github.com/taksh1507/LegalEaseAI/internal/extract"
	"github.com/taksh1507/LegalEaseAI/internal/llm"
	"github.com/taksh1507/LegalEaseAI/internal/model"
)

const legalVerdictJSON = `{"isLegal": true, "documentType": "contract", "confidence": 0.9}`

const leaseAnalysisJSON = `{
  "summary": "A standard one-year lease with clear payment terms.",
  "clauses": [{"title": "Rent", "riskLevel": "low", "importance": "high"}],
  "overallRiskLevel": "low",
  "recommendations": ["Read before signing"]
}`

// fakeProvider scripts completion responses per call index and records
// every prompt it receives.
type fakeProvider struct {
	mu      sync.Mutex
	prompts []string
	respond func(call int, prompt string) (string, error)
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, &llm.TransportError{Err: err}
	}

	f.mu.Lock()
	call := len(f.prompts)
	f.prompts = append(f.prompts, req.Prompt)
	f.mu.Unlock()

	content, err := f.respond(call, req.Prompt)
	if err != nil {
		return nil, err
	}
	return &llm.CompletionResponse{Content: content}, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeProvider) prompt(i int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompts[i]
}

// longContract builds a multi-paragraph document exceeding threshold chars
func longContract(threshold int) string {
	var paragraphs []string
	for i := 0; len(strings.Join(paragraphs, "\n\n")) <= threshold; i++ {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"Paragraph %d of the agreement covers payment obligations and termination rights of each party in detail.", i))
	}
	return strings.Join(paragraphs, "\n\n")
}

func TestAnalyze_InputErrors(t *testing.T) {
	provider := &fakeProvider{respond: func(int, string) (string, error) {
		t.Fatal("no model call expected for invalid input")
		return "", nil
	}}
	a := New(provider, model.ChunkingConfig{})

	if _, err := a.Analyze(context.Background(), "   "); !errors.Is(err, extract.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
	if _, err := a.Analyze(context.Background(), "too short"); !errors.Is(err, extract.ErrDocumentTooShort) {
		t.Errorf("expected ErrDocumentTooShort, got %v", err)
	}
}

func TestAnalyze_SinglePass(t *testing.T) {
	doc := "This rental agreement obligates the tenant to pay rent monthly."

	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		switch call {
		case 0:
			return legalVerdictJSON, nil
		case 1:
			return leaseAnalysisJSON, nil
		default:
			return "", fmt.Errorf("unexpected call %d", call)
		}
	}}
	a := New(provider, model.ChunkingConfig{})

	result, err := a.Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.callCount() != 2 {
		t.Errorf("expected 2 calls (classify + analyze), got %d", provider.callCount())
	}
	if !strings.Contains(provider.prompt(1), doc) {
		t.Error("analysis prompt should embed the document text")
	}
	if strings.Contains(provider.prompt(1), "PART 1 of") {
		t.Error("short document must not take the chunked path")
	}
	if result.Summary != "A standard one-year lease with clear payment terms." {
		t.Errorf("unexpected summary: %q", result.Summary)
	}
	if result.Note != "" {
		t.Errorf("clean decode should carry no note, got %q", result.Note)
	}
}

func TestAnalyze_NotLegalShortCircuit(t *testing.T) {
	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		return `{"isLegal": false, "documentType": "research paper", "confidence": 0.95}`, nil
	}}
	a := New(provider, model.ChunkingConfig{})

	result, err := a.Analyze(context.Background(), "The study recorded results across three experiments.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.callCount() != 1 {
		t.Errorf("non-legal verdict must stop after classification, got %d calls", provider.callCount())
	}
	if len(result.RedFlags) != 1 || result.RedFlags[0].Severity != model.SeverityNotice {
		t.Errorf("expected one notice red flag, got %+v", result.RedFlags)
	}
	if !strings.Contains(result.Summary, "research paper") {
		t.Errorf("summary should name the detected type: %q", result.Summary)
	}
}

func TestAnalyze_KeywordGateOnGarbageClassification(t *testing.T) {
	// Unparseable classification output falls back to keyword counting;
	// this document reads as academic, so the gate still closes.
	doc := "The experiment followed a documented methodology. The research study reports objective results and a conclusion."

	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		return "I am not sure what this document is.", nil
	}}
	a := New(provider, model.ChunkingConfig{})

	result, err := a.Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.callCount() != 1 {
		t.Errorf("expected 1 call, got %d", provider.callCount())
	}
	if len(result.Clauses) != 0 {
		t.Errorf("non-legal result should carry no clauses, got %d", len(result.Clauses))
	}
}

func TestAnalyze_MissingCredentialsDegrades(t *testing.T) {
	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		return "", llm.ErrMissingCredentials
	}}
	a := New(provider, model.ChunkingConfig{})

	result, err := a.Analyze(context.Background(), "This agreement assigns liability for damages to the contractor.")
	if err != nil {
		t.Fatalf("degraded path must not surface an error, got %v", err)
	}

	if provider.callCount() != 1 {
		t.Errorf("missing credentials must stop after the first attempt, got %d calls", provider.callCount())
	}
	if !strings.Contains(result.Summary, "-word document") {
		t.Errorf("expected static analysis summary, got %q", result.Summary)
	}
	if result.Note == "" {
		t.Error("degraded result must carry a note")
	}
}

func TestAnalyze_ClassificationTransportFailureProceeds(t *testing.T) {
	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		if call == 0 {
			return "", &llm.TransportError{StatusCode: 503, Body: "unavailable"}
		}
		return leaseAnalysisJSON, nil
	}}
	a := New(provider, model.ChunkingConfig{})

	result, err := a.Analyze(context.Background(), "This agreement obligates the vendor to deliver monthly reports.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Classification is advisory; the pipeline proceeds with analysis
	if provider.callCount() != 2 {
		t.Errorf("expected classify + analyze, got %d calls", provider.callCount())
	}
	if result.OverallRiskLevel != model.RiskLow {
		t.Errorf("unexpected risk: %q", result.OverallRiskLevel)
	}
}

func TestAnalyze_SinglePassTransportFailureDegrades(t *testing.T) {
	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		if call == 0 {
			return legalVerdictJSON, nil
		}
		return "", &llm.TransportError{StatusCode: 500, Body: "boom"}
	}}
	a := New(provider, model.ChunkingConfig{})

	result, err := a.Analyze(context.Background(), "The supplier shall be liable for late delivery penalties.")
	if err != nil {
		t.Fatalf("degraded path must not surface an error, got %v", err)
	}
	if !strings.Contains(result.Summary, "-word document") {
		t.Errorf("expected static analysis summary, got %q", result.Summary)
	}
	if result.Note == "" {
		t.Error("degraded result must carry a note")
	}
}

func TestAnalyze_RecoveredProseSinglePass(t *testing.T) {
	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		if call == 0 {
			return legalVerdictJSON, nil
		}
		return "The lease looks broadly standard with a few clauses worth reviewing.", nil
	}}
	a := New(provider, model.ChunkingConfig{})

	result, err := a.Analyze(context.Background(), "The tenant agrees to the payment schedule in this agreement.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Note == "" {
		t.Error("heuristic recovery should be flagged in the note")
	}
	if len(result.Clauses) != 1 || result.Clauses[0].Title != "AI Analysis" {
		t.Errorf("expected the prose wrapper clause, got %+v", result.Clauses)
	}
}

func TestAnalyze_ChunkedHappyPath(t *testing.T) {
	cfg := model.ChunkingConfig{MaxChunkSize: 200, RouteThreshold: 300}
	doc := longContract(cfg.RouteThreshold)
	wantChunks := len(chunk.Split(doc, cfg.MaxChunkSize))
	if wantChunks < 2 {
		t.Fatalf("test document should produce multiple chunks, got %d", wantChunks)
	}

	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		switch {
		case call == 0:
			return legalVerdictJSON, nil
		case call <= wantChunks:
			return fmt.Sprintf("Findings for part %d of the document.", call), nil
		default:
			return "Overall the agreement allocates payment risk to the client.", nil
		}
	}}
	a := New(provider, cfg)

	result, err := a.Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := provider.callCount(); got != wantChunks+2 {
		t.Errorf("expected %d calls (classify + %d chunks + synthesis), got %d", wantChunks+2, wantChunks, got)
	}
	// Chunks are analyzed strictly in order
	for i := 1; i <= wantChunks; i++ {
		if !strings.Contains(provider.prompt(i), fmt.Sprintf("PART %d of %d", i, wantChunks)) {
			t.Errorf("call %d is not chunk %d: %q", i, i, provider.prompt(i)[:60])
		}
	}
	// Synthesis sees every chunk's findings
	synthesis := provider.prompt(wantChunks + 1)
	for i := 1; i <= wantChunks; i++ {
		if !strings.Contains(synthesis, fmt.Sprintf("Findings for part %d", i)) {
			t.Errorf("synthesis prompt missing findings for part %d", i)
		}
	}
	// Narrative synthesis output is expected, not flagged
	if result.Note != "" {
		t.Errorf("narrative synthesis should not set a note, got %q", result.Note)
	}
	if !strings.Contains(result.Clauses[0].Explanation, "allocates payment risk") {
		t.Error("synthesis text should be carried into the result")
	}
}

func TestAnalyze_ChunkedToleratesPartialFailures(t *testing.T) {
	cfg := model.ChunkingConfig{MaxChunkSize: 200, RouteThreshold: 300}
	doc := longContract(cfg.RouteThreshold)
	wantChunks := len(chunk.Split(doc, cfg.MaxChunkSize))

	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		switch {
		case call == 0:
			return legalVerdictJSON, nil
		case call == 1:
			return "", &llm.TransportError{StatusCode: 502, Body: "bad gateway"}
		case call <= wantChunks:
			return fmt.Sprintf("Findings for part %d of the document.", call), nil
		default:
			return "Synthesis despite one missing chunk.", nil
		}
	}}
	a := New(provider, cfg)

	_, err := a.Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("one failed chunk must not fail the run, got %v", err)
	}

	if got := provider.callCount(); got != wantChunks+2 {
		t.Errorf("all chunks plus synthesis should still be attempted, got %d of %d calls", got, wantChunks+2)
	}
	synthesis := provider.prompt(wantChunks + 1)
	if !strings.Contains(synthesis, chunkFailurePrefix) {
		t.Error("failed chunk placeholder missing from synthesis input")
	}
}

func TestAnalyze_ChunkedAllCallsFail(t *testing.T) {
	cfg := model.ChunkingConfig{MaxChunkSize: 200, RouteThreshold: 300}
	doc := longContract(cfg.RouteThreshold)
	wantChunks := len(chunk.Split(doc, cfg.MaxChunkSize))

	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		if call == 0 {
			return legalVerdictJSON, nil
		}
		return "", &llm.TransportError{StatusCode: 500, Body: "down"}
	}}
	a := New(provider, cfg)

	result, err := a.Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("total model failure must still produce a result, got %v", err)
	}

	explanation := result.Clauses[0].Explanation
	if !strings.Contains(explanation, fmt.Sprintf("Combined analysis from %d document chunks", wantChunks)) {
		t.Errorf("manual synthesis label missing: %q", explanation[:80])
	}
	if !strings.Contains(explanation, chunkFailurePrefix) {
		t.Error("per-chunk failure placeholders missing")
	}
	if result.Note == "" {
		t.Error("manual synthesis must be flagged in the note")
	}
}

func TestAnalyze_CacheSkipsModelCalls(t *testing.T) {
	doc := "This service agreement defines the payment terms for both parties."

	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		if call == 0 {
			return legalVerdictJSON, nil
		}
		return leaseAnalysisJSON, nil
	}}
	store := cache.NewMemoryStore(time.Minute, time.Minute)
	a := New(provider, model.ChunkingConfig{}, WithCache(store, time.Minute))

	first, err := a.Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.callCount() != 2 {
		t.Fatalf("expected 2 calls on cold cache, got %d", provider.callCount())
	}

	second, err := a.Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.callCount() != 2 {
		t.Errorf("cache hit must not call the model, got %d calls", provider.callCount())
	}
	if second.Summary != first.Summary {
		t.Error("cached result should match the original")
	}
}

func TestAnalyze_UntypedProviderErrorSurfaces(t *testing.T) {
	// Typed failures degrade; anything else is a provider bug and must
	// reach the caller instead of being masked by the fallback.
	bugErr := errors.New("provider bug")

	tests := []struct {
		name    string
		failAt  int
		chunked bool
	}{
		{"during classification", 0, false},
		{"during single-pass analysis", 1, false},
		{"during chunk analysis", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := model.ChunkingConfig{}
			doc := "This agreement covers payment and termination terms for both parties."
			if tt.chunked {
				cfg = model.ChunkingConfig{MaxChunkSize: 200, RouteThreshold: 300}
				doc = longContract(cfg.RouteThreshold)
			}

			provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
				if call == tt.failAt {
					return "", bugErr
				}
				return legalVerdictJSON, nil
			}}
			a := New(provider, cfg)

			_, err := a.Analyze(context.Background(), doc)
			if !errors.Is(err, bugErr) {
				t.Errorf("expected the untyped error to surface, got %v", err)
			}
		})
	}
}

func TestAnalyze_ContextCancellation(t *testing.T) {
	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		return legalVerdictJSON, nil
	}}
	a := New(provider, model.ChunkingConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, "This agreement covers payment and termination terms.")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestChatReply_FallbackOnFailure(t *testing.T) {
	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		return "", &llm.TransportError{StatusCode: 500}
	}}
	a := New(provider, model.ChunkingConfig{})

	reply := a.ChatReply(context.Background(), "Can my landlord raise the rent?", "")

	found := false
	for _, canned := range fallbackReplies {
		if reply == canned {
			found = true
		}
	}
	if !found {
		t.Errorf("fallback reply not from the canned pool: %q", reply)
	}
}

func TestChatReply_PassesThroughContent(t *testing.T) {
	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		return "Rent increases depend on your lease terms and local law.", nil
	}}
	a := New(provider, model.ChunkingConfig{})

	reply := a.ChatReply(context.Background(), "Can my landlord raise the rent?", "")
	if reply != "Rent increases depend on your lease terms and local law." {
		t.Errorf("unexpected reply: %q", reply)
	}
}

func TestExplainClause_SurfacesProviderErrors(t *testing.T) {
	provider := &fakeProvider{respond: func(call int, prompt string) (string, error) {
		return "", llm.ErrMissingCredentials
	}}
	a := New(provider, model.ChunkingConfig{})

	_, err := a.ExplainClause(context.Background(), "Tenant shall indemnify Landlord.", "rental agreement")
	if !errors.Is(err, llm.ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
}
