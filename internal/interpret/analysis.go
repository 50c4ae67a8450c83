// Package interpret turns raw model output into well-formed typed
// records. Decoding is two-stage: a strict schema decode, then a
// heuristic fallback. The caller always receives a valid result,
// never a parse error.
package interpret

import (
	"encoding/json"
	"strings"

	"github.com/taksh1507/LegalEaseAI/internal/model"
)

// summaryLimit caps the summary extracted from unstructured output
const summaryLimit = 300

// DecodeAnalysis parses raw model output into an AnalysisResult.
// The recovered return is true when strict decoding failed and the
// heuristic fallback wrapped the raw text instead.
func DecodeAnalysis(raw string) (result *model.AnalysisResult, recovered bool) {
	cleaned := stripFences(raw)

	var res model.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &res); err == nil {
		res.ApplyDefaults()
		return &res, false
	}

	return ProseAnalysis(raw), true
}

// ProseAnalysis wraps free-text model output in a well-formed result:
// the full text becomes a single generic clause explanation at medium
// risk, with a truncated summary.
func ProseAnalysis(text string) *model.AnalysisResult {
	summary := text
	if len(summary) > summaryLimit {
		summary = summary[:summaryLimit] + "..."
	}

	return &model.AnalysisResult{
		Summary: summary,
		Clauses: []model.Clause{
			{
				Title:             "AI Analysis",
				OriginalText:      "Full document content",
				Explanation:       text,
				RiskLevel:         model.RiskMedium,
				RiskAssessment:    "Automated analysis provided. Manual review recommended.",
				LegalImplications: "Various legal implications present in document.",
				NegotiationPoints: "Review with legal counsel for negotiation strategies.",
				IndustryStandard:  "Standards vary by jurisdiction and industry.",
				KeyTerms:          []string{"legal", "document", "analysis"},
				Importance:        model.ImportanceMedium,
			},
		},
		RedFlags:         []model.RedFlag{},
		KeyDates:         []model.KeyDate{},
		OverallRiskLevel: model.RiskMedium,
		Recommendations:  []string{"Review with qualified legal counsel"},
		MissingClauses:   []string{},
		Favorability: model.Favorability{
			ForParty1:   "medium",
			ForParty2:   "medium",
			Explanation: "Detailed analysis not available",
		},
	}
}

// stripFences removes markdown code fences and surrounding prose so a
// JSON object embedded in chatty output still decodes strictly.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Slice down to the outermost object when the model added prose
	// around the JSON
	if !strings.HasPrefix(s, "{") {
		start := strings.Index(s, "{")
		end := strings.LastIndex(s, "}")
		if start >= 0 && end > start {
			s = s[start : end+1]
		}
	}

	return s
}
