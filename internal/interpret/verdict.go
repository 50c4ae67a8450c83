package interpret

import (
	"encoding/json"
	"strings"

	"github.com/taksh1507/LegalEaseAI/internal/model"
)

// Keyword sets for the classification fallback. Counts are compared
// directly; there is no confidence threshold on this path.
var (
	legalKeywords = []string{
		"agreement", "contract", "terms", "conditions", "party",
		"obligation", "liability", "payment", "breach", "termination",
	}
	nonLegalKeywords = []string{
		"experiment", "research", "study", "analysis",
		"objective", "methodology", "results", "conclusion",
	}
)

// DecodeVerdict parses the classification response. On parse failure
// it falls back to keyword counting over the original document, and
// as a last resort to the permissive default verdict so the pipeline
// proceeds rather than blocking.
func DecodeVerdict(raw, documentText string) model.DocumentTypeVerdict {
	cleaned := stripFences(raw)

	var v model.DocumentTypeVerdict
	if err := json.Unmarshal([]byte(cleaned), &v); err == nil {
		if v.DocumentType == "" {
			v.DocumentType = "unknown document"
		}
		if v.Confidence == 0 {
			v.Confidence = 0.5
		}
		return v
	}

	return KeywordVerdict(documentText)
}

// KeywordVerdict approximates classification by comparing legal
// vs. non-legal keyword hits in the document text.
func KeywordVerdict(documentText string) model.DocumentTypeVerdict {
	lower := strings.ToLower(documentText)

	legalCount := countHits(lower, legalKeywords)
	nonLegalCount := countHits(lower, nonLegalKeywords)

	documentType := "unknown document"
	if nonLegalCount > legalCount {
		documentType = "academic/research document"
	}

	return model.DocumentTypeVerdict{
		IsLegal:      legalCount > nonLegalCount,
		DocumentType: documentType,
		Confidence:   0.6,
	}
}

func countHits(lower string, keywords []string) int {
	count := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			count++
		}
	}
	return count
}
