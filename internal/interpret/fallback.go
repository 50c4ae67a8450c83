package interpret

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/taksh1507/LegalEaseAI/internal/model"
)

var (
	paymentTerms     = regexp.MustCompile(`(?i)payment|fee|cost|price|amount`)
	terminationTerms = regexp.MustCompile(`(?i)terminate|end|cancel|expire`)
	liabilityTerms   = regexp.MustCompile(`(?i)liable|liability|responsible|damages`)
)

// StaticAnalysis produces the deterministic degraded-fallback result
// used when the model is unreachable or misconfigured. It is driven
// entirely by keyword detection over the document text, so the caller
// always gets a usable, well-formed result.
func StaticAnalysis(documentText string) *model.AnalysisResult {
	wordCount := len(strings.Fields(documentText))
	hasPayment := paymentTerms.MatchString(documentText)
	hasTermination := terminationTerms.MatchString(documentText)
	hasLiability := liabilityTerms.MatchString(documentText)

	redFlags := []model.RedFlag{}
	if hasLiability {
		redFlags = append(redFlags, model.RedFlag{
			Issue:                 "Liability Provisions Detected",
			Severity:              model.SeverityMedium,
			Explanation:           "The document contains liability-related language that should be carefully reviewed.",
			PotentialConsequences: "Liability terms can affect financial responsibility in case of disputes.",
			Recommendations:       "Review liability clauses with legal counsel to understand risk allocation.",
			LegalCitations:        "Standard contract law principles apply to liability provisions",
		})
	}

	recommendations := []string{
		"Have the document reviewed by a qualified legal professional",
		"Ensure all parties understand their obligations and rights",
	}
	if hasPayment {
		recommendations = append(recommendations, "Pay special attention to payment terms and conditions")
	} else {
		recommendations = append(recommendations, "Review all financial obligations carefully")
	}
	if hasTermination {
		recommendations = append(recommendations, "Understand termination procedures and notice requirements")
	} else {
		recommendations = append(recommendations, "Clarify contract duration and renewal terms")
	}

	return &model.AnalysisResult{
		Summary: fmt.Sprintf("Document analysis completed. This %d-word document contains various legal provisions that require review.", wordCount),
		Clauses: []model.Clause{
			{
				Title:             "General Terms and Conditions",
				OriginalText:      "Full document content requires review",
				Explanation:       "Standard contractual terms detected. Manual review recommended for specific provisions.",
				RiskLevel:         model.RiskMedium,
				RiskAssessment:    "Unable to assess risk automatically. Manual review required.",
				LegalImplications: "Various legal rights and obligations may be present.",
				NegotiationPoints: "Consult with legal counsel for negotiation strategies.",
				IndustryStandard:  "Standards vary by jurisdiction and document type.",
				KeyTerms:          []string{"legal", "review", "professional"},
				Importance:        model.ImportanceHigh,
			},
		},
		RedFlags:         redFlags,
		KeyDates:         []model.KeyDate{},
		OverallRiskLevel: model.RiskMedium,
		Recommendations:  recommendations,
		MissingClauses: []string{
			"Dispute resolution mechanism",
			"Governing law clause",
			"Force majeure provisions",
		},
		Favorability: model.Favorability{
			ForParty1:   "medium",
			ForParty2:   "medium",
			Explanation: "Document appears to have balanced terms, but detailed review needed to assess true favorability",
		},
		Note: "This is a basic analysis. For comprehensive legal review, please consult with a qualified attorney.",
	}
}

// NotLegalResult is the canned short-circuit returned when the
// classification gate decides the document carries no contractual
// content. Exactly one notice-severity red flag, no further calls.
func NotLegalResult(verdict model.DocumentTypeVerdict) *model.AnalysisResult {
	return &model.AnalysisResult{
		Summary: fmt.Sprintf("This appears to be %s rather than a legal document with contractual clauses.", verdict.DocumentType),
		Clauses: []model.Clause{},
		RedFlags: []model.RedFlag{
			{
				Issue:                 "Document Type Mismatch",
				Severity:              model.SeverityNotice,
				Explanation:           fmt.Sprintf("This document appears to be %s, not a legal contract or agreement requiring legal analysis.", verdict.DocumentType),
				PotentialConsequences: "No legal analysis needed as this document does not contain contractual terms or legal obligations.",
				Recommendations:       "Upload a legal document such as a contract, lease agreement, terms of service, or other legal agreement for proper legal analysis.",
				LegalCitations:        "Legal analysis tools are designed specifically for contractual and legal documents",
			},
		},
		KeyDates:         []model.KeyDate{},
		OverallRiskLevel: model.RiskLow,
		Recommendations:  []string{"Upload a legal contract, agreement, or terms of service document for legal analysis"},
		MissingClauses:   []string{},
		Favorability: model.Favorability{
			ForParty1:   "not-applicable",
			ForParty2:   "not-applicable",
			Explanation: "Document type does not require legal favorability analysis as it contains no contractual terms",
		},
	}
}
