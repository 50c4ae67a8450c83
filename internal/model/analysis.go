package model

// Risk levels used throughout the analysis output
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Severity classifies red flags. "notice" is reserved for informational
// findings such as the document-type mismatch short circuit.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityNotice   Severity = "notice"
)

// Importance ranks clauses and key dates
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// AnalysisResult is the terminal artifact of a document analysis.
// The JSON shape is what the renderer writes and the cache persists.
type AnalysisResult struct {
	Summary          string       `json:"summary"`
	Clauses          []Clause     `json:"clauses"`
	RedFlags         []RedFlag    `json:"redFlags"`
	KeyDates         []KeyDate    `json:"keyDates"`
	OverallRiskLevel RiskLevel    `json:"overallRiskLevel"`
	Recommendations  []string     `json:"recommendations"`
	MissingClauses   []string     `json:"missingClauses"`
	Favorability     Favorability `json:"favorability"`

	// Note flags reduced confidence (heuristic recovery, degraded fallback).
	// Empty on a clean model-backed analysis.
	Note string `json:"note,omitempty"`
}

// Clause is one analyzed contractual clause
type Clause struct {
	Title             string     `json:"title"`
	OriginalText      string     `json:"originalText"`
	Explanation       string     `json:"explanation"`
	RiskLevel         RiskLevel  `json:"riskLevel"`
	RiskAssessment    string     `json:"riskAssessment"`
	LegalImplications string     `json:"legalImplications"`
	NegotiationPoints string     `json:"negotiationPoints"`
	IndustryStandard  string     `json:"industryStandard"`
	KeyTerms          []string   `json:"keyTerms"`
	Importance        Importance `json:"importance"`
}

// RedFlag is a structured finding surfaced independently of the
// clause-by-clause breakdown. Low-severity flags may describe favorable
// terms rather than risks.
type RedFlag struct {
	Issue                 string   `json:"issue"`
	Severity              Severity `json:"severity"`
	Explanation           string   `json:"explanation"`
	PotentialConsequences string   `json:"potentialConsequences"`
	Recommendations       string   `json:"recommendations"`
	LegalCitations        string   `json:"legalCitations"`
}

// KeyDate is a deadline or milestone extracted from the document
type KeyDate struct {
	Date           string     `json:"date"`
	Description    string     `json:"description"`
	Importance     Importance `json:"importance"`
	ActionRequired string     `json:"actionRequired"`
}

// Favorability describes which party the agreement favors
type Favorability struct {
	ForParty1   string `json:"forParty1"`
	ForParty2   string `json:"forParty2"`
	Explanation string `json:"explanation"`
}

// ApplyDefaults fills optional fields so a partially populated but
// syntactically valid result is never rejected downstream.
func (r *AnalysisResult) ApplyDefaults() {
	if r.Summary == "" {
		r.Summary = "Document analysis completed"
	}
	if r.Clauses == nil {
		r.Clauses = []Clause{}
	}
	if r.RedFlags == nil {
		r.RedFlags = []RedFlag{}
	}
	if r.KeyDates == nil {
		r.KeyDates = []KeyDate{}
	}
	if r.OverallRiskLevel == "" {
		r.OverallRiskLevel = RiskMedium
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
	if r.MissingClauses == nil {
		r.MissingClauses = []string{}
	}
	if r.Favorability == (Favorability{}) {
		r.Favorability = Favorability{
			ForParty1:   "medium",
			ForParty2:   "medium",
			Explanation: "Analysis not available",
		}
	}
}
