// Package prompt constructs the task-specific prompts sent to the
// model client. All analysis prompts request a strict JSON object with
// a fixed key schema; the interpreter tolerates deviations.
package prompt

import (
	"fmt"
	"strings"

	"github.com/taksh1507/LegalEaseAI/internal/model"
)

const (
	// ClassificationSampleSize bounds the prefix sent for the cheap
	// classification gate. Precision here is a heuristic, not the
	// final analysis.
	ClassificationSampleSize = 1000

	// analysisSampleSize bounds the document text embedded in the
	// single-pass analysis prompt
	analysisSampleSize = 4000
)

// Classification asks for a minimal JSON verdict on whether the
// document contains legal clauses at all.
func Classification(documentText string) string {
	sample := documentText
	if len(sample) > ClassificationSampleSize {
		sample = sample[:ClassificationSampleSize]
	}

	return fmt.Sprintf(`Analyze this document and determine if it contains LEGAL CLAUSES and CONTRACTUAL TERMS.

Document sample:
%s

Respond with ONLY a JSON object:
{
  "isLegal": true/false,
  "documentType": "contract/academic paper/research document/technical manual/experiment/report/other",
  "confidence": 0.0-1.0
}

A document is LEGAL if it contains:
- Contractual obligations and rights
- Terms and conditions
- Payment terms, penalties, liability clauses
- Party responsibilities and obligations
- Legal agreements between parties

A document is NOT LEGAL if it contains:
- Academic research or experiments
- Technical specifications
- Educational content
- Reports or analysis
- General information`, sample)
}

// FullAnalysis builds the single-pass analysis prompt requesting the
// complete structured result schema.
func FullAnalysis(documentText, documentType string) string {
	sample := documentText
	if len(sample) > analysisSampleSize {
		sample = sample[:analysisSampleSize] + "..."
	}

	return fmt.Sprintf(`As LegalEaseAI, a specialized legal document analysis assistant, analyze this LEGAL DOCUMENT with contractual clauses and terms. This document has been confirmed to contain legal clauses requiring analysis.
%s
Document text:
%s

IMPORTANT: Analyze ALL legal clauses in this contract/agreement, including:
- HIGH/CRITICAL risk clauses: Serious legal issues needing immediate attention
- MEDIUM risk clauses: Areas needing legal review or clarification
- LOW risk clauses: Well-written, favorable, or standard contractual terms

Provide comprehensive legal analysis with this structure:

%s

Ensure your analysis is:
- Thorough and covers all significant clauses (including routine/standard ones)
- Uses plain language explanations for all risk levels
- For LOW RISK clauses: explain why they are favorable, standard, or well-written
- For MEDIUM RISK clauses: identify potential concerns and monitoring points
- For HIGH RISK clauses: highlight serious issues requiring immediate attention
- Identifies potential risks and their implications
- Provides actionable recommendations for all clauses
- Considers industry standards and best practices
- Highlights both positive and negative aspects
- Suggests specific negotiation points where applicable
- Shows the complete picture of the document, not just problems`, typeFramework(documentType), sample, resultSchema)
}

// resultSchema is the strict JSON shape every analysis prompt requests
const resultSchema = `{
  "summary": "Comprehensive 3-4 sentence summary of the document type, purpose, and overall assessment",
  "clauses": [
    {
      "title": "Specific clause name (e.g., 'Monthly Rent Payment', 'Termination Clause', 'Standard Notice Provision')",
      "originalText": "The exact text from the document",
      "explanation": "Detailed plain-language explanation of what this clause means",
      "riskLevel": "low/medium/high",
      "riskAssessment": "Detailed explanation of risks and potential issues (even if low risk, explain why it's standard/favorable)",
      "legalImplications": "What legal consequences or rights this creates",
      "negotiationPoints": "Suggestions for how this clause could be negotiated or improved (even for low-risk clauses)",
      "industryStandard": "Whether this is typical/unusual for this type of agreement",
      "keyTerms": ["term1", "term2", "term3"],
      "importance": "high/medium/low"
    }
  ],
  "redFlags": [
    {
      "issue": "Specific problematic clause or term (for medium/high risk) OR positive/favorable clause (for low risk)",
      "severity": "critical/high/medium/low",
      "explanation": "Detailed explanation of why this is concerning (for risks) OR why this is favorable/well-written (for low risk items)",
      "potentialConsequences": "What could happen if this clause is problematic OR what benefits this provides (for low risk)",
      "recommendations": "Specific actions to address this issue OR how to maintain/leverage this favorable term",
      "legalCitations": "Relevant legal principles or standards if applicable"
    }
  ],
  "keyDates": [
    {
      "date": "Specific date if found",
      "description": "What happens on this date",
      "importance": "critical/high/medium/low",
      "actionRequired": "What the parties need to do"
    }
  ],
  "overallRiskLevel": "low/medium/high",
  "recommendations": [
    "Specific actionable recommendation 1",
    "Specific actionable recommendation 2"
  ],
  "missingClauses": [
    "Important clauses that should be present but are missing"
  ],
  "favorability": {
    "forParty1": "high/medium/low",
    "forParty2": "high/medium/low",
    "explanation": "Which party this agreement favors and why"
  }
}`

// ChunkAnalysis builds the per-chunk prompt, echoing position metadata
// and routing hints so the model can reason about continuity without
// seeing the rest of the document.
func ChunkAnalysis(c model.Chunk, total int) string {
	return fmt.Sprintf(`You are analyzing PART %d of %d of a large legal document.

CHUNK CONTEXT:
- This is chunk %d of %d total chunks
- Critical content: %s
- Contains financial terms: %s
- Contains dates: %s

ANALYSIS FOCUS FOR THIS CHUNK:
1. Identify any complete legal clauses or sections
2. Extract key obligations, rights, or restrictions
3. Note any financial terms, dates, or deadlines
4. Highlight critical legal language or unusual provisions
5. Indicate if this chunk connects to previous/next sections

DOCUMENT CHUNK:
%s

Provide focused analysis of this specific chunk, noting its role in the overall document structure.`,
		c.Index+1, total, c.Index+1, total,
		yesNo(c.IsCritical), yesNo(c.HasFinancialTerms), yesNo(c.HasDates),
		c.Content)
}

// Synthesis concatenates all per-chunk analyses and asks for one
// unified narrative. Prose output is acceptable here; the interpreter
// wraps non-JSON output into the structured result.
func Synthesis(analyses []model.ChunkAnalysis) string {
	var b strings.Builder
	for _, a := range analyses {
		fmt.Fprintf(&b, "\nCHUNK %d (%d chars, Critical: %t):\n%s\n---", a.ChunkIndex+1, a.Size, a.IsCritical, a.Analysis)
	}

	return fmt.Sprintf(`You are synthesizing analysis from %d chunks of a large legal document.

CHUNK ANALYSES:
%s

SYNTHESIS REQUIREMENTS:
1. Create unified document summary from all chunks
2. Identify the overall document type and purpose
3. Compile all key parties, obligations, and terms
4. Highlight critical clauses found across chunks
5. Assess overall risk profile and concerns
6. Provide coherent executive summary

Provide comprehensive analysis that unifies insights from all document chunks.`, len(analyses), b.String())
}

// ClauseExplanation asks for a plain-English breakdown of one clause
func ClauseExplanation(clauseText, documentType string) string {
	return fmt.Sprintf(`You are a legal expert specializing in contract interpretation. Please explain this clause in plain English.

CLAUSE TEXT:
"%s"

DOCUMENT TYPE: %s

Please provide:
1. PLAIN ENGLISH EXPLANATION: What this clause means in simple terms
2. PRACTICAL IMPACT: How this affects the parties involved
3. LEGAL SIGNIFICANCE: Why this clause is important
4. POTENTIAL RISKS: What could go wrong or areas of concern
5. COMMON VARIATIONS: How similar clauses are typically written
6. NEGOTIATION POINTS: What aspects might be negotiable

Make your explanation accessible to non-lawyers while maintaining legal accuracy.`, clauseText, documentType)
}

// DocumentQA asks a question against the document text
func DocumentQA(question, documentText, documentType string) string {
	return fmt.Sprintf(`You are a legal expert providing guidance on document interpretation. Answer the user's question based on the specific document provided.

DOCUMENT TYPE: %s

USER QUESTION: %s

RELEVANT DOCUMENT SECTIONS:
%s

ANALYSIS APPROACH:
1. Review the document for information directly relevant to the question
2. Provide specific answers based on the document text
3. Quote relevant sections to support your response
4. Indicate if the document doesn't address the question
5. Suggest what additional information might be needed
6. Highlight any risks or considerations related to the question

Please provide a comprehensive answer that addresses the user's specific question while staying grounded in the actual document content.`, documentType, question, documentText)
}

// DocumentSummary asks for an executive summary of the document
func DocumentSummary(documentText, documentType string) string {
	return fmt.Sprintf(`Create a comprehensive executive summary of this legal document.

DOCUMENT TYPE: %s
%s
SUMMARY REQUIREMENTS:
1. EXECUTIVE OVERVIEW (2-3 sentences)
2. KEY PARTIES AND THEIR ROLES
3. MAIN OBLIGATIONS (what each party must do)
4. FINANCIAL TERMS (amounts, payment schedules)
5. IMPORTANT DATES AND DEADLINES
6. TERMINATION CONDITIONS
7. MAJOR RISKS OR CONCERNS
8. NEXT STEPS OR ACTION ITEMS

DOCUMENT TEXT:
%s

Focus on the most business-critical information that stakeholders need to understand for decision-making.`, documentType, typeFramework(documentType), documentText)
}

// ChatReply builds a conversational legal Q&A prompt
func ChatReply(userMessage, context string) string {
	ctxLine := ""
	if context != "" {
		ctxLine = fmt.Sprintf("Context: %s\n\n", context)
	}

	return fmt.Sprintf(`A user has asked: "%s"

%sPlease provide a helpful, accurate response about legal matters. Keep your response conversational and informative. If the question is about specific legal advice, remind the user to consult with a qualified attorney.`, userMessage, ctxLine)
}

// typeFrameworks steer the analysis toward the provisions that matter
// for each agreement type
var typeFrameworks = map[string]string{
	"rental agreement": `
RENTAL AGREEMENT SPECIFIC ANALYSIS:
- Rent amount, security deposit, and payment terms
- Lease duration and renewal options
- Maintenance and repair responsibilities
- Pet policies and restrictions
- Subletting and assignment rights
- Notice requirements for termination
- Utility responsibilities and common area usage`,

	"employment contract": `
EMPLOYMENT CONTRACT SPECIFIC ANALYSIS:
- Compensation structure (salary, bonuses, benefits)
- Job responsibilities and reporting structure
- Non-compete and non-solicitation clauses
- Intellectual property assignment
- Confidentiality obligations
- Termination procedures and severance
- Work schedule and remote work policies`,

	"non-disclosure agreement": `
NDA SPECIFIC ANALYSIS:
- Scope and definition of confidential information
- Duration of confidentiality obligations
- Permitted disclosures and exceptions
- Return or destruction of information requirements
- Remedies for breach (injunctive relief, damages)
- Survival clauses and perpetual obligations`,

	"purchase agreement": `
PURCHASE AGREEMENT SPECIFIC ANALYSIS:
- Purchase price and payment terms
- Delivery and acceptance procedures
- Warranty and quality assurance provisions
- Risk of loss and title transfer
- Inspection rights and defect procedures
- Force majeure and excuse provisions`,

	"service agreement": `
SERVICE AGREEMENT SPECIFIC ANALYSIS:
- Scope of work and deliverables specification
- Performance standards and acceptance criteria
- Service level agreements (SLAs)
- Change order and scope modification procedures
- Resource allocation and staffing requirements
- Data security and privacy protections`,

	"loan agreement": `
LOAN AGREEMENT SPECIFIC ANALYSIS:
- Principal amount, interest rate, and repayment schedule
- Collateral and security provisions
- Financial covenants and reporting requirements
- Default events and acceleration clauses
- Guarantees and personal liability
- Prepayment rights and penalties`,

	"partnership agreement": `
PARTNERSHIP AGREEMENT SPECIFIC ANALYSIS:
- Capital contributions and ownership percentages
- Profit and loss distribution mechanisms
- Management structure and decision-making authority
- Transfer restrictions and buy-sell provisions
- Fiduciary duties and conflict resolution
- Dissolution and wind-up procedures`,
}

const genericFramework = `
GENERAL CONTRACT SPECIFIC ANALYSIS:
- Core obligations and performance requirements
- Payment and compensation terms
- Duration and termination provisions
- Risk allocation and liability terms
- Compliance and regulatory requirements
- Dispute resolution and governing law`

func typeFramework(documentType string) string {
	if f, ok := typeFrameworks[strings.ToLower(documentType)]; ok {
		return f
	}
	return genericFramework
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
