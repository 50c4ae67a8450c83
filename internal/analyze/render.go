package analyze

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/taksh1507/LegalEaseAI/internal/model"
)

// Renderer writes analysis results as JSON and Markdown reports
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the result as indented JSON
func (r *Renderer) RenderJSON(res *model.AnalysisResult, path string) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(res *model.AnalysisResult, path string) error {
	var b strings.Builder

	b.WriteString("# Legal Document Analysis\n\n")
	fmt.Fprintf(&b, "**Overall risk level:** %s\n\n", res.OverallRiskLevel)
	b.WriteString("## Summary\n\n")
	b.WriteString(res.Summary)
	b.WriteString("\n")

	if len(res.Clauses) > 0 {
		b.WriteString("\n## Clauses\n")
		for _, c := range res.Clauses {
			fmt.Fprintf(&b, "\n### %s\n\n", c.Title)
			fmt.Fprintf(&b, "- **Risk:** %s · **Importance:** %s\n", c.RiskLevel, c.Importance)
			if c.OriginalText != "" {
				fmt.Fprintf(&b, "- **Original text:** %s\n", c.OriginalText)
			}
			fmt.Fprintf(&b, "\n%s\n", c.Explanation)
			if c.RiskAssessment != "" {
				fmt.Fprintf(&b, "\n%s\n", c.RiskAssessment)
			}
			if c.NegotiationPoints != "" {
				fmt.Fprintf(&b, "\n*Negotiation:* %s\n", c.NegotiationPoints)
			}
		}
	}

	if len(res.RedFlags) > 0 {
		b.WriteString("\n## Red Flags\n")
		for _, f := range res.RedFlags {
			fmt.Fprintf(&b, "\n### %s (%s)\n\n", f.Issue, f.Severity)
			fmt.Fprintf(&b, "%s\n\n%s\n", f.Explanation, f.PotentialConsequences)
			if f.Recommendations != "" {
				fmt.Fprintf(&b, "\n*Recommended:* %s\n", f.Recommendations)
			}
		}
	}

	if len(res.KeyDates) > 0 {
		b.WriteString("\n## Key Dates\n\n")
		for _, d := range res.KeyDates {
			fmt.Fprintf(&b, "- **%s** (%s): %s — %s\n", d.Date, d.Importance, d.Description, d.ActionRequired)
		}
	}

	if len(res.Recommendations) > 0 {
		b.WriteString("\n## Recommendations\n\n")
		for _, rec := range res.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	if len(res.MissingClauses) > 0 {
		b.WriteString("\n## Missing Clauses\n\n")
		for _, m := range res.MissingClauses {
			fmt.Fprintf(&b, "- %s\n", m)
		}
	}

	b.WriteString("\n## Favorability\n\n")
	fmt.Fprintf(&b, "- Party 1: %s\n- Party 2: %s\n\n%s\n",
		res.Favorability.ForParty1, res.Favorability.ForParty2, res.Favorability.Explanation)

	if res.Note != "" {
		fmt.Fprintf(&b, "\n> %s\n", res.Note)
	}

	if r.includeFooter {
		b.WriteString("\n---\n*Generated by LegalEaseAI. This is not legal advice; consult a qualified attorney.*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints a short result overview to stdout
func (r *Renderer) RenderSummary(res *model.AnalysisResult) {
	fmt.Println()
	fmt.Printf("Overall risk: %s\n", res.OverallRiskLevel)
	fmt.Printf("Clauses analyzed: %d\n", len(res.Clauses))
	fmt.Printf("Red flags: %d\n", len(res.RedFlags))
	fmt.Printf("Key dates: %d\n", len(res.KeyDates))
	fmt.Println()
	fmt.Println(res.Summary)
	if res.Note != "" {
		fmt.Println()
		fmt.Printf("Note: %s\n", res.Note)
	}
}
