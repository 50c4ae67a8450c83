package chunk

import (
	"regexp"
	"strings"

	"github.com/taksh1507/LegalEaseAI/internal/extract"
	"github.com/taksh1507/LegalEaseAI/internal/model"
)

// Continuity markers injected at artificial chunk boundaries so the
// synthesis step knows where legal structure was broken.
const (
	MarkerSectionContinues = "[SECTION CONTINUES...]"
	MarkerContinuedFrom    = "[...CONTINUED FROM PREVIOUS SECTION]"
)

// minParagraphLength drops noise fragments during paragraph splitting
const minParagraphLength = 10

// charsPerPage is the rough page estimate used by Plan
const charsPerPage = 3000

// paragraphBoundary splits on blank lines
var paragraphBoundary = regexp.MustCompile(`\n\s*\n`)

// sectionMarkers identify paragraphs that begin a new legal section
var sectionMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^ARTICLE\s+[IVX\d]+`),
	regexp.MustCompile(`(?i)^SECTION\s+[\d.]+`),
	regexp.MustCompile(`(?i)^CLAUSE\s+[\d.]+`),
	regexp.MustCompile(`^\d+\.\s*[A-Z]`),
	regexp.MustCompile(`^[A-Z\s]{3,}:?\s*$`),
	regexp.MustCompile(`(?i)^WHEREAS`),
	regexp.MustCompile(`(?i)^NOW THEREFORE`),
	regexp.MustCompile(`(?i)^IN WITNESS WHEREOF`),
}

// criticalPatterns flag high-priority legal content
var criticalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)termination`),
	regexp.MustCompile(`(?i)liability`),
	regexp.MustCompile(`(?i)payment`),
	regexp.MustCompile(`(?i)breach`),
	regexp.MustCompile(`(?i)confidential`),
	regexp.MustCompile(`(?i)proprietary`),
	regexp.MustCompile(`(?i)warranty`),
	regexp.MustCompile(`(?i)indemnif`),
	regexp.MustCompile(`(?i)governing law`),
	regexp.MustCompile(`(?i)dispute resolution`),
	regexp.MustCompile(`(?i)force majeure`),
}

var (
	financialPattern = regexp.MustCompile(`\$[\d,]+`)
	datePattern      = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
	complexStructure = regexp.MustCompile(`(?i)ARTICLE|SECTION|CLAUSE|SCHEDULE|EXHIBIT`)
)

// Split divides document text into bounded, structure-aware chunks.
// It never fails: a document with no blank lines degenerates to
// oversized single-paragraph chunks rather than splitting mid-word.
func Split(text string, maxChunkSize int) []model.Chunk {
	if len(text) <= maxChunkSize {
		return []model.Chunk{seal(0, text)}
	}

	paragraphs := splitParagraphs(text)

	var chunks []model.Chunk
	var buf strings.Builder
	size := 0
	index := 0

	for _, paragraph := range paragraphs {
		paragraphSize := len(paragraph) + 2 // trailing blank line

		isNewSection := matchesAny(sectionMarkers, paragraph)

		if size+paragraphSize > maxChunkSize && buf.Len() > 0 {
			content := buf.String()
			// Mark the break when sealing mid-section
			if !isNewSection {
				content += "\n\n" + MarkerSectionContinues
			}

			chunks = append(chunks, seal(index, content))
			index++
			buf.Reset()
			size = 0

			// Starting a fresh section: carry boundary context forward
			if isNewSection {
				previous := chunks[len(chunks)-1].Content
				carry := MarkerContinuedFrom + "\n" + extract.LastSentences(previous, 2) + "\n\n"
				buf.WriteString(carry)
				size = len(carry)
			}
		}

		buf.WriteString(paragraph)
		buf.WriteString("\n\n")
		size += paragraphSize
	}

	if strings.TrimSpace(buf.String()) != "" {
		chunks = append(chunks, seal(index, buf.String()))
	}

	return chunks
}

// Plan recommends single-pass vs. chunked analysis. Besides the hard
// length threshold, moderately sized documents with complex legal
// structure are also routed to chunking.
func Plan(text string, threshold int) model.ChunkPlan {
	size := len(text)
	isLarge := size > threshold

	pages := (size + charsPerPage - 1) / charsPerPage
	isMultiPage := pages > 3

	complex := complexStructure.MatchString(text)

	strategy := "single-pass"
	if isLarge {
		strategy = "chunking"
	}

	return model.ChunkPlan{
		ShouldChunk:         isLarge || (isMultiPage && complex),
		EstimatedPages:      pages,
		DocumentSize:        size,
		HasComplexStructure: complex,
		RecommendedStrategy: strategy,
	}
}

// splitParagraphs breaks text on blank-line boundaries, dropping noise
func splitParagraphs(text string) []string {
	raw := paragraphBoundary.Split(text, -1)
	paragraphs := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if len(p) > minParagraphLength {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// seal finalizes accumulated text into a Chunk with content metadata
func seal(index int, content string) model.Chunk {
	content = strings.TrimSpace(content)
	return model.Chunk{
		Index:             index,
		Content:           content,
		Size:              len(content),
		IsCritical:        matchesAny(criticalPatterns, content),
		HasFinancialTerms: financialPattern.MatchString(content),
		HasDates:          datePattern.MatchString(content),
	}
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
