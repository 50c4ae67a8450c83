package extract

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Input errors are the one class of failure surfaced to the caller:
// there is nothing meaningful to analyze.
var (
	ErrEmptyDocument    = errors.New("document text is empty")
	ErrDocumentTooShort = errors.New("document text is too short to analyze")
)

// MinDocumentLength is the smallest trimmed input accepted by the pipeline
const MinDocumentLength = 10

// markupPattern detects pasted text that is actually HTML markup
var markupPattern = regexp.MustCompile(`(?i)<\s*(html|body|div|p|br|span|table|h[1-6]|li)[\s>/]`)

// Normalize prepares raw document text for analysis: trims whitespace,
// strips HTML markup from pasted web content, and rejects input that
// is empty or too short.
func Normalize(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyDocument
	}

	if markupPattern.MatchString(text) {
		text = strings.TrimSpace(StripHTML(text))
	}

	if text == "" {
		return "", ErrEmptyDocument
	}
	if len(text) < MinDocumentLength {
		return "", ErrDocumentTooShort
	}

	return text, nil
}

// StripHTML extracts visible text from HTML markup, skipping
// scripts/styles. Block-level elements become paragraph breaks so the
// chunker's blank-line splitting still works on pasted web content.
func StripHTML(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "p", "div", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6", "br":
				buf.WriteString("\n\n")
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return collapseBlankLines(buf.String())
}

// collapseBlankLines reduces runs of 3+ newlines to a single paragraph break
var blankRun = regexp.MustCompile(`\n{3,}`)

func collapseBlankLines(s string) string {
	return blankRun.ReplaceAllString(s, "\n\n")
}

// LastSentences returns the trailing n period-delimited sentences of
// text, used as boundary context when a chunk starts a new section.
func LastSentences(text string, n int) string {
	parts := strings.Split(text, ".")
	if len(parts) <= n {
		return text
	}
	return strings.Join(parts[len(parts)-n:], ".")
}
