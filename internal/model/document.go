package model

// DocumentTypeVerdict is the output of the classification gate.
// Confidence is advisory only; routing keys off IsLegal alone.
type DocumentTypeVerdict struct {
	IsLegal      bool    `json:"isLegal"`
	DocumentType string  `json:"documentType"`
	Confidence   float64 `json:"confidence"`
}

// DefaultVerdict is used when classification fails entirely. It errs
// toward running the full analysis rather than blocking the pipeline.
func DefaultVerdict() DocumentTypeVerdict {
	return DocumentTypeVerdict{
		IsLegal:      true,
		DocumentType: "unknown document",
		Confidence:   0.5,
	}
}

// Chunk is a bounded, structure-aware slice of a large document.
// Index order matches original document order. Content may carry
// injected continuity markers at chunk boundaries.
type Chunk struct {
	Index             int    `json:"index"`
	Content           string `json:"content"`
	Size              int    `json:"size"`
	IsCritical        bool   `json:"isCritical"`
	HasFinancialTerms bool   `json:"hasFinancialTerms"`
	HasDates          bool   `json:"hasDates"`
}

// ChunkAnalysis is the model's free-text analysis of one chunk, or a
// failure placeholder when that chunk's call failed. Never mutated
// after creation.
type ChunkAnalysis struct {
	ChunkIndex        int    `json:"chunkIndex"`
	Size              int    `json:"size"`
	IsCritical        bool   `json:"isCritical"`
	Analysis          string `json:"analysis"`
	HasFinancialTerms bool   `json:"hasFinancialTerms"`
	HasDates          bool   `json:"hasDates"`
}

// ChunkPlan is the routing recommendation for a document
type ChunkPlan struct {
	ShouldChunk         bool   `json:"shouldChunk"`
	EstimatedPages      int    `json:"estimatedPages"`
	DocumentSize        int    `json:"documentSize"`
	HasComplexStructure bool   `json:"hasComplexStructure"`
	RecommendedStrategy string `json:"recommendedStrategy"`
}
