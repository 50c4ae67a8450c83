package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/taksh1507/LegalEaseAI/internal/model"
)

// DocumentAnalyzer is the subset of the orchestrator batch needs
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, text string) (*model.AnalysisResult, error)
}

// AnalyzeJob analyzes one document file
type AnalyzeJob struct {
	Path     string
	Analyzer DocumentAnalyzer
}

// Execute reads the file and runs the analysis pipeline over it
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: fmt.Errorf("read document: %w", err)}
	}

	res, err := j.Analyzer.Analyze(ctx, string(data))
	return &AnalyzeResult{Path: j.Path, Analysis: res, Error: err}
}

// AnalyzeResult is the outcome for one document file
type AnalyzeResult struct {
	Path     string
	Analysis *model.AnalysisResult
	Error    error
}

// GetError returns the job error, if any
func (r *AnalyzeResult) GetError() error { return r.Error }

// BatchProcessor analyzes multiple document files concurrently.
// Every job shares the caller's Analyzer, and with it the Analyzer's
// pacer, so the aggregate provider call rate stays bounded no matter
// how many workers run.
type BatchProcessor struct {
	analyzer    DocumentAnalyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(analyzer DocumentAnalyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessPaths analyzes the given document files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*AnalyzeResult {
	if len(paths) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&AnalyzeJob{Path: path, Analyzer: b.analyzer})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessFile reads document paths from a list file and analyzes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*AnalyzeResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a file, one per line.
// Blank lines and #-comments are skipped; duplicates are dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
