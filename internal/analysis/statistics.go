package analysis

import (
	"strings"

	"github.com/inletdocs/pdf-insight-api/internal/domain"
)

// readingWordsPerMinute is the assumed reading speed for the estimate
const readingWordsPerMinute = 200

// AnalyzeStatistics computes page and word statistics for the document
func AnalyzeStatistics(doc *Document) (result domain.StatisticsResult) {
	defer func() {
		if err := recovered(recover()); err != nil {
			result = domain.StatisticsResult{Error: err.Error()}
		}
	}()

	r, err := newReader(doc)
	if err != nil {
		return domain.StatisticsResult{Error: err.Error()}
	}

	return ComputeStatistics(r.NumPage(), pageTexts(r))
}

// ComputeStatistics derives statistics from page count and per-page text
func ComputeStatistics(pageCount int, texts []string) domain.StatisticsResult {
	wordCount := len(strings.Fields(joinPages(texts)))

	var avgWords float64
	if pageCount > 0 {
		avgWords = float64(wordCount) / float64(pageCount)
	}

	return domain.StatisticsResult{
		PageCount:          pageCount,
		WordCount:          wordCount,
		AvgWordsPerPage:    avgWords,
		ReadingTimeMinutes: float64(wordCount) / readingWordsPerMinute,
	}
}
