package analysis

import (
	"github.com/inletdocs/pdf-insight-api/internal/domain"
)

// ExtractText extracts the plain text of every page of the document
func ExtractText(doc *Document) (result domain.TextResult) {
	defer func() {
		if err := recovered(recover()); err != nil {
			result = domain.TextResult{Error: err.Error()}
		}
	}()

	r, err := newReader(doc)
	if err != nil {
		return domain.TextResult{Error: err.Error()}
	}

	texts := pageTexts(r)
	if len(texts) == 0 {
		return domain.TextResult{HasText: false}
	}

	return domain.TextResult{
		HasText:       true,
		ExtractedText: joinPages(texts),
	}
}
