package analysis

import (
	"regexp"

	"github.com/inletdocs/pdf-insight-api/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[\s\-.]?)?\(?\d{3}\)?[\s\-.]?\d{3}[\s\-.]?\d{4}`)

	urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)

	// Matches 2024-01-15, 15/01/2024, and "Jan 15, 2024" style dates
	datePattern = regexp.MustCompile(
		`\b\d{4}[-/]\d{1,2}[-/]\d{1,2}\b` +
			`|\b\d{1,2}[-/]\d{1,2}[-/]\d{4}\b` +
			`|(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4}\b`)
)

// DetectSensitiveData extracts the document text and scans it for emails,
// phone numbers, URLs, and dates
func DetectSensitiveData(doc *Document) (result domain.SensitiveDataResult) {
	defer func() {
		if err := recovered(recover()); err != nil {
			result = emptySensitiveResult()
			result.Error = err.Error()
		}
	}()

	r, err := newReader(doc)
	if err != nil {
		result = emptySensitiveResult()
		result.Error = err.Error()
		return result
	}

	return ScanText(joinPages(pageTexts(r)))
}

// ScanText runs the sensitive data patterns over plain text
func ScanText(text string) domain.SensitiveDataResult {
	return domain.SensitiveDataResult{
		Emails: matchAll(emailPattern, text),
		Phones: matchAll(phonePattern, text),
		URLs:   matchAll(urlPattern, text),
		Dates:  matchAll(datePattern, text),
	}
}

// matchAll returns all matches, never nil, so the JSON payload always
// carries arrays rather than null
func matchAll(re *regexp.Regexp, text string) []string {
	matches := re.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

func emptySensitiveResult() domain.SensitiveDataResult {
	return domain.SensitiveDataResult{
		Emails: []string{},
		Phones: []string{},
		URLs:   []string{},
		Dates:  []string{},
	}
}
