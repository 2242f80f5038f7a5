package analysis

import (
	"strings"
	"time"

	"github.com/inletdocs/pdf-insight-api/internal/domain"
)

// ExtractMetadata reads the document information dictionary
func ExtractMetadata(doc *Document) (result domain.MetadataResult) {
	defer func() {
		if err := recovered(recover()); err != nil {
			result = domain.MetadataResult{Error: err.Error()}
		}
	}()

	r, err := newReader(doc)
	if err != nil {
		return domain.MetadataResult{Error: err.Error()}
	}

	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return domain.MetadataResult{}
	}

	return domain.MetadataResult{
		Title:        info.Key("Title").Text(),
		Author:       info.Key("Author").Text(),
		Creator:      info.Key("Creator").Text(),
		Producer:     info.Key("Producer").Text(),
		CreationDate: formatPDFDate(info.Key("CreationDate").Text()),
		ModDate:      formatPDFDate(info.Key("ModDate").Text()),
	}
}

// formatPDFDate converts a PDF date string (D:YYYYMMDDHHmmSS with an optional
// timezone suffix) to RFC 3339. Unparseable values are returned empty.
func formatPDFDate(raw string) string {
	t, ok := ParsePDFDate(raw)
	if !ok {
		return ""
	}
	return t.Format(time.RFC3339)
}

// ParsePDFDate parses the PDF date format. The prefix "D:" is optional and
// every component after the year is optional, per the PDF spec.
func ParsePDFDate(raw string) (time.Time, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "D:")
	if len(s) < 4 {
		return time.Time{}, false
	}

	// Split off the timezone suffix: Z, or ±HH'mm'
	loc := time.UTC
	if idx := strings.IndexAny(s, "Z+-"); idx >= 0 {
		tz := s[idx:]
		s = s[:idx]
		if offset, ok := parseTZOffset(tz); ok {
			loc = time.FixedZone("", offset)
		}
	}

	// Pad missing components with their defaults (month/day 01, time 00)
	digits := s
	if len(digits) > 14 {
		digits = digits[:14]
	}
	digits += "0101000000"[len(digits)-4:]
	if len(digits) != 14 {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation("20060102150405", digits, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseTZOffset parses Z or ±HH'mm' into seconds east of UTC
func parseTZOffset(tz string) (int, bool) {
	if tz == "" || tz == "Z" {
		return 0, true
	}
	sign := 1
	switch tz[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, false
	}
	rest := strings.ReplaceAll(tz[1:], "'", "")
	if len(rest) < 2 {
		return 0, false
	}
	hours := int(rest[0]-'0')*10 + int(rest[1]-'0')
	minutes := 0
	if len(rest) >= 4 {
		minutes = int(rest[2]-'0')*10 + int(rest[3]-'0')
	}
	return sign * (hours*3600 + minutes*60), true
}
