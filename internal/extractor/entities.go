package extractor

import "regexp"

// Entity patterns. These are load-bearing for compatibility with previously
// analyzed documents; do not tidy them up.
var (
	// amountAllPattern matches an optional ₹ or $ with optional space, digits
	// with optional comma-grouped thousands and an optional two-decimal
	// fraction.
	amountAllPattern = regexp.MustCompile(`(?:₹|\$)?\s?\d{1,3}(?:,\d{2,3})*(?:\.\d{2})?`)

	// amountFirstPattern is the slightly looser variant used by the Finance
	// field extractor, which only ever takes the first match.
	amountFirstPattern = regexp.MustCompile(`(?:₹|\$)?\s?\d+(?:,\d{3})*(?:\.\d{2})?`)

	// datePattern matches D/M/YY(YY) with / or - separators, or a day
	// followed by a month-name prefix and a year.
	datePattern = regexp.MustCompile(`(?i)\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{1,2}\s(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s\d{2,4}\b`)

	// dueDatePattern is the Finance-only first-match date form.
	dueDatePattern = regexp.MustCompile(`\b(?:\d{1,2}/\d{1,2}/\d{2,4}|\d{1,2} \w+ \d{4})\b`)

	// invoiceNumberPattern matches INV-DDDD-DDD with - or / separators.
	invoiceNumberPattern = regexp.MustCompile(`(?i)\bINV[-/]\d{4}[-/]\d{3}\b`)
)

// Entities holds every pattern match found in a document, in source order.
// Empty slices are a normal outcome, never an error.
type Entities struct {
	Amounts        []string `json:"amounts"`
	Dates          []string `json:"dates"`
	InvoiceNumbers []string `json:"invoice_numbers"`
}

// ScanEntities runs the three entity patterns over the text and collects all
// matches in order of appearance.
func ScanEntities(text string) Entities {
	return Entities{
		Amounts:        allMatches(amountAllPattern, text),
		Dates:          allMatches(datePattern, text),
		InvoiceNumbers: allMatches(invoiceNumberPattern, text),
	}
}

func allMatches(pattern *regexp.Regexp, text string) []string {
	matches := pattern.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

func firstMatch(pattern *regexp.Regexp, text string) string {
	return pattern.FindString(text)
}
