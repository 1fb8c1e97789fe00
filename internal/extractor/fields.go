package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/roylobo/genai-portal/internal/llm"
	"go.uber.org/zap"
)

// contractClauses is checked in this fixed order; the workflow checklist for
// Legal reproduces it.
var contractClauses = []string{"Termination", "Liability", "Confidentiality"}

// Extractor pulls department-shaped fields out of document text. Rigid
// patterns are handled with regexes; fields that need semantic understanding
// (vendor names, parties, sentiment) are delegated to the language-model
// oracle. Extraction is best effort: a miss is an absent field and an oracle
// failure leaves the field empty.
type Extractor struct {
	oracle llm.Oracle
	logger *zap.Logger
}

// New creates a field extractor backed by the given oracle.
func New(oracle llm.Oracle, logger *zap.Logger) *Extractor {
	return &Extractor{
		oracle: oracle,
		logger: logger,
	}
}

// FinanceFields holds invoice signals. Empty strings mean no match.
type FinanceFields struct {
	Vendor  string `json:"vendor"`
	Amount  string `json:"amount"`
	DueDate string `json:"due_date"`
}

// LegalFields holds contract signals.
type LegalFields struct {
	Parties        string   `json:"parties"`
	MissingClauses []string `json:"missing_clauses"`
}

// Finance extracts vendor, amount and due date from invoice text. Amount and
// due date are first regex matches; the vendor comes from the oracle and is
// passed through without validation.
func (e *Extractor) Finance(ctx context.Context, text string) FinanceFields {
	prompt := fmt.Sprintf("Extract the vendor/supplier name from this invoice:\n%s\nVendor:", text)

	return FinanceFields{
		Vendor:  e.complete(ctx, "finance vendor", prompt),
		Amount:  firstMatch(amountFirstPattern, text),
		DueDate: firstMatch(dueDatePattern, text),
	}
}

// Legal reports which of the standard clauses are absent from the contract
// and asks the oracle for the contracting parties. A clause counts as present
// if its name appears anywhere in the text, case-insensitively.
func (e *Extractor) Legal(ctx context.Context, text string) LegalFields {
	lower := strings.ToLower(text)

	missing := []string{}
	for _, clause := range contractClauses {
		if !strings.Contains(lower, strings.ToLower(clause)) {
			missing = append(missing, clause)
		}
	}

	prompt := fmt.Sprintf("Extract parties in this contract:\n%s\nParties:", text)

	return LegalFields{
		Parties:        e.complete(ctx, "legal parties", prompt),
		MissingClauses: missing,
	}
}

// Support asks the oracle to classify a complaint. The response is stored
// verbatim: no schema is imposed, so malformed output can never fail the
// pipeline.
func (e *Extractor) Support(ctx context.Context, text string) string {
	prompt := fmt.Sprintf(
		"Classify the following client complaint:\nText: %s\nReturn JSON with 'category' (Refund/Delay/Delivery/Other) and 'priority' (Low/Medium/High).",
		text)
	return e.complete(ctx, "support triage", prompt)
}

// HR asks the oracle for sentiment and category of employee feedback. As with
// Support, the raw response is returned unparsed.
func (e *Extractor) HR(ctx context.Context, text string) string {
	prompt := fmt.Sprintf(
		"Analyze employee feedback:\n%s\nReturn JSON with 'sentiment' (Positive/Negative/Neutral) and 'category' (Workload, Manager support, Pay, Other).",
		text)
	return e.complete(ctx, "hr feedback", prompt)
}

// complete runs the oracle and degrades to an empty string on failure.
func (e *Extractor) complete(ctx context.Context, field, prompt string) string {
	out, err := e.oracle.Complete(ctx, prompt)
	if err != nil {
		e.logger.Warn("Oracle extraction failed, leaving field empty",
			zap.String("field", field),
			zap.Error(err))
		return ""
	}
	return out
}
