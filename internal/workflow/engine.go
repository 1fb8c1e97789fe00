package workflow

import (
	"strconv"
	"strings"

	"github.com/roylobo/genai-portal/internal/classifier"
)

// approvalThreshold is the amount above which Finance documents need manager
// sign-off. The boundary is exclusive: exactly 50000 still processes normally.
const approvalThreshold = 50000

// Fields carries the extracted signals a department branch may consume.
// Every field is optional; absence always resolves to the lowest-severity
// branch of the department in question.
type Fields struct {
	// Amounts holds every amount match from the generic entity scan. Finance
	// falls back to the single Amount field when it is empty.
	Amounts []string
	Amount  string
	// Raw is the unparsed source text or oracle response, depending on the
	// caller. Customer Support scans it for "High"; HR re-derives its signal
	// from it directly.
	Raw string
	// Summary is the oracle summary, used by HR only when Raw is empty.
	Summary string
	// MissingClauses lists absent contract clauses in clause-check order.
	MissingClauses []string
}

// Result is the engine's output: a workflow outcome and an ordered action
// checklist. It is always well formed; the engine never fails.
type Result struct {
	Outcome   string   `json:"outcome"`
	Checklist []string `json:"checklist"`
}

// Generate computes the workflow decision for a department from its extracted
// fields. It is a pure function: no I/O and no oracle calls happen here.
func Generate(department string, fields Fields) Result {
	switch department {
	case classifier.DeptFinance:
		return financeWorkflow(fields)
	case classifier.DeptCustomerSupport:
		return supportWorkflow(fields)
	case classifier.DeptLegal:
		return legalWorkflow(fields)
	case classifier.DeptHR:
		return hrWorkflow(fields)
	default:
		return Result{Outcome: "General Processing", Checklist: []string{}}
	}
}

// financeWorkflow thresholds the largest candidate amount. Candidate strings
// that fail to parse contribute zero rather than aborting.
func financeWorkflow(fields Fields) Result {
	candidates := fields.Amounts
	if len(candidates) == 0 && fields.Amount != "" {
		candidates = []string{fields.Amount}
	}

	amount := 0
	for _, candidate := range candidates {
		if value := parseAmount(candidate); value > amount {
			amount = value
		}
	}

	if amount > approvalThreshold {
		return Result{
			Outcome: "Approval Required",
			Checklist: []string{
				"Escalate to Finance Manager",
				"Log in SAP",
				"Schedule Payment",
			},
		}
	}

	return Result{
		Outcome:   "Process Normally",
		Checklist: []string{"Schedule Payment"},
	}
}

// parseAmount turns an amount string into an integer by stripping currency
// symbols and thousands separators and truncating any decimal fraction.
// Unparseable input degrades to zero.
func parseAmount(value string) int {
	cleaned := strings.NewReplacer("₹", "", "$", "", ",", "").Replace(value)
	cleaned = strings.TrimSpace(cleaned)
	if dot := strings.Index(cleaned, "."); dot >= 0 {
		cleaned = cleaned[:dot]
	}

	parsed, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return parsed
}

// supportWorkflow escalates when the triage response mentions "High". This is
// a literal substring check against the unparsed oracle output, kept brittle
// on purpose for compatibility with the prompt phrasing.
func supportWorkflow(fields Fields) Result {
	outcome := "Normal Ticket"
	if strings.Contains(fields.Raw, "High") {
		outcome = "Escalation Needed"
	}

	return Result{
		Outcome: outcome,
		Checklist: []string{
			"Create ServiceNow Ticket",
			"Notify Project Manager",
			"Draft Apology Email",
		},
	}
}

// legalWorkflow builds one checklist entry per missing clause, preserving the
// clause-check order, then routes the contract to Legal.
func legalWorkflow(fields Fields) Result {
	if len(fields.MissingClauses) == 0 {
		return Result{
			Outcome:   "Contract OK",
			Checklist: []string{"Archive in Legal System"},
		}
	}

	checklist := make([]string, 0, len(fields.MissingClauses)+1)
	for _, clause := range fields.MissingClauses {
		checklist = append(checklist, "Add "+clause+" Clause")
	}
	checklist = append(checklist, "Route to Legal")

	return Result{
		Outcome:   "Legal Review Required",
		Checklist: checklist,
	}
}

// hrWorkflow walks the priority-ordered rule table over the raw feedback
// text. The first rule with any keyword present wins; nothing matching falls
// through to the neutral monitor branch.
func hrWorkflow(fields Fields) Result {
	text := fields.Raw
	if text == "" {
		text = fields.Summary
	}
	lower := strings.ToLower(text)

	for _, rule := range hrRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.result
			}
		}
	}

	return hrNeutralResult
}
