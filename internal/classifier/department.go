package classifier

import "strings"

// Department names used across the intake pipeline.
const (
	DeptFinance         = "Finance"
	DeptHR              = "HR"
	DeptCustomerSupport = "Customer Support"
	DeptLegal           = "Legal"
	DeptGeneral         = "General"
)

// keywordGroup maps a label to the keywords that select it. Any single
// keyword match is sufficient.
type keywordGroup struct {
	label    string
	keywords []string
}

// departmentGroups is evaluated top to bottom, first matching group wins.
// The ordering is load-bearing: a document mentioning both "invoice" and
// "employee" is routed to Finance because Finance is checked first.
var departmentGroups = []keywordGroup{
	{DeptFinance, []string{"invoice", "payment", "amount", "finance"}},
	{DeptHR, []string{"resignation", "joining", "salary", "employee"}},
	{DeptCustomerSupport, []string{"complaint", "delay", "issue", "support"}},
	{DeptLegal, []string{"agreement", "contract", "clause", "legal"}},
}

// Department classifies free text into one of the five departments using a
// case-insensitive substring scan over the ordered keyword groups. Text that
// matches no group falls through to General.
func Department(text string) string {
	lower := strings.ToLower(text)
	for _, group := range departmentGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				return group.label
			}
		}
	}
	return DeptGeneral
}
