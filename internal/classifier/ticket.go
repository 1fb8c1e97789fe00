package classifier

import "strings"

// IT ticket categories.
const (
	CategoryNetwork   = "Network & Connectivity"
	CategoryPassword  = "Password & Authentication"
	CategorySoftware  = "Software & Applications"
	CategoryHardware  = "Hardware Issues"
	CategoryEmail     = "Email & Communication"
	CategoryData      = "Data & File Issues"
	CategorySecurity  = "Security & Permissions"
	CategoryAccount   = "Account & Access Management"
	CategoryGeneralIT = "General IT Issue"
)

// ticketGroups is evaluated top to bottom with first-match-wins semantics.
// "access" and "permission" appear in more than one group on purpose:
// "permission" always resolves to Security & Permissions because that group
// precedes Account & Access Management, and "access" is claimed even earlier
// by Password & Authentication.
var ticketGroups = []keywordGroup{
	{CategoryNetwork, []string{"vpn", "network", "internet", "wifi", "connection", "connectivity"}},
	{CategoryPassword, []string{"password", "login", "authentication", "access", "locked", "expired"}},
	{CategorySoftware, []string{"software", "install", "license", "application", "app", "program", "update"}},
	{CategoryHardware, []string{"printer", "scanner", "keyboard", "mouse", "monitor", "laptop", "computer", "hardware"}},
	{CategoryEmail, []string{"email", "outlook", "gmail", "calendar", "meeting", "teams", "zoom"}},
	{CategoryData, []string{"file", "data", "backup", "storage", "drive", "folder", "document"}},
	{CategorySecurity, []string{"security", "permission", "access", "firewall", "antivirus", "malware"}},
	{CategoryAccount, []string{"account", "user", "profile", "access", "permission", "role"}},
}

// TicketCategory classifies an IT ticket description into one of the eight
// named categories, falling back to General IT Issue.
func TicketCategory(text string) string {
	lower := strings.ToLower(text)
	for _, group := range ticketGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(lower, keyword) {
				return group.label
			}
		}
	}
	return CategoryGeneralIT
}
