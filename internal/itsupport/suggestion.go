package itsupport

import (
	"context"
	"fmt"

	"github.com/roylobo/genai-portal/internal/classifier"
	"github.com/roylobo/genai-portal/internal/llm"
	"go.uber.org/zap"
)

// promptTemplates maps a ticket category to the troubleshooting prompt sent
// to the oracle. Each template takes the category and the issue description.
var promptTemplates = map[string]string{
	classifier.CategoryNetwork: `Category: %s
Issue: %s

Provide step-by-step troubleshooting instructions for network connectivity issues. Include:
1. Basic connectivity checks (ping, traceroute)
2. VPN connection troubleshooting
3. WiFi/Network adapter settings
4. Common network configuration fixes
5. When to contact network administrator
`,
	classifier.CategoryPassword: `Category: %s
Issue: %s

Provide step-by-step instructions for password and authentication issues. Include:
1. Password reset procedures
2. Account unlock steps
3. Multi-factor authentication setup
4. Common login troubleshooting
5. When to contact system administrator
`,
	classifier.CategorySoftware: `Category: %s
Issue: %s

Provide step-by-step instructions for software and application issues. Include:
1. Software installation procedures
2. License activation steps
3. Application troubleshooting
4. Update and patch procedures
5. When to contact software vendor or IT admin
`,
	classifier.CategoryHardware: `Category: %s
Issue: %s

Provide step-by-step troubleshooting for hardware issues. Include:
1. Basic hardware diagnostics
2. Driver updates and installations
3. Hardware connection checks
4. Common hardware fixes
5. When to contact hardware support or replace equipment
`,
	classifier.CategoryEmail: `Category: %s
Issue: %s

Provide step-by-step instructions for email and communication issues. Include:
1. Email client configuration
2. Calendar and meeting setup
3. Video conferencing troubleshooting
4. Email sync and backup procedures
5. When to contact email administrator
`,
	classifier.CategoryData: `Category: %s
Issue: %s

Provide step-by-step instructions for data and file issues. Include:
1. File recovery procedures
2. Backup and restore steps
3. Storage space management
4. File permission fixes
5. When to contact data recovery specialist
`,
	classifier.CategorySecurity: `Category: %s
Issue: %s

Provide step-by-step instructions for security and permission issues. Include:
1. Security software configuration
2. Permission settings adjustment
3. Firewall and antivirus setup
4. Security best practices
5. When to contact security team
`,
	classifier.CategoryAccount: `Category: %s
Issue: %s

Provide step-by-step instructions for account and access management. Include:
1. Account creation and setup
2. Access permission requests
3. Role and profile management
4. Account security settings
5. When to contact access management team
`,
	classifier.CategoryGeneralIT: `Category: %s
Issue: %s

Provide general IT troubleshooting steps. Include:
1. Basic system diagnostics
2. Common IT issue resolution
3. System optimization tips
4. Best practices for the specific issue
5. When to escalate to IT support team
`,
}

// Prompt renders the template for a category, falling back to the General IT
// Issue template for anything unrecognized.
func Prompt(category, description string) string {
	template, ok := promptTemplates[category]
	if !ok {
		template = promptTemplates[classifier.CategoryGeneralIT]
	}
	return fmt.Sprintf(template, category, description)
}

// Generator produces resolution suggestions for IT tickets.
type Generator struct {
	oracle llm.Oracle
	logger *zap.Logger
}

// NewGenerator creates a suggestion generator backed by the given oracle.
func NewGenerator(oracle llm.Oracle, logger *zap.Logger) *Generator {
	return &Generator{
		oracle: oracle,
		logger: logger,
	}
}

// Suggest fills the category's prompt template and returns the oracle's
// completion verbatim, with no parsing of the result.
func (g *Generator) Suggest(ctx context.Context, category, description string) (string, error) {
	out, err := g.oracle.Complete(ctx, Prompt(category, description))
	if err != nil {
		g.logger.Warn("Suggestion generation failed",
			zap.String("category", category),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate suggestion: %w", err)
	}
	return out, nil
}
