package workflow

// hrRule pairs a keyword group with the fixed outcome and checklist it maps
// to. The table is evaluated top to bottom with first-match-wins semantics,
// so overlap resolves by position: "harassment" beats "positive" because the
// complaint rule comes first.
type hrRule struct {
	keywords []string
	result   Result
}

// hrRules is the HR feedback cascade. Checklists are the contractual output
// presented to HR staff; do not reword them.
var hrRules = []hrRule{
	{
		keywords: []string{"resign", "quit", "leaving", "exit", "termination", "fired", "dismissed", "separation"},
		result: Result{
			Outcome: "Employee Exit Process",
			Checklist: []string{
				"Schedule exit interview within 48 hours",
				"Collect company assets and access cards",
				"Process final settlement and benefits",
				"Update HRIS and remove system access",
				"Conduct knowledge transfer session",
			},
		},
	},
	{
		keywords: []string{"harassment", "discrimination", "bullying", "inappropriate", "uncomfortable", "threat", "abuse", "hostile", "toxic"},
		result: Result{
			Outcome: "Serious Complaint - Immediate Investigation",
			Checklist: []string{
				"Escalate to HRBP and Legal team immediately",
				"Document all details and evidence",
				"Schedule investigation meeting within 24 hours",
				"Notify senior management",
				"Consider temporary suspension if needed",
				"Follow company harassment policy strictly",
			},
		},
	},
	{
		keywords: []string{"positive", "good", "excellent", "satisfied", "appreciate", "benefits", "improved", "higher", "increased", "enhanced", "valued", "respected", "motivated", "engagement", "collaboration", "teamwork", "productivity", "retention", "innovation", "unity", "happy", "great", "wonderful", "amazing", "fantastic"},
		result: Result{
			Outcome: "Positive Feedback - Recognition",
			Checklist: []string{
				"Archive positive feedback in HR system",
				"Share with relevant manager for recognition",
				"Consider for employee recognition program",
				"Document as positive culture indicator",
				"Follow up with employee to express appreciation",
			},
		},
	},
	{
		keywords: []string{"urgent", "critical", "immediate", "high", "burnout", "frustration", "stress", "disengagement", "attrition", "overworked", "underappreciated", "fatigue", "exploited", "emergency", "crisis", "severe", "serious"},
		result: Result{
			Outcome: "Immediate Action Required",
			Checklist: []string{
				"Escalate to HRBP within 24 hours",
				"Schedule urgent 1:1 meeting",
				"Document incident in HR system",
				"Notify relevant manager immediately",
				"Assess if immediate intervention needed",
				"Consider temporary workload adjustment",
			},
		},
	},
	{
		keywords: []string{"salary", "pay", "compensation", "bonus", "increment", "raise", "wage", "money", "financial", "benefits", "insurance", "pension"},
		result: Result{
			Outcome: "Compensation Review Required",
			Checklist: []string{
				"Review current compensation structure",
				"Compare with market benchmarks",
				"Schedule meeting with employee",
				"Consult with compensation team",
				"Prepare compensation proposal",
				"Follow up within 2 weeks",
			},
		},
	},
	{
		keywords: []string{"work-life", "balance", "overtime", "flexible", "remote", "home", "family", "personal", "time", "schedule", "hours"},
		result: Result{
			Outcome: "Work-Life Balance Review",
			Checklist: []string{
				"Review current work schedule and policies",
				"Discuss flexible work options",
				"Assess workload distribution",
				"Consider remote work possibilities",
				"Schedule follow-up in 1 week",
				"Monitor improvement over next month",
			},
		},
	},
	{
		keywords: []string{"training", "development", "learning", "skill", "course", "certification", "growth", "career", "advancement", "promotion", "mentoring"},
		result: Result{
			Outcome: "Training & Development Plan",
			Checklist: []string{
				"Assess current skill gaps",
				"Identify relevant training programs",
				"Create development plan",
				"Assign mentor if needed",
				"Schedule regular progress reviews",
				"Track development milestones",
			},
		},
	},
	{
		keywords: []string{"negative", "concern", "issue", "problem", "imbalance", "frustration", "uneven", "workload", "morale", "low", "communication", "trust", "absenteeism", "dissatisfied", "unhappy", "disappointed"},
		result: Result{
			Outcome: "Follow-up Needed",
			Checklist: []string{
				"Schedule 1:1 meeting this week",
				"Document concerns in HR system",
				"Identify root cause of issues",
				"Create action plan with employee",
				"Follow up in 2 weeks",
				"Monitor progress monthly",
			},
		},
	},
	{
		keywords: []string{"feedback", "suggestion", "idea", "improvement", "process", "system", "policy", "procedure", "workflow"},
		result: Result{
			Outcome: "General Feedback - Process Review",
			Checklist: []string{
				"Review feedback for process improvements",
				"Share with relevant department heads",
				"Evaluate feasibility of suggestions",
				"Schedule feedback discussion",
				"Implement approved changes",
				"Follow up on implementation",
			},
		},
	},
}

// hrNeutralResult is the default when no rule matches.
var hrNeutralResult = Result{
	Outcome: "Neutral Feedback - Monitor",
	Checklist: []string{
		"Archive in HR system for reference",
		"Monitor for patterns or trends",
		"Include in quarterly HR review",
		"No immediate action required",
	},
}
