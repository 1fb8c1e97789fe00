package models

import "time"

// Resume holds an uploaded resume and the raw oracle analyses for it. The
// analyses are stored as the oracle returned them; the portal renders them
// without imposing a schema.
type Resume struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Filename        string    `json:"filename"`
	ExperienceYears int       `json:"experience_years"`
	SkillsAnalysis  string    `json:"skills_analysis"`
	JobMatches      string    `json:"job_matches"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
