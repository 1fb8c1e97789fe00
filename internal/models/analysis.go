package models

import "time"

// AnalysisResult is the stored outcome of the document-upload flow: the
// department assignment, the oracle summary, the scanned entities and the
// workflow decision. Entities and WorkflowChecklist are JSON-encoded text
// columns, written once and never mutated.
type AnalysisResult struct {
	ID                int64     `json:"id"`
	Filename          string    `json:"filename"`
	StoredPath        string    `json:"-"`
	Department        string    `json:"department"`
	Summary           string    `json:"summary"`
	Entities          string    `json:"entities"`
	WorkflowOutcome   string    `json:"workflow_outcome"`
	WorkflowChecklist string    `json:"workflow_checklist"`
	CreatedAt         time.Time `json:"created_at"`
}
