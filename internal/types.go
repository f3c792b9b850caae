package internal

import "time"

// Run statuses recorded in the extraction ledger.
const (
	RunCompleted = "completed"
	RunSkipped   = "skipped"
	RunFailed    = "failed"
)

type ExtractionRun struct {
	ID           string    `json:"id"`
	Corpus       string    `json:"corpus"`
	SourceLang   string    `json:"source_lang"`
	TargetLang   string    `json:"target_lang"`
	LinesWritten int       `json:"lines_written"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
