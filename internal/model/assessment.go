package model

import "time"

// Assessment is a persisted assessment record (exam, essay, report, ...).
type Assessment struct {
	ID          string
	UserID      string
	Title       string
	Subject     string
	Description string
	DueDate     time.Time
	Progress    int // completion percentage 0-100
	CreatedAt   time.Time
}

// AssessmentTask is a persisted task belonging to an assessment.
type AssessmentTask struct {
	ID           string
	AssessmentID string
	UserID       string
	Title        string
	Description  string
	Completed    bool
	Position     int // preserves the extraction ordering
	CreatedAt    time.Time
}
