package assessment

import "assessment-planner/internal/model"

// ExtractedTask is a single task inside an extracted assessment.
type ExtractedTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// ExtractedAssessment is one assessment extracted from free text.
// Candidates carry this shape before validation; only validated values
// leave the use-case layer.
type ExtractedAssessment struct {
	Title       string          `json:"title"`
	Subject     string          `json:"subject,omitempty"`
	DueDate     string          `json:"due_date,omitempty"` // YYYY-MM-DD
	Description string          `json:"description,omitempty"`
	Tasks       []ExtractedTask `json:"tasks"`
}

// ExtractionBatch is the validated result of one extraction call.
type ExtractionBatch struct {
	Assessments          []ExtractedAssessment `json:"assessments"`
	Confidence           float64               `json:"confidence"`
	ClarificationsNeeded []string              `json:"clarifications_needed"`
	ContextUsed          string                `json:"context_used"`
}

// UserContext holds per-user hints that help the model disambiguate input.
// It is advisory only; the model may ignore it.
type UserContext struct {
	RecentSubjects  []string
	CurrentSemester string
	DefaultDueDays  int
}

// ImportInput is the input for the text import operation.
type ImportInput struct {
	RawText       string // natural-language assessment descriptions from the user
	AllowFallback bool   // when extraction fails, synthesize a minimal assessment instead of erroring
}

// ImportOutput is the result of the import operation, pre-persistence.
type ImportOutput struct {
	Assessments    []ExtractedAssessment
	UsedFallback   bool
	Confidence     float64
	Clarifications []string
	ContextUsed    string
}

// SavedAssessment is one assessment that was successfully persisted,
// together with its tasks and the optional study-session link.
type SavedAssessment struct {
	Assessment   model.Assessment
	Tasks        []model.AssessmentTask
	CalendarLink string // deep link to the booked study session (may be empty)
}

// SaveOutput is the result of persisting an import batch.
type SaveOutput struct {
	Saved   []SavedAssessment
	Skipped int // candidates rejected by save-time validation or storage errors
}
