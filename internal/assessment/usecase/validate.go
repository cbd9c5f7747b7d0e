package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"assessment-planner/internal/assessment"
)

// filterAndNormalize turns raw candidates into validated assessments.
// It never fails: malformed candidates are logged and dropped, input ordering
// is preserved, and duplicates are kept (the same title can recur across terms).
func (uc *implUseCase) filterAndNormalize(ctx context.Context, candidates []rawCandidate) []assessment.ExtractedAssessment {
	valid := make([]assessment.ExtractedAssessment, 0, len(candidates))

	for i, c := range candidates {
		title := strings.TrimSpace(c.Title)
		if title == "" {
			uc.l.Warnf(ctx, "filterAndNormalize: dropping candidate %d: empty title", i)
			continue
		}

		// The tasks field must be present as an array. An empty array is fine
		// here; save-time validation enforces completeness. A nil slice after
		// a successful unmarshal means the field was the literal null.
		var rawTasks []rawTask
		if c.Tasks == nil || json.Unmarshal(c.Tasks, &rawTasks) != nil || rawTasks == nil {
			uc.l.Warnf(ctx, "filterAndNormalize: dropping candidate %d (%q): tasks is not an array", i, title)
			continue
		}

		tasks := make([]assessment.ExtractedTask, 0, len(rawTasks))
		for _, t := range rawTasks {
			taskTitle := strings.TrimSpace(t.Title)
			if taskTitle == "" {
				uc.l.Warnf(ctx, "filterAndNormalize: dropping empty-title task in %q", title)
				continue
			}
			tasks = append(tasks, assessment.ExtractedTask{
				Title:       taskTitle,
				Description: strings.TrimSpace(t.Description),
			})
		}

		valid = append(valid, assessment.ExtractedAssessment{
			Title:       title,
			Subject:     strings.TrimSpace(c.Subject),
			DueDate:     strings.TrimSpace(c.DueDate),
			Description: strings.TrimSpace(c.Description),
			Tasks:       tasks,
		})
	}

	return valid
}

type rawTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// validateForSave checks an extracted assessment against the persistence
// requirements: at least one task, and a parseable, non-past due date when set.
func (uc *implUseCase) validateForSave(a assessment.ExtractedAssessment) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("assessment title is required")
	}
	if len(a.Tasks) == 0 {
		return fmt.Errorf("at least one task is required")
	}
	for i, t := range a.Tasks {
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("task %d title is required", i+1)
		}
	}

	if a.DueDate != "" {
		due, err := uc.dateMath.ParseISO(a.DueDate)
		if err != nil {
			return fmt.Errorf("invalid due date format: %w", err)
		}
		todayStart, _ := uc.dateMath.Parse("today", uc.today())
		if due.Before(todayStart) {
			return fmt.Errorf("due date cannot be in the past")
		}
	}

	return nil
}
