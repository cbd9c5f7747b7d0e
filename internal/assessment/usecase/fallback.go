package usecase

import (
	"strings"

	"assessment-planner/internal/assessment"
)

const (
	fallbackSubject    = "General"
	fallbackTitle      = "Imported Assessment"
	fallbackTitleMax   = 50
	fallbackTitleTrunc = 47
	fallbackDescMax    = 200
	fallbackConfidence = 0.1
)

// fallbackAssessment builds a minimal valid assessment straight from the raw
// text. Pure and total: any input, including empty or huge strings, yields a
// usable scaffold with a non-empty title and exactly three generic tasks.
func fallbackAssessment(rawText string) assessment.ExtractedAssessment {
	// The first non-blank line is kept untrimmed; its surrounding whitespace
	// counts toward the length cap.
	title := fallbackTitle
	for _, line := range strings.Split(rawText, "\n") {
		if strings.TrimSpace(line) != "" {
			title = line
			break
		}
	}
	// Caps are in characters, so count and cut by runes.
	if runes := []rune(title); len(runes) > fallbackTitleMax {
		title = string(runes[:fallbackTitleTrunc]) + "..."
	}

	description := rawText
	if runes := []rune(description); len(runes) > fallbackDescMax {
		description = string(runes[:fallbackDescMax]) + "..."
	}

	return assessment.ExtractedAssessment{
		Title:       title,
		Subject:     fallbackSubject,
		Description: description,
		Tasks: []assessment.ExtractedTask{
			{Title: "Review imported plan"},
			{Title: "Break down into smaller tasks"},
			{Title: "Set timeline and milestones"},
		},
	}
}
