package usecase

import (
	"fmt"
	"strings"
	"time"

	"assessment-planner/internal/assessment"
	"assessment-planner/pkg/datemath"
)

// SystemPromptImport is the system instruction sent with every extraction request.
const SystemPromptImport = "You are an intelligent academic assessment planner that excels at understanding natural language and extracting structured assessment data. Always return valid JSON only."

// importPromptTemplate is the user-prompt skeleton. Placeholders:
// context block, raw text.
const importPromptTemplate = `You are an intelligent academic assessment planner that can understand natural language and extract multiple assessments from freeform text.

%s

Analyze this text and extract ALL assessments mentioned:
"""%s"""

Capabilities:
- Handle natural language ("I have a science report due next week about cells")
- Parse multiple assessments in one message
- Infer missing information using context
- Convert relative dates to exact dates
- Recognize subjects from content
- Generate appropriate tasks when not specified

Rules:
1. Return ONLY valid JSON, no extra text
2. Extract EVERY assessment mentioned, even implied ones
3. Use context to fill missing subjects, due dates, etc.
4. Convert "next week", "in two weeks", "Friday" to exact dates (YYYY-MM-DD)
5. Generate 3-5 logical tasks for assessments without explicit tasks
6. Set confidence score based on clarity of input (0.1-1.0)
7. List clarifications needed if information is ambiguous

Return this structure:
{
  "assessments": [
    {
      "title": "Assessment title",
      "subject": "Subject name (inferred if needed)",
      "due_date": "YYYY-MM-DD (calculated from relative terms)",
      "description": "Brief description",
      "tasks": [
        {"title": "Task title", "description": "Task details"}
      ]
    }
  ],
  "confidence": 0.8,
  "clarifications_needed": ["Any unclear items"],
  "context_used": "What context helped fill gaps"
}

Examples of input handling:
- "Math homework due Friday" → due_date = this Friday's date
- "Science report about cells" → subject = "Science", generate research tasks
- "Essay and presentation next week" → create two separate assessments
- "Same subject as before" → use from recent subjects context`

// buildImportPrompt assembles the extraction prompt. Pure string construction:
// today is the absolute anchor for relative-date resolution, uc is advisory
// context the model may ignore.
func buildImportPrompt(rawText string, uc assessment.UserContext, today time.Time) string {
	return fmt.Sprintf(importPromptTemplate, buildContextBlock(uc, today), rawText)
}

// buildContextBlock renders the user-context section of the prompt,
// always ending with the today anchor.
func buildContextBlock(uc assessment.UserContext, today time.Time) string {
	todayStr := today.Format(datemath.ISO)

	recent := "None"
	if len(uc.RecentSubjects) > 0 {
		recent = strings.Join(uc.RecentSubjects, ", ")
	}
	semester := uc.CurrentSemester
	if semester == "" {
		semester = "Unknown"
	}
	dueDays := uc.DefaultDueDays
	if dueDays <= 0 {
		dueDays = defaultDueDays
	}

	return fmt.Sprintf(`User Context:
- Recent subjects: %s
- Current semester: %s
- Default due days: %d
Today's date: %s (%s)`,
		recent, semester, dueDays, todayStr, today.Weekday().String())
}
