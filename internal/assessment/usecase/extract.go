package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"assessment-planner/internal/assessment"
	"assessment-planner/pkg/openrouter"
)

const (
	// Low temperature favors deterministic JSON output.
	extractionTemperature = 0.2
	extractionMaxTokens   = 2000

	// The model's advisory score defaults to this when omitted.
	defaultConfidence = 0.5
)

// rawBatch mirrors the model's reply before validation. Confidence is a
// pointer so an omitted field is distinguishable from an explicit zero.
type rawBatch struct {
	Assessments          []rawCandidate `json:"assessments"`
	Confidence           *float64       `json:"confidence"`
	ClarificationsNeeded []string       `json:"clarifications_needed"`
	ContextUsed          string         `json:"context_used"`
}

// rawCandidate is a not-yet-validated assessment from the model's reply.
// Tasks stays raw JSON so "missing" and "not an array" are detectable.
type rawCandidate struct {
	Title       string          `json:"title"`
	Subject     string          `json:"subject"`
	DueDate     string          `json:"due_date"`
	Description string          `json:"description"`
	Tasks       json.RawMessage `json:"tasks"`
}

// extractAssessments sends raw user text to the language model and returns the
// validated extraction batch. Every failure mode maps to *assessment.ExtractionError;
// individual bad candidates are filtered out, never fatal.
func (uc *implUseCase) extractAssessments(ctx context.Context, rawText string, userCtx assessment.UserContext) (assessment.ExtractionBatch, error) {
	prompt := buildImportPrompt(rawText, userCtx, uc.today())

	req := &openrouter.Request{
		Messages: []openrouter.Message{
			{Role: "system", Content: SystemPromptImport},
			{Role: "user", Content: prompt},
		},
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	}

	resp, err := uc.llm.ChatCompletion(ctx, req)
	if err != nil {
		return assessment.ExtractionBatch{}, &assessment.ExtractionError{Stage: assessment.StageRequest, Err: err}
	}

	responseText := resp.Text()
	if strings.TrimSpace(responseText) == "" {
		return assessment.ExtractionBatch{}, &assessment.ExtractionError{
			Stage: assessment.StageEmpty,
			Err:   errors.New("no response content from model"),
		}
	}

	uc.l.Debugf(ctx, "extractAssessments: raw model reply: %s", responseText)

	cleaned := sanitizeJSONResponse(responseText)

	var raw rawBatch
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		uc.l.Errorf(ctx, "extractAssessments: model reply was not valid JSON. Raw=%q Cleaned=%q", responseText, cleaned)
		return assessment.ExtractionBatch{}, &assessment.ExtractionError{
			Stage: assessment.StageParse,
			Err:   fmt.Errorf("model reply was not valid JSON: %w", err),
		}
	}

	// An absent assessments array is a contract violation; an empty one is not.
	if raw.Assessments == nil {
		return assessment.ExtractionBatch{}, &assessment.ExtractionError{
			Stage: assessment.StageContract,
			Err:   errors.New("model reply missing assessments array"),
		}
	}

	batch := assessment.ExtractionBatch{
		Assessments:          uc.filterAndNormalize(ctx, raw.Assessments),
		Confidence:           defaultConfidence,
		ClarificationsNeeded: []string{},
		ContextUsed:          raw.ContextUsed,
	}
	if raw.Confidence != nil {
		batch.Confidence = *raw.Confidence
	}
	if raw.ClarificationsNeeded != nil {
		batch.ClarificationsNeeded = raw.ClarificationsNeeded
	}

	return batch, nil
}

// sanitizeJSONResponse removes markdown code fences and leading/trailing prose
// that models often add around JSON output.
func sanitizeJSONResponse(text string) string {
	// ```json ... ``` or ``` ... ``` blocks
	re := regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	matches := re.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// No code block: find first { or [ and last } or ]
	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return text
	}
	end := strings.LastIndexAny(text, "}]")
	if end == -1 || end < start {
		return text
	}
	return strings.TrimSpace(text[start : end+1])
}

// today returns the current calendar day in the configured timezone.
// All relative dates within one extraction resolve against this single anchor.
func (uc *implUseCase) today() time.Time {
	now := uc.clock()
	if loc, err := time.LoadLocation(uc.timezone); err == nil {
		now = now.In(loc)
	}
	return now
}
