package usecase

import (
	"context"
	"strings"

	"assessment-planner/internal/assessment"
	"assessment-planner/internal/model"
)

// ImportFromText extracts structured assessments from natural-language text.
//
// The pipeline is linear: fetch user context (never blocks on failure), run
// extraction, and return the validated batch when at least one assessment
// survives. An extraction failure, or a batch where nothing survives
// validation, falls through to the fallback gate: with AllowFallback the
// caller gets a single synthesized assessment flagged UsedFallback; without
// it the extraction error propagates.
func (uc *implUseCase) ImportFromText(ctx context.Context, sc model.Scope, input assessment.ImportInput) (assessment.ImportOutput, error) {
	if strings.TrimSpace(input.RawText) == "" {
		return assessment.ImportOutput{}, assessment.ErrEmptyInput
	}

	rawText := strings.TrimSpace(input.RawText)
	uc.l.Infof(ctx, "ImportFromText: user=%s input_length=%d allow_fallback=%t", sc.UserID, len(rawText), input.AllowFallback)

	userCtx := uc.userContext(ctx, sc.UserID)

	batch, err := uc.extractAssessments(ctx, rawText, userCtx)
	if err == nil && len(batch.Assessments) > 0 {
		uc.l.Infof(ctx, "ImportFromText: extracted %d assessments confidence=%.2f", len(batch.Assessments), batch.Confidence)
		return assessment.ImportOutput{
			Assessments:    batch.Assessments,
			UsedFallback:   false,
			Confidence:     batch.Confidence,
			Clarifications: batch.ClarificationsNeeded,
			ContextUsed:    batch.ContextUsed,
		}, nil
	}

	if err == nil {
		// Extraction succeeded but nothing survived validation.
		err = assessment.ErrNoAssessmentsExtracted
	}
	uc.l.Warnf(ctx, "ImportFromText: extraction unusable for user=%s: %v", sc.UserID, err)

	if !input.AllowFallback {
		return assessment.ImportOutput{}, err
	}

	fb := fallbackAssessment(rawText)
	uc.l.Infof(ctx, "ImportFromText: using fallback assessment %q for user=%s", fb.Title, sc.UserID)

	return assessment.ImportOutput{
		Assessments:    []assessment.ExtractedAssessment{fb},
		UsedFallback:   true,
		Confidence:     fallbackConfidence,
		Clarifications: []string{},
		ContextUsed:    "",
	}, nil
}
