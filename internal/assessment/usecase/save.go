package usecase

import (
	"context"
	"fmt"
	"time"

	"assessment-planner/internal/assessment"
	"assessment-planner/internal/model"
	"assessment-planner/pkg/studycal"
)

const studySessionDuration = time.Hour

// SaveImported persists an import batch. Each entry becomes one assessment
// record plus its task records; entries failing save-time validation or
// storage are skipped, never fatal for the rest of the batch. A study session
// is booked per saved assessment when a scheduler is configured.
func (uc *implUseCase) SaveImported(ctx context.Context, sc model.Scope, batch assessment.ImportOutput) (assessment.SaveOutput, error) {
	if len(batch.Assessments) == 0 {
		return assessment.SaveOutput{}, assessment.ErrNothingToSave
	}

	out := assessment.SaveOutput{Saved: make([]assessment.SavedAssessment, 0, len(batch.Assessments))}

	for _, parsed := range batch.Assessments {
		// Default the due date before validation so fallback and dateless
		// extractions still persist.
		if parsed.DueDate == "" {
			due := uc.dateMath.DueInDays(uc.today(), uc.defaultDueDaysFor(ctx, sc))
			parsed.DueDate = uc.dateMath.ISODate(due)
		}

		if err := uc.validateForSave(parsed); err != nil {
			uc.l.Warnf(ctx, "SaveImported: skipping %q: %v", parsed.Title, err)
			out.Skipped++
			continue
		}

		saved, err := uc.saveOne(ctx, sc, parsed)
		if err != nil {
			uc.l.Errorf(ctx, "SaveImported: failed to save %q: %v", parsed.Title, err)
			out.Skipped++
			continue
		}

		out.Saved = append(out.Saved, saved)
		uc.l.Infof(ctx, "SaveImported: saved %q id=%s tasks=%d", saved.Assessment.Title, saved.Assessment.ID, len(saved.Tasks))
	}

	return out, nil
}

func (uc *implUseCase) saveOne(ctx context.Context, sc model.Scope, parsed assessment.ExtractedAssessment) (assessment.SavedAssessment, error) {
	due, err := uc.dateMath.ParseISO(parsed.DueDate)
	if err != nil {
		return assessment.SavedAssessment{}, err
	}

	subject := parsed.Subject
	if subject == "" {
		subject = fallbackSubject
	}

	record, err := uc.repo.CreateAssessment(ctx, model.Assessment{
		UserID:      sc.UserID,
		Title:       parsed.Title,
		Subject:     subject,
		Description: parsed.Description,
		DueDate:     due,
		Progress:    0,
	})
	if err != nil {
		return assessment.SavedAssessment{}, fmt.Errorf("create assessment: %w", err)
	}

	tasks := make([]model.AssessmentTask, 0, len(parsed.Tasks))
	for _, t := range parsed.Tasks {
		tasks = append(tasks, model.AssessmentTask{
			AssessmentID: record.ID,
			UserID:       sc.UserID,
			Title:        t.Title,
			Description:  t.Description,
		})
	}

	createdTasks, err := uc.repo.CreateTasks(ctx, tasks)
	if err != nil {
		return assessment.SavedAssessment{}, fmt.Errorf("create tasks: %w", err)
	}

	return assessment.SavedAssessment{
		Assessment:   record,
		Tasks:        createdTasks,
		CalendarLink: uc.tryBookStudySession(ctx, record, due),
	}, nil
}

// tryBookStudySession books a study block the day before the due date.
// Returns the session link, or empty string on failure (graceful degradation).
func (uc *implUseCase) tryBookStudySession(ctx context.Context, a model.Assessment, due time.Time) string {
	if uc.scheduler == nil {
		return ""
	}

	start := due.AddDate(0, 0, -1).Add(17 * time.Hour) // 5pm the day before
	session, err := uc.scheduler.BookSession(ctx, studycal.BookSessionRequest{
		Title:     "Study: " + a.Title,
		Notes:     a.Description,
		StartTime: start,
		EndTime:   start.Add(studySessionDuration),
		Timezone:  uc.timezone,
	})
	if err != nil {
		uc.l.Warnf(ctx, "SaveImported: study session booking failed for %q (non-fatal): %v", a.Title, err)
		return ""
	}

	return session.HTMLLink
}

// defaultDueDaysFor returns the user's default due offset, falling back to
// the package default when context has none.
func (uc *implUseCase) defaultDueDaysFor(ctx context.Context, sc model.Scope) int {
	userCtx := uc.userContext(ctx, sc.UserID)
	if userCtx.DefaultDueDays > 0 {
		return userCtx.DefaultDueDays
	}
	return defaultDueDays
}
