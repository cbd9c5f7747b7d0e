package usecase

import (
	"context"

	"assessment-planner/internal/assessment"
)

// Safe defaults used whenever user history is unavailable.
const (
	defaultSemester = "Current"
	defaultDueDays  = 14
)

// defaultUserContext is the context the pipeline proceeds with when no
// history exists or the lookup fails.
func defaultUserContext() assessment.UserContext {
	return assessment.UserContext{
		RecentSubjects:  []string{},
		CurrentSemester: defaultSemester,
		DefaultDueDays:  defaultDueDays,
	}
}

// userContext returns the hints used to disambiguate extraction for this user.
// It never fails: repository errors degrade to the safe default so the
// pipeline can always proceed.
func (uc *implUseCase) userContext(ctx context.Context, userID string) assessment.UserContext {
	if cached, ok := uc.contextCache.Get(userID); ok {
		return cached
	}

	result := defaultUserContext()

	if uc.repo != nil {
		subjects, err := uc.repo.RecentSubjects(ctx, userID, recentSubjectsLimit)
		if err != nil {
			uc.l.Warnf(ctx, "userContext: recent subjects lookup failed for user=%s, using defaults: %v", userID, err)
			return result
		}
		if len(subjects) > 0 {
			result.RecentSubjects = subjects
		}
	}

	uc.contextCache.Add(userID, result)
	return result
}
