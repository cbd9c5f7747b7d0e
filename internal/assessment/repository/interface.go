package repository

import (
	"context"

	"assessment-planner/internal/model"
)

// Repository persists assessments and their tasks.
type Repository interface {
	// CreateAssessment inserts an assessment record and returns it with
	// storage-assigned fields filled in.
	CreateAssessment(ctx context.Context, a model.Assessment) (model.Assessment, error)

	// CreateTasks inserts the tasks of one assessment in order.
	CreateTasks(ctx context.Context, tasks []model.AssessmentTask) ([]model.AssessmentTask, error)

	// RecentSubjects returns the user's distinct subjects, most recent first.
	RecentSubjects(ctx context.Context, userID string, limit int) ([]string, error)
}
