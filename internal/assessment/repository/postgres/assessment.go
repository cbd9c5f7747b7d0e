package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"assessment-planner/internal/model"
)

// CreateAssessment inserts an assessment record.
func (r *implRepository) CreateAssessment(ctx context.Context, a model.Assessment) (model.Assessment, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO assessments (id, user_id, title, subject, description, due_date, progress, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UserID, a.Title, a.Subject, a.Description, a.DueDate, a.Progress, a.CreatedAt,
	)
	if err != nil {
		return model.Assessment{}, fmt.Errorf("insert assessment: %w", err)
	}

	return a, nil
}

// CreateTasks inserts the tasks of one assessment in a single batch,
// preserving their extraction order through the ordinal column.
func (r *implRepository) CreateTasks(ctx context.Context, tasks []model.AssessmentTask) ([]model.AssessmentTask, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	now := time.Now().UTC()

	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = uuid.NewString()
		}
		tasks[i].Position = i
		tasks[i].CreatedAt = now

		batch.Queue(`
			INSERT INTO assessment_tasks (id, assessment_id, user_id, title, description, completed, ordinal, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			tasks[i].ID, tasks[i].AssessmentID, tasks[i].UserID, tasks[i].Title,
			tasks[i].Description, tasks[i].Completed, tasks[i].Position, tasks[i].CreatedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range tasks {
		if _, err := results.Exec(); err != nil {
			return nil, fmt.Errorf("insert task: %w", err)
		}
	}

	return tasks, nil
}

// RecentSubjects returns the user's distinct subjects ordered by most recent use.
func (r *implRepository) RecentSubjects(ctx context.Context, userID string, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT subject
		FROM assessments
		WHERE user_id = $1 AND subject <> ''
		GROUP BY subject
		ORDER BY MAX(created_at) DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent subjects: %w", err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}

	return subjects, rows.Err()
}
