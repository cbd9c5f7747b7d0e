package assessment

import (
	"context"

	"assessment-planner/internal/model"
)

// UseCase defines the business logic interface for the assessment domain.
type UseCase interface {
	// ImportFromText extracts structured assessments from natural-language text.
	// With AllowFallback=true the call always yields at least one assessment;
	// with AllowFallback=false an unusable extraction surfaces as an error.
	// No persistence happens here.
	ImportFromText(ctx context.Context, sc model.Scope, input ImportInput) (ImportOutput, error)

	// SaveImported persists an import batch: one assessment record plus its
	// task records per entry. Individual failures are skipped, not fatal.
	SaveImported(ctx context.Context, sc model.Scope, batch ImportOutput) (SaveOutput, error)
}
