package repository

import (
	"context"

	"interviewapi/internal/model"
)

// ReportRepository defines data access for finalized interview reports.
// No business logic here — strictly persistence operations.
type ReportRepository interface {
	// Create inserts a new report row and returns the stored record.
	Create(ctx context.Context, r *model.Report) (*model.Report, error)

	// FindByInterviewID returns the report for a completed interview.
	FindByInterviewID(ctx context.Context, interviewID string) (*model.Report, error)

	// List returns a paginated list of reports, newest first.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Report], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
