package repository

import (
	"context"

	"interviewapi/internal/model"
)

// QuestionRepository defines read access to the question bank using SQL queries
// only. Selection logic (difficulty, coverage) lives in the strategy engine,
// not here.
type QuestionRepository interface {
	// FindForPhase returns all bank questions matching the role and phase.
	// Questions with role "any" match every role.
	FindForPhase(ctx context.Context, role string, phase model.Phase) ([]model.Question, error)

	// FindByID returns a single question by its ID.
	FindByID(ctx context.Context, id string) (*model.Question, error)
}
