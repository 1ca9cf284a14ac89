package postgres

import (
	"context"
	"database/sql"

	"interviewapi/internal/model"
	"interviewapi/internal/repository"
)

// QuestionPostgres is a PostgreSQL implementation of repository.QuestionRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type QuestionPostgres struct {
	db *sql.DB
}

// NewQuestionPostgres creates a new QuestionPostgres repository.
func NewQuestionPostgres(db *sql.DB) *QuestionPostgres {
	return &QuestionPostgres{db: db}
}

var _ repository.QuestionRepository = (*QuestionPostgres)(nil)

// FindForPhase fetches all questions for the role and phase. Bank entries with
// role 'any' apply to every role.
func (r *QuestionPostgres) FindForPhase(ctx context.Context, role string, phase model.Phase) ([]model.Question, error) {
	const q = `
		SELECT id, role, phase, competency, difficulty, text, created_at
		FROM questions
		WHERE phase = $2 AND (role = $1 OR role = 'any')
		ORDER BY difficulty ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, role, string(phase))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Question, 0)
	for rows.Next() {
		var item model.Question
		if err := rows.Scan(
			&item.ID,
			&item.Role,
			&item.Phase,
			&item.Competency,
			&item.Difficulty,
			&item.Text,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single question by its ID.
func (r *QuestionPostgres) FindByID(ctx context.Context, id string) (*model.Question, error) {
	const q = `
		SELECT id, role, phase, competency, difficulty, text, created_at
		FROM questions
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var item model.Question
	if err := row.Scan(
		&item.ID,
		&item.Role,
		&item.Phase,
		&item.Competency,
		&item.Difficulty,
		&item.Text,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
