package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"interviewapi/internal/model"
)

var questionCols = []string{"id", "role", "phase", "competency", "difficulty", "text", "created_at"}

func TestQuestionPostgres_FindForPhase(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewQuestionPostgres(db)
	ctx := context.Background()

	t.Run("returns matching questions", func(t *testing.T) {
		rows := sqlmock.NewRows(questionCols).
			AddRow("q1", "backend", "technical", "technical_depth", 2, "Explain indexes.", time.Now()).
			AddRow("q2", "any", "technical", "system_design", 3, "Design a cache.", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM questions WHERE phase =").
			WithArgs("backend", "technical").
			WillReturnRows(rows)

		items, err := repo.FindForPhase(ctx, "backend", model.PhaseTechnical)

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, "q1", items[0].ID)
		assert.Equal(t, model.PhaseTechnical, items[0].Phase)
		assert.Equal(t, 3, items[1].Difficulty)
	})

	t.Run("empty bank", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM questions WHERE phase =").
			WithArgs("backend", "wrap_up").
			WillReturnRows(sqlmock.NewRows(questionCols))

		items, err := repo.FindForPhase(ctx, "backend", model.PhaseWrapUp)

		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewQuestionPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(questionCols).
			AddRow("q1", "backend", "behavioral", "communication", 1, "Describe a conflict.", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM questions WHERE id = ?").
			WithArgs("q1").
			WillReturnRows(rows)

		q, err := repo.FindByID(ctx, "q1")

		assert.NoError(t, err)
		assert.NotNil(t, q)
		assert.Equal(t, "communication", q.Competency)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM questions WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		q, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, q)
	})
}
