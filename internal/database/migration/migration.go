package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_questions",
		SQL: `CREATE TABLE IF NOT EXISTS questions (
  id         TEXT        PRIMARY KEY,
  role       TEXT        NOT NULL,
  phase      TEXT        NOT NULL,
  competency TEXT        NOT NULL,
  difficulty INT         NOT NULL CHECK (difficulty BETWEEN 1 AND 5),
  text       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_questions_phase_role",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_questions_phase_role ON questions (phase, role);`,
	},
	{
		Name: "create_table_reports",
		SQL: `CREATE TABLE IF NOT EXISTS reports (
  id              UUID             PRIMARY KEY,
  interview_id    TEXT             NOT NULL UNIQUE,
  candidate_name  TEXT             NOT NULL,
  role            TEXT             NOT NULL,
  seniority       TEXT             NOT NULL,
  overall_score   DOUBLE PRECISION NOT NULL,
  recommendation  TEXT             NOT NULL,
  competencies    JSONB            NOT NULL,
  phases          JSONB            NOT NULL,
  strengths       JSONB            NOT NULL,
  weaknesses      JSONB            NOT NULL,
  question_count  INT              NOT NULL,
  transcript_path TEXT             NOT NULL,
  created_at      TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_reports_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports (created_at);`,
	},
	{
		Name: "seed_question_bank",
		SQL: `INSERT INTO questions (id, role, phase, competency, difficulty, text) VALUES
  ('intro-background',    'any',      'intro',      'communication',    1, 'Tell me about your background and what you have been working on recently.'),
  ('intro-motivation',    'any',      'intro',      'communication',    1, 'What draws you to this role?'),
  ('tech-indexing',       'backend',  'technical',  'technical_depth',  2, 'How does a database index speed up queries, and when can it hurt?'),
  ('tech-caching',        'backend',  'technical',  'system_design',    3, 'How would you add caching to a read-heavy API without serving stale data?'),
  ('tech-concurrency',    'backend',  'technical',  'technical_depth',  4, 'Describe a concurrency bug you have debugged and how you found it.'),
  ('tech-scaling',        'any',      'technical',  'system_design',    4, 'Walk me through scaling a service from one instance to one hundred.'),
  ('tech-api-design',     'any',      'technical',  'technical_depth',  2, 'What makes an API easy to evolve without breaking clients?'),
  ('behave-conflict',     'any',      'behavioral', 'collaboration',    2, 'Tell me about a disagreement with a teammate and how it was resolved.'),
  ('behave-failure',      'any',      'behavioral', 'ownership',        3, 'Describe a project that failed. What was your part in it?'),
  ('behave-feedback',     'any',      'behavioral', 'collaboration',    2, 'Tell me about a time you received hard feedback.'),
  ('coding-dedupe',       'any',      'coding',     'problem_solving',  2, 'Given a stream of events with duplicate IDs, how would you deduplicate it efficiently?'),
  ('coding-ratelimit',    'backend',  'coding',     'problem_solving',  3, 'Sketch an algorithm for a sliding-window rate limiter.'),
  ('coding-parser',       'any',      'coding',     'problem_solving',  4, 'How would you parse and evaluate simple arithmetic expressions?'),
  ('wrapup-questions',    'any',      'wrap_up',    'communication',    1, 'What questions do you have for us?')
ON CONFLICT (id) DO NOTHING;`,
	},
}

// EnsureMigrated checks if the 'questions' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.questions') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
