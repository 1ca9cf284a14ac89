package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"interviewapi/internal/model"
	"interviewapi/internal/repository"
)

// ReportPostgres is a PostgreSQL implementation of repository.ReportRepository.
// Score breakdowns and strength/weakness lists are stored as JSONB columns.
type ReportPostgres struct {
	db *sql.DB
}

// NewReportPostgres creates a new ReportPostgres repository.
func NewReportPostgres(db *sql.DB) *ReportPostgres {
	return &ReportPostgres{db: db}
}

var _ repository.ReportRepository = (*ReportPostgres)(nil)

const reportColumns = `id, interview_id, candidate_name, role, seniority, overall_score,
	recommendation, competencies, phases, strengths, weaknesses, question_count,
	transcript_path, created_at`

// Create inserts a new report row and returns the stored record.
func (r *ReportPostgres) Create(ctx context.Context, rep *model.Report) (*model.Report, error) {
	const q = `
		INSERT INTO reports (id, interview_id, candidate_name, role, seniority, overall_score,
			recommendation, competencies, phases, strengths, weaknesses, question_count,
			transcript_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + reportColumns

	competencies, err := json.Marshal(rep.Competencies)
	if err != nil {
		return nil, fmt.Errorf("marshal competencies: %w", err)
	}
	phases, err := json.Marshal(rep.Phases)
	if err != nil {
		return nil, fmt.Errorf("marshal phases: %w", err)
	}
	strengths, err := json.Marshal(rep.Strengths)
	if err != nil {
		return nil, fmt.Errorf("marshal strengths: %w", err)
	}
	weaknesses, err := json.Marshal(rep.Weaknesses)
	if err != nil {
		return nil, fmt.Errorf("marshal weaknesses: %w", err)
	}

	row := r.db.QueryRowContext(ctx, q,
		rep.ID,
		rep.InterviewID,
		rep.CandidateName,
		rep.Role,
		rep.Seniority,
		rep.OverallScore,
		string(rep.Recommendation),
		competencies,
		phases,
		strengths,
		weaknesses,
		rep.QuestionCount,
		rep.TranscriptPath,
		rep.CreatedAt,
	)
	return scanReport(row)
}

// FindByInterviewID fetches the report for a completed interview.
func (r *ReportPostgres) FindByInterviewID(ctx context.Context, interviewID string) (*model.Report, error) {
	const q = `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE interview_id = $1
	`
	row := r.db.QueryRowContext(ctx, q, interviewID)
	return scanReport(row)
}

// List returns reports using LIMIT/OFFSET pagination and a total count.
func (r *ReportPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Report], error) {
	const qCount = `SELECT COUNT(*) FROM reports`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + reportColumns + `
		FROM reports
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Report]{Items: items, Total: total}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*model.Report, error) {
	var (
		rep            model.Report
		recommendation string
		competencies   []byte
		phases         []byte
		strengths      []byte
		weaknesses     []byte
	)
	if err := row.Scan(
		&rep.ID,
		&rep.InterviewID,
		&rep.CandidateName,
		&rep.Role,
		&rep.Seniority,
		&rep.OverallScore,
		&recommendation,
		&competencies,
		&phases,
		&strengths,
		&weaknesses,
		&rep.QuestionCount,
		&rep.TranscriptPath,
		&rep.CreatedAt,
	); err != nil {
		return nil, err
	}

	rep.Recommendation = model.Recommendation(recommendation)
	if err := json.Unmarshal(competencies, &rep.Competencies); err != nil {
		return nil, fmt.Errorf("unmarshal competencies: %w", err)
	}
	if err := json.Unmarshal(phases, &rep.Phases); err != nil {
		return nil, fmt.Errorf("unmarshal phases: %w", err)
	}
	if err := json.Unmarshal(strengths, &rep.Strengths); err != nil {
		return nil, fmt.Errorf("unmarshal strengths: %w", err)
	}
	if err := json.Unmarshal(weaknesses, &rep.Weaknesses); err != nil {
		return nil, fmt.Errorf("unmarshal weaknesses: %w", err)
	}
	return &rep, nil
}
