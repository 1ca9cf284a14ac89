package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"interviewapi/internal/ai"
	"interviewapi/internal/model"
	"interviewapi/internal/repository"
	"interviewapi/internal/scoring"
	"interviewapi/internal/session"
	"interviewapi/internal/storage"
	"interviewapi/internal/strategy"
)

var (
	ErrIDRequired         = errors.New("interview id is required")
	ErrCandidateRequired  = errors.New("candidate name is required")
	ErrRoleRequired       = errors.New("role is required")
	ErrInterviewNotFound  = errors.New("interview not found")
	ErrInterviewCompleted = errors.New("interview already completed")
	ErrReportNotFound     = errors.New("report not found")
	ErrBankEmpty          = errors.New("question bank has no questions for this role")
)

const (
	startingDifficulty = 2
	defaultSeniority   = "mid-level"
)

// StartRequest holds the inputs for opening a new interview.
type StartRequest struct {
	CandidateName string `json:"candidate_name"`
	Role          string `json:"role"`
	Seniority     string `json:"seniority"`
}

// TurnResult is returned by Start and SubmitAnswer: the updated session and the
// next question to put to the candidate. When Done is set the interview has
// been finalized and Report carries the persisted report instead of a question.
type TurnResult struct {
	Session  *model.Session `json:"session"`
	Question string         `json:"question,omitempty"`
	Done     bool           `json:"done"`
	Report   *model.Report  `json:"report,omitempty"`
}

// ReportListResult is the service-level DTO for paginated reports.
type ReportListResult struct {
	Items []model.Report `json:"data"`
	Total int            `json:"total"`
}

// QuestionStrategy is the slice of the strategy engine the orchestrator needs.
type QuestionStrategy interface {
	NextQuestion(ctx context.Context, s *model.Session) (*model.Question, error)
	Advance(s *model.Session) bool
	SkipPhase(s *model.Session) bool
}

// AnswerEvaluator scores one candidate answer.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, s *model.Session, q *model.Question, answer string) (*model.Evaluation, error)
}

// MessageBuilder turns session history into an LLM message list.
type MessageBuilder interface {
	BuildMessages(s *model.Session) []ai.Message
}

// InterviewService defines the use cases of the interview engine. Each call is
// one synchronous request/response step of the conversational flow.
type InterviewService interface {
	// Start opens a session, picks the first question, and persists the session
	// with its TTL.
	Start(ctx context.Context, req StartRequest) (*TurnResult, error)

	// SubmitAnswer records the candidate's answer, evaluates it, advances the
	// interview, and returns the next question — or the final report when the
	// interview is over.
	SubmitAnswer(ctx context.Context, id, answer string) (*TurnResult, error)

	// Get returns the live session state.
	Get(ctx context.Context, id string) (*model.Session, error)

	// Complete finalizes the interview early: builds and persists the report,
	// archives the transcript, and deletes the session.
	Complete(ctx context.Context, id string) (*model.Report, error)

	// Report returns the persisted report for a completed interview.
	Report(ctx context.Context, interviewID string) (*model.Report, error)

	// ListReports returns persisted reports using limit/offset and a total count.
	ListReports(ctx context.Context, limit, offset int) (*ReportListResult, error)
}

type interviewService struct {
	sessions  session.Store
	strategy  QuestionStrategy
	evaluator AnswerEvaluator
	conv      MessageBuilder
	llm       ai.Generator
	reports   repository.ReportRepository
	store     storage.Storage
	ttl       time.Duration
}

// NewInterviewService constructs the orchestrator.
func NewInterviewService(
	sessions session.Store,
	qs QuestionStrategy,
	evaluator AnswerEvaluator,
	conv MessageBuilder,
	llm ai.Generator,
	reports repository.ReportRepository,
	store storage.Storage,
	ttl time.Duration,
) InterviewService {
	return &interviewService{
		sessions:  sessions,
		strategy:  qs,
		evaluator: evaluator,
		conv:      conv,
		llm:       llm,
		reports:   reports,
		store:     store,
		ttl:       ttl,
	}
}

func (s *interviewService) Start(ctx context.Context, req StartRequest) (*TurnResult, error) {
	if req.CandidateName == "" {
		return nil, ErrCandidateRequired
	}
	if req.Role == "" {
		return nil, ErrRoleRequired
	}
	seniority := req.Seniority
	if seniority == "" {
		seniority = defaultSeniority
	}

	now := time.Now().UTC()
	sess := &model.Session{
		ID:            uuid.New().String(),
		CandidateName: req.CandidateName,
		Role:          req.Role,
		Seniority:     seniority,
		Status:        model.StatusActive,
		Phase:         model.PhaseIntro,
		Difficulty:    startingDifficulty,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	q, done, err := s.nextQuestionSkipping(ctx, sess)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, ErrBankEmpty
	}

	phrased := s.phraseQuestion(ctx, sess, q)
	s.recordQuestion(sess, q, phrased)

	if err := s.sessions.Save(ctx, sess, s.ttl); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &TurnResult{Session: sess, Question: phrased}, nil
}

func (s *interviewService) SubmitAnswer(ctx context.Context, id, answer string) (*TurnResult, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	sess, err := s.sessions.Find(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	if sess.Status == model.StatusCompleted {
		return nil, ErrInterviewCompleted
	}
	current := sess.CurrentQuestion
	if current == nil {
		return nil, fmt.Errorf("session %s has no pending question", id)
	}

	now := time.Now().UTC()
	sess.Turns = append(sess.Turns, model.Turn{
		Role:       model.TurnCandidate,
		Text:       answer,
		Phase:      sess.Phase,
		QuestionID: current.ID,
		CreatedAt:  now,
	})
	sess.UpdatedAt = now

	ev, err := s.evaluator.Evaluate(ctx, sess, current, answer)
	if err != nil {
		// Keep the recorded answer even when evaluation fails, so a retry
		// does not lose the turn.
		_ = s.sessions.Save(ctx, sess, s.ttl)
		return nil, err
	}

	sess.Evaluations = append(sess.Evaluations, *ev)
	sess.PhaseAnswered++
	sess.Difficulty = strategy.AdjustDifficulty(sess.Difficulty, ev.Score)
	sess.CurrentQuestion = nil

	done := s.strategy.Advance(sess)
	var next *model.Question
	if !done {
		next, done, err = s.nextQuestionSkipping(ctx, sess)
		if err != nil {
			return nil, err
		}
	}

	if done {
		rep, err := s.finalize(ctx, sess)
		if err != nil {
			return nil, err
		}
		return &TurnResult{Session: sess, Done: true, Report: rep}, nil
	}

	phrased := s.phraseQuestion(ctx, sess, next)
	s.recordQuestion(sess, next, phrased)

	if err := s.sessions.Save(ctx, sess, s.ttl); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &TurnResult{Session: sess, Question: phrased}, nil
}

func (s *interviewService) Get(ctx context.Context, id string) (*model.Session, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	sess, err := s.sessions.Find(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrInterviewNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *interviewService) Complete(ctx context.Context, id string) (*model.Report, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	sess, err := s.sessions.Find(ctx, id)
	if err != nil {
		if !errors.Is(err, session.ErrSessionNotFound) {
			return nil, err
		}
		// The session may already be finalized; completing twice returns the
		// stored report.
		rep, repErr := s.Report(ctx, id)
		if repErr != nil {
			return nil, ErrInterviewNotFound
		}
		return rep, nil
	}
	return s.finalize(ctx, sess)
}

func (s *interviewService) Report(ctx context.Context, interviewID string) (*model.Report, error) {
	if interviewID == "" {
		return nil, ErrIDRequired
	}
	rep, err := s.reports.FindByInterviewID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return rep, nil
}

// ListReports returns paginated reports without exposing repository types.
func (s *interviewService) ListReports(ctx context.Context, limit, offset int) (*ReportListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.reports.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ReportListResult{Items: res.Items, Total: res.Total}, nil
}

// nextQuestionSkipping picks the next question, skipping phases the bank cannot
// serve. The bool result is true when no phase has questions left.
func (s *interviewService) nextQuestionSkipping(ctx context.Context, sess *model.Session) (*model.Question, bool, error) {
	for {
		q, err := s.strategy.NextQuestion(ctx, sess)
		if err == nil {
			return q, false, nil
		}
		if !errors.Is(err, strategy.ErrNoQuestions) {
			return nil, false, err
		}
		if s.strategy.SkipPhase(sess) {
			return nil, true, nil
		}
	}
}

// phraseQuestion asks the LLM to put the selected question to the candidate
// conversationally. The bank text is the fallback when the LLM is unavailable.
func (s *interviewService) phraseQuestion(ctx context.Context, sess *model.Session, q *model.Question) string {
	msgs := s.conv.BuildMessages(sess)
	msgs = append(msgs, ai.Message{
		Role: ai.RoleUser,
		Text: "Put this question to the candidate now: " + q.Text,
	})

	out, err := s.llm.Chat(ctx, msgs)
	if err != nil || out == "" {
		return q.Text
	}
	return out
}

func (s *interviewService) recordQuestion(sess *model.Session, q *model.Question, phrased string) {
	now := time.Now().UTC()
	sess.Turns = append(sess.Turns, model.Turn{
		Role:       model.TurnInterviewer,
		Text:       phrased,
		Phase:      sess.Phase,
		QuestionID: q.ID,
		CreatedAt:  now,
	})
	sess.AskedQuestionIDs = append(sess.AskedQuestionIDs, q.ID)
	if !sess.HasAskedCompetency(q.Competency) {
		sess.AskedCompetencies = append(sess.AskedCompetencies, q.Competency)
	}
	sess.CurrentQuestion = q
	sess.UpdatedAt = now
}

// finalize builds and persists the report, archives the transcript, and drops
// the live session. The transcript is uploaded first; if the report insert
// fails the object is rolled back, mirroring the archive-then-record contract.
func (s *interviewService) finalize(ctx context.Context, sess *model.Session) (*model.Report, error) {
	sess.Status = model.StatusCompleted

	rep := scoring.BuildReport(sess)
	rep.ID = uuid.New().String()
	rep.CreatedAt = time.Now().UTC()
	rep.TranscriptPath = storage.TranscriptKey(sess.ID)

	transcript, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}

	_, err = s.store.Put(ctx, rep.TranscriptPath, bytes.NewReader(transcript), storage.PutObjectOptions{
		Size:        int64(len(transcript)),
		ContentType: "application/json",
		Metadata: map[string]string{
			"candidate-name": sess.CandidateName,
			"role":           sess.Role,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("archive transcript: %w", err)
	}

	stored, err := s.reports.Create(ctx, rep)
	if err != nil {
		if delErr := s.store.Delete(ctx, rep.TranscriptPath); delErr != nil {
			return nil, fmt.Errorf("report save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("report save failed: %w", err)
	}

	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return nil, fmt.Errorf("delete session: %w", err)
	}

	return stored, nil
}
