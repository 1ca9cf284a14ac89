package strategy

import (
	"context"
	"errors"
	"fmt"

	"interviewapi/internal/config"
	"interviewapi/internal/model"
	"interviewapi/internal/repository"
)

// ErrNoQuestions is returned when the bank has no unasked question left for the
// session's role and phase.
var ErrNoQuestions = errors.New("no questions available for phase")

const (
	minDifficulty = 1
	maxDifficulty = 5
	// Difficulty moves up after a strong answer and down after a weak one.
	raiseThreshold = 8.0
	lowerThreshold = 4.0
)

// phaseOrder is the fixed interview progression.
var phaseOrder = []model.Phase{
	model.PhaseIntro,
	model.PhaseTechnical,
	model.PhaseBehavioral,
	model.PhaseCoding,
	model.PhaseWrapUp,
}

// Engine selects the next question for a session based on role, phase,
// adaptive difficulty, and competency coverage. It never repeats a question
// within a session.
type Engine struct {
	questions repository.QuestionRepository
	quotas    map[model.Phase]int
}

// NewEngine creates a strategy engine with per-phase question quotas from config.
func NewEngine(questions repository.QuestionRepository, cfg config.InterviewConfig) *Engine {
	return &Engine{
		questions: questions,
		quotas: map[model.Phase]int{
			model.PhaseIntro:      cfg.IntroQuestions,
			model.PhaseTechnical:  cfg.TechnicalQuestions,
			model.PhaseBehavioral: cfg.BehavioralQuestions,
			model.PhaseCoding:     cfg.CodingQuestions,
			model.PhaseWrapUp:     cfg.WrapUpQuestions,
		},
	}
}

// Quota returns the question quota for a phase.
func (e *Engine) Quota(p model.Phase) int {
	return e.quotas[p]
}

// Advance moves the session to the next phase when the current phase's quota is
// filled. It returns true when the interview is finished (the wrap_up quota is
// filled and no phase remains).
func (e *Engine) Advance(s *model.Session) bool {
	for s.PhaseAnswered >= e.quotas[s.Phase] {
		next, ok := nextPhase(s.Phase)
		if !ok {
			return true
		}
		s.Phase = next
		s.PhaseAnswered = 0
	}
	return false
}

// SkipPhase forces the session into the next phase regardless of quota, used
// when the bank has no questions left for the current phase. Returns true when
// no phase remains.
func (e *Engine) SkipPhase(s *model.Session) bool {
	next, ok := nextPhase(s.Phase)
	if !ok {
		return true
	}
	s.Phase = next
	s.PhaseAnswered = 0
	return false
}

// AdjustDifficulty returns the difficulty to use after an answer with the given
// score, clamped to [1, 5].
func AdjustDifficulty(current int, score float64) int {
	switch {
	case score >= raiseThreshold:
		current++
	case score <= lowerThreshold:
		current--
	}
	if current < minDifficulty {
		return minDifficulty
	}
	if current > maxDifficulty {
		return maxDifficulty
	}
	return current
}

// NextQuestion picks the next question for the session's current phase:
// unasked questions only, preferring competencies not yet covered, then the
// question whose difficulty is nearest the session's current difficulty.
func (e *Engine) NextQuestion(ctx context.Context, s *model.Session) (*model.Question, error) {
	bank, err := e.questions.FindForPhase(ctx, s.Role, s.Phase)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}

	candidates := make([]model.Question, 0, len(bank))
	for _, q := range bank {
		if !s.HasAskedQuestion(q.ID) {
			candidates = append(candidates, q)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoQuestions
	}

	uncovered := make([]model.Question, 0, len(candidates))
	for _, q := range candidates {
		if !s.HasAskedCompetency(q.Competency) {
			uncovered = append(uncovered, q)
		}
	}
	pool := candidates
	if len(uncovered) > 0 {
		pool = uncovered
	}

	best := pool[0]
	bestDist := difficultyDistance(best.Difficulty, s.Difficulty)
	for _, q := range pool[1:] {
		if d := difficultyDistance(q.Difficulty, s.Difficulty); d < bestDist {
			best = q
			bestDist = d
		}
	}
	return &best, nil
}

func difficultyDistance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func nextPhase(p model.Phase) (model.Phase, bool) {
	for i, phase := range phaseOrder {
		if phase == p && i+1 < len(phaseOrder) {
			return phaseOrder[i+1], true
		}
	}
	return "", false
}
