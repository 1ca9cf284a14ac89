package model

import "time"

// Phase is the interview stage. Phases advance in a fixed order; each phase has a
// configurable question quota.
type Phase string

const (
	PhaseIntro      Phase = "intro"
	PhaseTechnical  Phase = "technical"
	PhaseBehavioral Phase = "behavioral"
	PhaseCoding     Phase = "coding"
	PhaseWrapUp     Phase = "wrap_up"
)

// SessionStatus tracks whether a session is still accepting answers.
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
)

// TurnRole identifies the author of a turn in the interview history.
type TurnRole string

const (
	TurnInterviewer TurnRole = "interviewer"
	TurnCandidate   TurnRole = "candidate"
	// TurnSummary is a synthetic turn that replaces trimmed history when the
	// conversation exceeds the token budget.
	TurnSummary TurnRole = "summary"
)

// Turn is one utterance (interviewer question or candidate answer) in an
// interview's history.
type Turn struct {
	Role       TurnRole  `json:"role"`
	Text       string    `json:"text"`
	Phase      Phase     `json:"phase"`
	QuestionID string    `json:"question_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Session is the live interview state kept in the TTL session store.
// This is a pure domain model with no store-specific dependencies; it is
// serialized to JSON as the store payload.
type Session struct {
	ID            string        `json:"id"`
	CandidateName string        `json:"candidate_name"`
	Role          string        `json:"role"`
	Seniority     string        `json:"seniority"`
	Status        SessionStatus `json:"status"`
	Phase         Phase         `json:"phase"`
	// Difficulty is the current question difficulty, 1 (easiest) to 5 (hardest).
	Difficulty int `json:"difficulty"`
	// PhaseAnswered counts answers recorded in the current phase.
	PhaseAnswered     int          `json:"phase_answered"`
	AskedQuestionIDs  []string     `json:"asked_question_ids"`
	AskedCompetencies []string     `json:"asked_competencies"`
	// CurrentQuestion is the bank question the candidate is currently answering.
	CurrentQuestion *Question `json:"current_question,omitempty"`
	Turns             []Turn       `json:"turns"`
	Evaluations       []Evaluation `json:"evaluations"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// LastQuestion returns the most recent interviewer turn, or nil if none exists.
func (s *Session) LastQuestion() *Turn {
	for i := len(s.Turns) - 1; i >= 0; i-- {
		if s.Turns[i].Role == TurnInterviewer {
			return &s.Turns[i]
		}
	}
	return nil
}

// HasAskedQuestion reports whether the question ID was already used in this session.
func (s *Session) HasAskedQuestion(id string) bool {
	for _, q := range s.AskedQuestionIDs {
		if q == id {
			return true
		}
	}
	return false
}

// HasAskedCompetency reports whether a question for the competency was already asked.
func (s *Session) HasAskedCompetency(c string) bool {
	for _, asked := range s.AskedCompetencies {
		if asked == c {
			return true
		}
	}
	return false
}
