package conversation

import (
	"fmt"
	"unicode/utf8"

	"interviewapi/internal/ai"
	"interviewapi/internal/model"
)

const (
	defaultTokenBudget = 8000
	// minRecentTurns is the number of most recent turns that always survive
	// trimming, even when they alone exceed the budget.
	minRecentTurns = 4
)

// Manager builds LLM-ready message lists from a session's turn history under a
// token budget. Real summarization is stubbed: trimmed history is replaced by a
// single stub turn noting how many turns were elided.
type Manager struct {
	tokenBudget int
}

// NewManager creates a Manager. A non-positive budget falls back to the default.
func NewManager(tokenBudget int) *Manager {
	if tokenBudget <= 0 {
		tokenBudget = defaultTokenBudget
	}
	return &Manager{tokenBudget: tokenBudget}
}

// BuildMessages converts the session history into an LLM message list:
// a system message first, then one message per turn, oldest first. When the
// estimated token total exceeds the budget, the oldest turns are dropped and
// replaced with a summary stub; the system message and the most recent turns
// are always kept.
func (m *Manager) BuildMessages(s *model.Session) []ai.Message {
	system := systemPrompt(s)
	budget := m.tokenBudget - EstimateTokens(system)

	turns := s.Turns
	total := 0
	for _, t := range turns {
		total += EstimateTokens(t.Text)
	}

	dropped := 0
	if total > budget {
		maxDrop := len(turns) - minRecentTurns
		for dropped < maxDrop && total > budget {
			total -= EstimateTokens(turns[dropped].Text)
			dropped++
		}
	}

	msgs := make([]ai.Message, 0, len(turns)-dropped+2)
	msgs = append(msgs, ai.Message{Role: ai.RoleSystem, Text: system})

	if dropped > 0 {
		msgs = append(msgs, ai.Message{
			Role: ai.RoleUser,
			Text: fmt.Sprintf("[Earlier conversation summarized: %d turns omitted]", dropped),
		})
	}

	for _, t := range turns[dropped:] {
		msgs = append(msgs, ai.Message{Role: roleFor(t.Role), Text: t.Text})
	}

	return msgs
}

// EstimateTokens is a cheap token-count heuristic: one token per four runes,
// rounded up.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}

func roleFor(r model.TurnRole) string {
	if r == model.TurnInterviewer {
		return ai.RoleModel
	}
	// Candidate answers and summary stubs both read as user input.
	return ai.RoleUser
}

func systemPrompt(s *model.Session) string {
	return fmt.Sprintf(
		"You are a professional interviewer conducting a %s %s interview with %s. "+
			"The interview is currently in the %s phase. "+
			"Ask exactly the question you are given, phrased naturally and conversationally. "+
			"Acknowledge the candidate's previous answer in one short sentence before asking. "+
			"Do not evaluate answers out loud and do not reveal scores.",
		s.Seniority, s.Role, s.CandidateName, s.Phase,
	)
}
