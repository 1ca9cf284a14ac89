package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"interviewapi/internal/ai"
	"interviewapi/internal/model"
)

// Engine scores a single candidate answer against a rubric using the LLM.
// LLM output is loosely typed in practice, so parsing is defensive: fenced code
// blocks are stripped and values are coerced from whatever JSON type arrives.
type Engine struct {
	generator ai.Generator
}

// NewEngine creates an evaluation engine on top of the given generator.
func NewEngine(generator ai.Generator) *Engine {
	return &Engine{generator: generator}
}

const rubricPrompt = `You are scoring one answer from a %s %s candidate in a job interview.

Question (competency: %s):
%s

Candidate answer:
%s

Score the answer against this rubric:
- 0-2: no substance or off-topic
- 3-4: superficial, missing key points
- 5-6: adequate, covers the basics
- 7-8: strong, concrete and well-structured
- 9-10: exceptional depth with tradeoffs and examples

Respond with ONLY a JSON object, no markdown:
{
  "score": <number 0-10>,
  "competency_scores": {"<competency>": <number 0-10>},
  "strengths": ["<short phrase>"],
  "weaknesses": ["<short phrase>"],
  "follow_up": <true if the topic deserves another probing question>
}`

// Evaluate scores the answer to the question. An empty answer scores zero
// without calling the LLM.
func (e *Engine) Evaluate(ctx context.Context, s *model.Session, q *model.Question, answer string) (*model.Evaluation, error) {
	ev := &model.Evaluation{
		QuestionID: q.ID,
		Phase:      q.Phase,
		Competency: q.Competency,
	}

	if strings.TrimSpace(answer) == "" {
		ev.Score = 0
		ev.CompetencyScores = map[string]float64{q.Competency: 0}
		ev.Weaknesses = []string{"no answer given"}
		return ev, nil
	}

	prompt := fmt.Sprintf(rubricPrompt, s.Seniority, s.Role, q.Competency, q.Text, answer)

	raw, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("evaluate answer: %w", err)
	}

	parsed, err := parseResponse(raw, q.Competency)
	if err != nil {
		return nil, err
	}

	ev.Score = parsed.Score
	ev.CompetencyScores = parsed.CompetencyScores
	ev.Strengths = parsed.Strengths
	ev.Weaknesses = parsed.Weaknesses
	ev.FollowUp = parsed.FollowUp
	return ev, nil
}

type parsedEvaluation struct {
	Score            float64
	CompetencyScores map[string]float64
	Strengths        []string
	Weaknesses       []string
	FollowUp         bool
}

func parseResponse(raw, competency string) (*parsedEvaluation, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse evaluation response: %w", err)
	}

	score := clampScore(coerceFloat(data["score"]))

	scores := coerceScoreMap(data["competency_scores"])
	if scores == nil {
		scores = make(map[string]float64)
	}
	if _, ok := scores[competency]; !ok {
		scores[competency] = score
	}

	return &parsedEvaluation{
		Score:            score,
		CompetencyScores: scores,
		Strengths:        coerceStringSlice(data["strengths"]),
		Weaknesses:       coerceStringSlice(data["weaknesses"]),
		FollowUp:         coerceBool(data["follow_up"]),
	}, nil
}

func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	default:
		return false
	}
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func coerceScoreMap(v any) map[string]float64 {
	raw, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for k, val := range raw {
		f := coerceFloat(val)
		if math.IsNaN(f) {
			continue
		}
		out[k] = clampScore(f)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
