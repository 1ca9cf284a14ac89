package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	aiMocks "interviewapi/internal/ai/mocks"
	"interviewapi/internal/model"
)

func testSession() *model.Session {
	return &model.Session{
		ID:        "s1",
		Role:      "backend engineer",
		Seniority: "senior",
	}
}

func testQuestion() *model.Question {
	return &model.Question{
		ID:         "q1",
		Phase:      model.PhaseTechnical,
		Competency: "technical_depth",
		Text:       "How does a B-tree index work?",
	}
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		answer     string
		setupMocks func(mGen *aiMocks.MockGenerator)
		wantErr    bool
		check      func(t *testing.T, ev *model.Evaluation)
	}{
		{
			name:   "happy path",
			answer: "A B-tree keeps keys sorted across pages...",
			setupMocks: func(mGen *aiMocks.MockGenerator) {
				mGen.On("Generate", ctx, mock.MatchedBy(func(prompt string) bool {
					return len(prompt) > 0
				})).Return(`{"score": 7.5, "competency_scores": {"technical_depth": 7.5},
					"strengths": ["concrete example"], "weaknesses": ["no tradeoffs"],
					"follow_up": true}`, nil)
			},
			check: func(t *testing.T, ev *model.Evaluation) {
				assert.Equal(t, 7.5, ev.Score)
				assert.Equal(t, 7.5, ev.CompetencyScores["technical_depth"])
				assert.Equal(t, []string{"concrete example"}, ev.Strengths)
				assert.True(t, ev.FollowUp)
				assert.Equal(t, "q1", ev.QuestionID)
				assert.Equal(t, model.PhaseTechnical, ev.Phase)
			},
		},
		{
			name:   "fenced json response",
			answer: "some answer",
			setupMocks: func(mGen *aiMocks.MockGenerator) {
				mGen.On("Generate", ctx, mock.Anything).
					Return("```json\n{\"score\": \"6\", \"follow_up\": \"yes\"}\n```", nil)
			},
			check: func(t *testing.T, ev *model.Evaluation) {
				assert.Equal(t, 6.0, ev.Score)
				assert.True(t, ev.FollowUp)
				// Primary competency backfilled from the overall score.
				assert.Equal(t, 6.0, ev.CompetencyScores["technical_depth"])
			},
		},
		{
			name:   "score clamped into range",
			answer: "answer",
			setupMocks: func(mGen *aiMocks.MockGenerator) {
				mGen.On("Generate", ctx, mock.Anything).
					Return(`{"score": 42}`, nil)
			},
			check: func(t *testing.T, ev *model.Evaluation) {
				assert.Equal(t, 10.0, ev.Score)
			},
		},
		{
			name:       "empty answer scores zero without llm call",
			answer:     "   ",
			setupMocks: func(mGen *aiMocks.MockGenerator) {},
			check: func(t *testing.T, ev *model.Evaluation) {
				assert.Equal(t, 0.0, ev.Score)
				assert.Equal(t, []string{"no answer given"}, ev.Weaknesses)
			},
		},
		{
			name:   "generator error",
			answer: "answer",
			setupMocks: func(mGen *aiMocks.MockGenerator) {
				mGen.On("Generate", ctx, mock.Anything).
					Return("", errors.New("llm down"))
			},
			wantErr: true,
		},
		{
			name:   "unparseable response",
			answer: "answer",
			setupMocks: func(mGen *aiMocks.MockGenerator) {
				mGen.On("Generate", ctx, mock.Anything).
					Return("I would give this a solid seven.", nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mGen := new(aiMocks.MockGenerator)
			tt.setupMocks(mGen)

			e := NewEngine(mGen)
			ev, err := e.Evaluate(ctx, testSession(), testQuestion(), tt.answer)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, ev)
			} else {
				require.NoError(t, err)
				tt.check(t, ev)
			}
			mGen.AssertExpectations(t)
		})
	}
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON(`{"a":1}`))
}

func TestCoerceScoreMap(t *testing.T) {
	scores := coerceScoreMap(map[string]any{
		"communication": "8",
		"depth":         7.0,
		"bogus":         "not a number",
	})
	require.NotNil(t, scores)
	assert.Equal(t, 8.0, scores["communication"])
	assert.Equal(t, 7.0, scores["depth"])
	_, ok := scores["bogus"]
	assert.False(t, ok)
}
