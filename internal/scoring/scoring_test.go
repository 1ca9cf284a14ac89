package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewapi/internal/model"
)

func TestBuildReportEmptySession(t *testing.T) {
	s := &model.Session{ID: "i1", CandidateName: "Jane", Role: "backend"}

	rep := BuildReport(s)

	assert.Equal(t, "i1", rep.InterviewID)
	assert.Equal(t, 0.0, rep.OverallScore)
	assert.Equal(t, model.RecommendNoHire, rep.Recommendation)
	assert.Empty(t, rep.Competencies)
	assert.Empty(t, rep.Phases)
	assert.Equal(t, 0, rep.QuestionCount)
}

func TestBuildReportAggregation(t *testing.T) {
	s := &model.Session{
		ID:            "i1",
		CandidateName: "Jane",
		Role:          "backend",
		Seniority:     "senior",
		Evaluations: []model.Evaluation{
			{
				Phase:            model.PhaseTechnical,
				Competency:       "technical_depth",
				Score:            8,
				CompetencyScores: map[string]float64{"technical_depth": 8},
				Strengths:        []string{"clear"},
			},
			{
				Phase:            model.PhaseTechnical,
				Competency:       "technical_depth",
				Score:            6,
				CompetencyScores: map[string]float64{"technical_depth": 6},
				Strengths:        []string{"clear"}, // duplicate, must dedupe
				Weaknesses:       []string{"vague on tradeoffs"},
			},
			{
				Phase:            model.PhaseBehavioral,
				Competency:       "communication",
				Score:            7,
				CompetencyScores: map[string]float64{"communication": 7},
			},
		},
	}

	rep := BuildReport(s)

	// technical_depth avg 7.0, communication avg 7.0 -> overall 7.0.
	assert.Equal(t, 7.0, rep.OverallScore)
	assert.Equal(t, model.RecommendHire, rep.Recommendation)
	assert.Equal(t, 3, rep.QuestionCount)

	require.Len(t, rep.Competencies, 2)
	// Sorted alphabetically.
	assert.Equal(t, "communication", rep.Competencies[0].Competency)
	assert.Equal(t, "technical_depth", rep.Competencies[1].Competency)
	assert.Equal(t, 7.0, rep.Competencies[1].Score)
	assert.Equal(t, 2, rep.Competencies[1].Answers)

	require.Len(t, rep.Phases, 2)
	// Interview order, not score order.
	assert.Equal(t, model.PhaseTechnical, rep.Phases[0].Phase)
	assert.Equal(t, 7.0, rep.Phases[0].Score)
	assert.Equal(t, model.PhaseBehavioral, rep.Phases[1].Phase)

	assert.Equal(t, []string{"clear"}, rep.Strengths)
	assert.Equal(t, []string{"vague on tradeoffs"}, rep.Weaknesses)
}

func TestBuildReportFallsBackToPrimaryCompetency(t *testing.T) {
	s := &model.Session{
		ID: "i1",
		Evaluations: []model.Evaluation{
			{Phase: model.PhaseIntro, Competency: "communication", Score: 5},
		},
	}

	rep := BuildReport(s)

	require.Len(t, rep.Competencies, 1)
	assert.Equal(t, "communication", rep.Competencies[0].Competency)
	assert.Equal(t, 5.0, rep.Competencies[0].Score)
}

func TestRecommendThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  model.Recommendation
	}{
		{9.0, model.RecommendStrongHire},
		{7.5, model.RecommendStrongHire},
		{7.4, model.RecommendHire},
		{6.0, model.RecommendHire},
		{5.0, model.RecommendBorderline},
		{4.5, model.RecommendBorderline},
		{4.4, model.RecommendNoHire},
		{0.0, model.RecommendNoHire},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, recommend(tt.score), "score %.1f", tt.score)
	}
}

func TestBuildReportCapsListedItems(t *testing.T) {
	evs := make([]model.Evaluation, 0, 8)
	for i := 0; i < 8; i++ {
		evs = append(evs, model.Evaluation{
			Phase:      model.PhaseTechnical,
			Competency: "technical_depth",
			Score:      6,
			Strengths:  []string{string(rune('a' + i))},
		})
	}
	s := &model.Session{ID: "i1", Evaluations: evs}

	rep := BuildReport(s)

	assert.Len(t, rep.Strengths, maxListedItems)
}
