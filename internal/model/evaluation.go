package model

// Evaluation is the scored result of a single candidate answer.
type Evaluation struct {
	QuestionID string `json:"question_id"`
	Phase      Phase  `json:"phase"`
	Competency string `json:"competency"`
	// Score is the overall answer score on a 0..10 scale.
	Score float64 `json:"score"`
	// CompetencyScores holds per-dimension scores when the evaluator provides
	// them; the primary competency is always present.
	CompetencyScores map[string]float64 `json:"competency_scores,omitempty"`
	Strengths        []string           `json:"strengths,omitempty"`
	Weaknesses       []string           `json:"weaknesses,omitempty"`
	// FollowUp indicates the evaluator recommends probing the same topic again.
	FollowUp bool `json:"follow_up"`
}
