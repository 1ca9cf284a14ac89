package model

import "time"

// Recommendation is the hiring recommendation derived from the overall score.
type Recommendation string

const (
	RecommendStrongHire Recommendation = "strong_hire"
	RecommendHire       Recommendation = "hire"
	RecommendBorderline Recommendation = "borderline"
	RecommendNoHire     Recommendation = "no_hire"
)

// CompetencyScore is the aggregated score for one skill dimension.
type CompetencyScore struct {
	Competency string  `json:"competency"`
	Score      float64 `json:"score"`
	Answers    int     `json:"answers"`
}

// PhaseScore is the aggregated score for one interview phase.
type PhaseScore struct {
	Phase   Phase   `json:"phase"`
	Score   float64 `json:"score"`
	Answers int     `json:"answers"`
}

// Report is the recruiter-facing interview summary, persisted after a session
// completes. TranscriptPath points at the archived transcript in object storage.
type Report struct {
	ID             string            `json:"id"`
	InterviewID    string            `json:"interview_id"`
	CandidateName  string            `json:"candidate_name"`
	Role           string            `json:"role"`
	Seniority      string            `json:"seniority"`
	OverallScore   float64           `json:"overall_score"`
	Recommendation Recommendation    `json:"recommendation"`
	Competencies   []CompetencyScore `json:"competencies"`
	Phases         []PhaseScore      `json:"phases"`
	Strengths      []string          `json:"strengths"`
	Weaknesses     []string          `json:"weaknesses"`
	QuestionCount  int               `json:"question_count"`
	TranscriptPath string            `json:"transcript_path"`
	CreatedAt      time.Time         `json:"created_at"`
}
