package scoring

import (
	"sort"

	"interviewapi/internal/model"
)

// Recommendation thresholds on the overall 0..10 score.
const (
	strongHireAt = 7.5
	hireAt       = 6.0
	borderlineAt = 4.5
)

// maxListedItems caps the strengths/weaknesses carried into the report.
const maxListedItems = 5

var phaseOrder = []model.Phase{
	model.PhaseIntro,
	model.PhaseTechnical,
	model.PhaseBehavioral,
	model.PhaseCoding,
	model.PhaseWrapUp,
}

// BuildReport aggregates a session's per-answer evaluations into the recruiter
// report: per-competency and per-phase averages, an overall score (mean of
// competency averages), and a recommendation. ID, transcript path and created
// time are filled in by the caller.
func BuildReport(s *model.Session) *model.Report {
	rep := &model.Report{
		InterviewID:   s.ID,
		CandidateName: s.CandidateName,
		Role:          s.Role,
		Seniority:     s.Seniority,
		QuestionCount: len(s.Evaluations),
	}

	if len(s.Evaluations) == 0 {
		rep.Recommendation = model.RecommendNoHire
		rep.Competencies = []model.CompetencyScore{}
		rep.Phases = []model.PhaseScore{}
		return rep
	}

	compSums := make(map[string]float64)
	compCounts := make(map[string]int)
	phaseSums := make(map[model.Phase]float64)
	phaseCounts := make(map[model.Phase]int)
	var strengths, weaknesses []string

	for _, ev := range s.Evaluations {
		for comp, score := range ev.CompetencyScores {
			compSums[comp] += score
			compCounts[comp]++
		}
		// Evaluations without a breakdown still count toward their primary
		// competency.
		if len(ev.CompetencyScores) == 0 && ev.Competency != "" {
			compSums[ev.Competency] += ev.Score
			compCounts[ev.Competency]++
		}
		phaseSums[ev.Phase] += ev.Score
		phaseCounts[ev.Phase]++
		strengths = appendUnique(strengths, ev.Strengths)
		weaknesses = appendUnique(weaknesses, ev.Weaknesses)
	}

	names := make([]string, 0, len(compSums))
	for name := range compSums {
		names = append(names, name)
	}
	sort.Strings(names)

	var overallSum float64
	rep.Competencies = make([]model.CompetencyScore, 0, len(names))
	for _, name := range names {
		avg := compSums[name] / float64(compCounts[name])
		overallSum += avg
		rep.Competencies = append(rep.Competencies, model.CompetencyScore{
			Competency: name,
			Score:      round1(avg),
			Answers:    compCounts[name],
		})
	}
	rep.OverallScore = round1(overallSum / float64(len(names)))

	rep.Phases = make([]model.PhaseScore, 0, len(phaseSums))
	for _, phase := range phaseOrder {
		if phaseCounts[phase] == 0 {
			continue
		}
		rep.Phases = append(rep.Phases, model.PhaseScore{
			Phase:   phase,
			Score:   round1(phaseSums[phase] / float64(phaseCounts[phase])),
			Answers: phaseCounts[phase],
		})
	}

	rep.Strengths = truncateList(strengths, maxListedItems)
	rep.Weaknesses = truncateList(weaknesses, maxListedItems)
	rep.Recommendation = recommend(rep.OverallScore)
	return rep
}

func recommend(overall float64) model.Recommendation {
	switch {
	case overall >= strongHireAt:
		return model.RecommendStrongHire
	case overall >= hireAt:
		return model.RecommendHire
	case overall >= borderlineAt:
		return model.RecommendBorderline
	default:
		return model.RecommendNoHire
	}
}

func appendUnique(dst []string, items []string) []string {
	for _, item := range items {
		seen := false
		for _, existing := range dst {
			if existing == item {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, item)
		}
	}
	return dst
}

func truncateList(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
