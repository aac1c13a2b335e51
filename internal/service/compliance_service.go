package service

import (
	"context"
	"math"
	"sort"

	"combatbible/gymdesk/internal/domain"
	"combatbible/gymdesk/internal/lesson"
)

const (
	// DefaultPlannedUnits stands in for the roster size when no class has students.
	DefaultPlannedUnits = 50
	// AtRiskThreshold is the compliance rate below which the gym is flagged.
	AtRiskThreshold = 80
)

// CoachCompliance counts deviations attributed to one coach.
type CoachCompliance struct {
	Coach      string `json:"coach"`
	Deviations int    `json:"deviations"`
}

// ComplianceSummary is the admin overview of plan adherence.
type ComplianceSummary struct {
	DeviationCount    int                      `json:"deviationCount"`
	PlannedUnits      int                      `json:"plannedUnits"`
	ComplianceRate    int                      `json:"complianceRate"`
	AtRisk            bool                     `json:"atRisk"`
	FeedbackCount     int                      `json:"feedbackCount"`
	AverageIntensity  float64                  `json:"averageIntensity"`
	AverageExperience float64                  `json:"averageExperience"`
	ByCoach           []CoachCompliance        `json:"byCoach"`
	Deviations        []domain.DeviationRecord `json:"deviations"`
}

// ComplianceService aggregates the deviation feed and student ratings.
type ComplianceService interface {
	Summary(ctx context.Context) (*ComplianceSummary, error)
}

type complianceService struct {
	roster RosterService
	ws     *lesson.Workspace
}

// NewComplianceService creates a compliance service reading ws.
func NewComplianceService(roster RosterService, ws *lesson.Workspace) ComplianceService {
	return &complianceService{roster: roster, ws: ws}
}

func (s *complianceService) Summary(ctx context.Context) (*ComplianceSummary, error) {
	units, err := s.roster.TotalStudents(ctx)
	if err != nil {
		return nil, err
	}
	if units <= 0 {
		units = DefaultPlannedUnits
	}
	feed := s.ws.Deviations.List()
	records := s.ws.Feedback.All()

	rate := ComplianceRate(len(feed), units)
	sum := &ComplianceSummary{
		DeviationCount: len(feed),
		PlannedUnits:   units,
		ComplianceRate: rate,
		AtRisk:         rate < AtRiskThreshold,
		FeedbackCount:  len(records),
		ByCoach:        byCoach(feed),
		Deviations:     feed,
	}
	if len(records) > 0 {
		var intensity, experience int
		for _, r := range records {
			intensity += r.Intensity
			experience += r.Experience
		}
		sum.AverageIntensity = round1(float64(intensity) / float64(len(records)))
		sum.AverageExperience = round1(float64(experience) / float64(len(records)))
	}
	return sum, nil
}

// ComplianceRate is max(0, round(100 - deviations/units*100)).
func ComplianceRate(deviations, units int) int {
	if units <= 0 {
		units = DefaultPlannedUnits
	}
	rate := math.Round(100 - float64(deviations)/float64(units)*100)
	if rate < 0 {
		return 0
	}
	return int(rate)
}

func byCoach(feed []domain.DeviationRecord) []CoachCompliance {
	counts := map[string]int{}
	for _, r := range feed {
		counts[r.Coach]++
	}
	out := make([]CoachCompliance, 0, len(counts))
	for coach, n := range counts {
		out = append(out, CoachCompliance{Coach: coach, Deviations: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Deviations != out[j].Deviations {
			return out[i].Deviations > out[j].Deviations
		}
		return out[i].Coach < out[j].Coach
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
