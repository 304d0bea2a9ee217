package calculation

import (
	"math"
	"testing"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typicalProfile() domain.CreditProfile {
	return domain.CreditProfile{
		PaymentHistory:    95,
		CreditUtilization: 30,
		CreditAgeYears:    8,
		CreditMix:         60,
		NewInquiries:      2,
	}
}

func TestScoreCredit(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.CreditProfile
		score   int
		grade   domain.CreditGrade
	}{
		{
			name:    "perfect",
			profile: domain.CreditProfile{PaymentHistory: 100, CreditAgeYears: 25, CreditMix: 100},
			score:   850,
			grade:   domain.GradeExceptional,
		},
		{
			name:    "worst",
			profile: domain.CreditProfile{CreditUtilization: 100, NewInquiries: 15},
			score:   300,
			grade:   domain.GradePoor,
		},
		{
			// 33.25 + 21 + 6 + 6 + 8 = 74.25 weighted
			name:    "typical",
			profile: typicalProfile(),
			score:   708,
			grade:   domain.GradeGood,
		},
		{
			name:    "out of range inputs clamp",
			profile: domain.CreditProfile{PaymentHistory: 150, CreditUtilization: -20, CreditAgeYears: 99, CreditMix: 400, NewInquiries: -3},
			score:   850,
			grade:   domain.GradeExceptional,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ScoreCredit(tt.profile)
			assert.Equal(t, tt.score, s.Score)
			assert.Equal(t, tt.grade, s.Grade)
			assert.Len(t, s.Factors, 5)
		})
	}
}

func TestScoreCredit_Bounds(t *testing.T) {
	for ph := 0.0; ph <= 100; ph += 20 {
		for util := 0.0; util <= 100; util += 25 {
			for inq := 0; inq <= 12; inq += 4 {
				s := ScoreCredit(domain.CreditProfile{PaymentHistory: ph, CreditUtilization: util, CreditAgeYears: ph / 5, CreditMix: util, NewInquiries: inq})
				assert.GreaterOrEqual(t, s.Score, MinCreditScore)
				assert.LessOrEqual(t, s.Score, MaxCreditScore)
			}
		}
	}
}

func TestCreditWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range CreditWeights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score int
		grade domain.CreditGrade
	}{
		{300, domain.GradePoor},
		{579, domain.GradePoor},
		{580, domain.GradeFair},
		{669, domain.GradeFair},
		{670, domain.GradeGood},
		{739, domain.GradeGood},
		{740, domain.GradeVeryGood},
		{799, domain.GradeVeryGood},
		{800, domain.GradeExceptional},
		{850, domain.GradeExceptional},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.grade, Grade(tt.score), "score %d", tt.score)
	}
}

func TestProjectionTimeline(t *testing.T) {
	timeline, milestones := ProjectionTimeline(650, 700)

	require.Len(t, timeline, 6, "Fifty points at ten a month is five months plus month zero")
	assert.Equal(t, domain.TimelinePoint{Month: 0, Score: 650}, timeline[0])
	assert.Equal(t, domain.TimelinePoint{Month: 5, Score: 700}, timeline[5])

	require.Len(t, milestones, 4)
	months := []int{milestones[0].Month, milestones[1].Month, milestones[2].Month, milestones[3].Month}
	assert.Equal(t, []int{2, 3, 4, 5}, months)
	assert.Equal(t, 670, milestones[0].Score)
	assert.Equal(t, 100, milestones[3].Percent)
	assert.Equal(t, "Target score 700 reached", milestones[3].Label)

	for i := 1; i < len(timeline); i++ {
		assert.GreaterOrEqual(t, timeline[i].Score, timeline[i-1].Score)
	}
}

func TestProjectionTimeline_NoChange(t *testing.T) {
	timeline, milestones := ProjectionTimeline(720, 720)

	require.Len(t, timeline, 2)
	assert.Equal(t, 720, timeline[1].Score)
	assert.Equal(t, 1, milestones[3].Month)
}

func TestProjectionTimeline_Decline(t *testing.T) {
	timeline, _ := ProjectionTimeline(700, 655)

	require.Len(t, timeline, 6)
	assert.Equal(t, 655, timeline[len(timeline)-1].Score)
	for i := 1; i < len(timeline); i++ {
		assert.LessOrEqual(t, timeline[i].Score, timeline[i-1].Score)
	}
}

func TestFactorImpacts(t *testing.T) {
	current := typicalProfile()
	target := current
	target.CreditUtilization = 10
	target.NewInquiries = 1

	impacts := FactorImpacts(current, target)
	require.Len(t, impacts, 5)

	// utilization: 20 points * 0.30 * 5.5; inquiries: 10 * 0.10 * 5.5
	assert.Equal(t, domain.FactorUtilization, impacts[0].Factor)
	assert.InDelta(t, 33, impacts[0].Impact, 1e-9)
	assert.Equal(t, domain.FactorNewInquiries, impacts[1].Factor)
	assert.InDelta(t, 5.5, impacts[1].Impact, 1e-9)
	assert.Equal(t, 0.30, impacts[0].Weight)
	assert.Equal(t, 0.10, impacts[1].Weight)

	var total float64
	for _, impact := range impacts {
		assert.Equal(t, CreditWeights[impact.Factor], impact.Weight, impact.Factor)
		total += impact.Weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	for i := 1; i < len(impacts); i++ {
		assert.GreaterOrEqual(t, math.Abs(impacts[i-1].Impact), math.Abs(impacts[i].Impact))
	}
}

func TestCompareCreditProfiles(t *testing.T) {
	current := typicalProfile()
	target := current
	target.CreditUtilization = 10
	target.PaymentHistory = 100

	c := NewEngine().CompareCreditProfiles(current, target)

	assert.Equal(t, 708, c.Current.Score)
	assert.Greater(t, c.Target.Score, c.Current.Score)
	assert.Equal(t, c.Target.Score-c.Current.Score, c.PointChange)
	assert.Equal(t, c.Timeline[len(c.Timeline)-1].Month, c.MonthsToTarget)
	assert.Equal(t, c.Target.Score, c.Timeline[len(c.Timeline)-1].Score)
	assert.NotEmpty(t, c.Recommendations)
	assert.Contains(t, c.Recommendations[0], "credit utilization")
}

func TestCreditRecommendations(t *testing.T) {
	recs := CreditRecommendations(domain.CreditProfile{PaymentHistory: 90, CreditUtilization: 45, CreditAgeYears: 2, CreditMix: 20, NewInquiries: 4})
	assert.Len(t, recs, 5)

	recs = CreditRecommendations(domain.CreditProfile{PaymentHistory: 100, CreditUtilization: 5, CreditAgeYears: 10, CreditMix: 80})
	assert.Empty(t, recs)
}
