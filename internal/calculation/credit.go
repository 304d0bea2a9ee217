package calculation

import (
	"fmt"
	"math"
	"sort"

	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/numeric"
)

const (
	MinCreditScore = 300
	MaxCreditScore = 850
	// creditScale maps a 0..100 weighted score onto the 300..850 range.
	creditScale = float64(MaxCreditScore-MinCreditScore) / 100
	// PointsPerMonth is the assumed pace of score change.
	PointsPerMonth = 10
)

// CreditWeights are the factor weights, summing to 1.
var CreditWeights = map[domain.CreditFactor]float64{
	domain.FactorPaymentHistory: 0.35,
	domain.FactorUtilization:    0.30,
	domain.FactorCreditAge:      0.15,
	domain.FactorCreditMix:      0.10,
	domain.FactorNewInquiries:   0.10,
}

var creditFactorOrder = []domain.CreditFactor{
	domain.FactorPaymentHistory,
	domain.FactorUtilization,
	domain.FactorCreditAge,
	domain.FactorCreditMix,
	domain.FactorNewInquiries,
}

// FactorSubScores maps each factor of a profile to 0..100.
func FactorSubScores(p domain.CreditProfile) map[domain.CreditFactor]float64 {
	return map[domain.CreditFactor]float64{
		domain.FactorPaymentHistory: numeric.ClampPercent(numeric.Finite(p.PaymentHistory)),
		domain.FactorUtilization:    numeric.ClampPercent(100 - numeric.ClampPercent(numeric.Finite(p.CreditUtilization))),
		domain.FactorCreditAge:      numeric.ClampPercent(numeric.NonNegative(p.CreditAgeYears) * 5),
		domain.FactorCreditMix:      numeric.ClampPercent(numeric.Finite(p.CreditMix)),
		domain.FactorNewInquiries:   numeric.ClampPercent(100 - 10*float64(max(0, p.NewInquiries))),
	}
}

// Grade maps a score to its band.
func Grade(score int) domain.CreditGrade {
	switch {
	case score < 580:
		return domain.GradePoor
	case score < 670:
		return domain.GradeFair
	case score < 740:
		return domain.GradeGood
	case score < 800:
		return domain.GradeVeryGood
	default:
		return domain.GradeExceptional
	}
}

// ScoreCredit weights the factor sub-scores and maps the result onto 300..850.
func ScoreCredit(p domain.CreditProfile) domain.CreditScore {
	subs := FactorSubScores(p)
	var weighted float64
	factors := make([]domain.FactorScore, 0, len(creditFactorOrder))
	for _, f := range creditFactorOrder {
		w := CreditWeights[f]
		weighted += subs[f] * w
		factors = append(factors, domain.FactorScore{Factor: f, SubScore: numeric.Round(subs[f], 2), Weight: w})
	}
	score := MinCreditScore + int(math.Round(weighted*creditScale))
	score = int(numeric.Clamp(float64(score), MinCreditScore, MaxCreditScore))
	return domain.CreditScore{
		Score:    score,
		Grade:    Grade(score),
		Weighted: numeric.Round(weighted, 2),
		Factors:  factors,
	}
}

// ProjectionTimeline interpolates linearly from the current to the target
// score, assuming ten points a month, and marks the 25/50/75/100% milestones.
func ProjectionTimeline(current, target int) ([]domain.TimelinePoint, []domain.Milestone) {
	gap := target - current
	months := int(math.Ceil(math.Abs(float64(gap)) / PointsPerMonth))
	if months < 1 {
		months = 1
	}

	at := func(month int) int {
		return current + int(math.Round(float64(gap)*float64(month)/float64(months)))
	}
	timeline := make([]domain.TimelinePoint, 0, months+1)
	for m := 0; m <= months; m++ {
		timeline = append(timeline, domain.TimelinePoint{Month: m, Score: at(m)})
	}

	milestones := make([]domain.Milestone, 0, 4)
	for _, pct := range []int{25, 50, 75, 100} {
		month := int(math.Ceil(float64(months) * float64(pct) / 100))
		label := fmt.Sprintf("%d%% of the way to %d", pct, target)
		if pct == 100 {
			label = fmt.Sprintf("Target score %d reached", target)
		}
		milestones = append(milestones, domain.Milestone{Month: month, Score: at(month), Percent: pct, Label: label})
	}
	return timeline, milestones
}

// FactorImpacts attributes the score change between two profiles to each
// factor, largest absolute impact first.
func FactorImpacts(current, target domain.CreditProfile) []domain.FactorImpact {
	cur, tgt := FactorSubScores(current), FactorSubScores(target)
	impacts := make([]domain.FactorImpact, 0, len(creditFactorOrder))
	for _, f := range creditFactorOrder {
		impacts = append(impacts, domain.FactorImpact{
			Factor: f,
			Impact: numeric.Round((tgt[f]-cur[f])*CreditWeights[f]*creditScale, 1),
			Weight: CreditWeights[f],
		})
	}
	sort.SliceStable(impacts, func(i, j int) bool {
		return math.Abs(impacts[i].Impact) > math.Abs(impacts[j].Impact)
	})
	return impacts
}

// CompareCreditProfiles scores both profiles and projects the path between
// them.
func (e *Engine) CompareCreditProfiles(current, target domain.CreditProfile) domain.CreditComparison {
	cur, tgt := ScoreCredit(current), ScoreCredit(target)
	timeline, milestones := ProjectionTimeline(cur.Score, tgt.Score)
	c := domain.CreditComparison{
		Current:        cur,
		Target:         tgt,
		PointChange:    tgt.Score - cur.Score,
		MonthsToTarget: timeline[len(timeline)-1].Month,
		Timeline:       timeline,
		Milestones:     milestones,
		Impacts:        FactorImpacts(current, target),
	}
	c.Recommendations = creditRecommendations(current, c)

	e.logger().Debugf("credit: %d -> %d over %d months", cur.Score, tgt.Score, c.MonthsToTarget)
	return c
}

// CreditRecommendations lists the actions that would lift a single profile.
func CreditRecommendations(p domain.CreditProfile) []string {
	var recs []string
	if p.PaymentHistory < 100 {
		recs = append(recs, "Set up automatic payments; payment history carries the most weight")
	}
	if p.CreditUtilization > 30 {
		recs = append(recs, fmt.Sprintf("Bring utilization from %.0f%% below 30%%", p.CreditUtilization))
	} else if p.CreditUtilization > 10 {
		recs = append(recs, "Utilization under 10% scores best")
	}
	if p.NewInquiries > 2 {
		recs = append(recs, "Avoid new credit applications for the next year")
	}
	if p.CreditAgeYears < 5 {
		recs = append(recs, "Keep your oldest accounts open to build credit age")
	}
	if p.CreditMix < 50 {
		recs = append(recs, "A mix of revolving and installment credit helps over time")
	}
	return recs
}

func creditRecommendations(current domain.CreditProfile, c domain.CreditComparison) []string {
	recs := make([]string, 0, 4)
	for _, imp := range c.Impacts {
		if imp.Impact >= 1 {
			recs = append(recs, fmt.Sprintf("Improving %s is worth about %.0f points", factorLabel(imp.Factor), imp.Impact))
		}
		if len(recs) == 3 {
			break
		}
	}
	if c.PointChange <= 0 {
		recs = append(recs, "The target profile does not raise the score")
	}
	if len(recs) == 0 {
		recs = CreditRecommendations(current)
	}
	return recs
}

func factorLabel(f domain.CreditFactor) string {
	switch f {
	case domain.FactorPaymentHistory:
		return "payment history"
	case domain.FactorUtilization:
		return "credit utilization"
	case domain.FactorCreditAge:
		return "credit age"
	case domain.FactorCreditMix:
		return "credit mix"
	case domain.FactorNewInquiries:
		return "new inquiries"
	}
	return string(f)
}
