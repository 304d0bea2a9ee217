package domain

// CreditProfile holds the five scoring factors.
type CreditProfile struct {
	PaymentHistory    float64 `yaml:"payment_history" json:"paymentHistory"`       // percent of on-time payments
	CreditUtilization float64 `yaml:"credit_utilization" json:"creditUtilization"` // percent of limits in use
	CreditAgeYears    float64 `yaml:"credit_age_years" json:"creditAge"`
	CreditMix         float64 `yaml:"credit_mix" json:"creditMix"` // 0..100
	NewInquiries      int     `yaml:"new_inquiries" json:"newInquiries"`
}

// CreditGrade is the qualitative band of a score.
type CreditGrade string

const (
	GradePoor        CreditGrade = "Poor"
	GradeFair        CreditGrade = "Fair"
	GradeGood        CreditGrade = "Good"
	GradeVeryGood    CreditGrade = "Very Good"
	GradeExceptional CreditGrade = "Exceptional"
)

// CreditFactor names one of the scoring factors.
type CreditFactor string

const (
	FactorPaymentHistory CreditFactor = "payment_history"
	FactorUtilization    CreditFactor = "credit_utilization"
	FactorCreditAge      CreditFactor = "credit_age"
	FactorCreditMix      CreditFactor = "credit_mix"
	FactorNewInquiries   CreditFactor = "new_inquiries"
)

// FactorScore is one factor's 0..100 sub-score and its weight.
type FactorScore struct {
	Factor   CreditFactor `json:"factor"`
	SubScore float64      `json:"subScore"`
	Weight   float64      `json:"weight"`
}

// CreditScore is a scored profile. Score is in [300, 850].
type CreditScore struct {
	Score    int           `json:"score"`
	Grade    CreditGrade   `json:"grade"`
	Weighted float64       `json:"weighted"`
	Factors  []FactorScore `json:"factors"`
}

// TimelinePoint is the projected score for a month.
type TimelinePoint struct {
	Month int `json:"month"`
	Score int `json:"score"`
}

// Milestone marks a fraction of the way to the target score.
type Milestone struct {
	Month   int    `json:"month"`
	Score   int    `json:"score"`
	Percent int    `json:"percent"`
	Label   string `json:"label"`
}

// FactorImpact is the score change attributable to moving one factor from
// the current to the target profile, with the factor's weight in the score.
type FactorImpact struct {
	Factor CreditFactor `json:"factor"`
	Impact float64      `json:"impact"`
	Weight float64      `json:"weight"`
}

// CreditComparison contrasts a current profile with a target profile.
type CreditComparison struct {
	Current         CreditScore     `json:"current"`
	Target          CreditScore     `json:"target"`
	PointChange     int             `json:"pointChange"`
	MonthsToTarget  int             `json:"monthsToTarget"`
	Timeline        []TimelinePoint `json:"timeline"`
	Milestones      []Milestone     `json:"milestones"`
	Impacts         []FactorImpact  `json:"impacts"`
	Recommendations []string        `json:"recommendations,omitempty"`
}
