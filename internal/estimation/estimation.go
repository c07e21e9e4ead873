// Package estimation holds the effort arithmetic shared by evaluations and reports.
package estimation

import "math"

// HoursPerDay is the length of a working day used to turn hours into days.
const HoursPerDay = 6

// Hours within this distance of a day boundary count as landing on it.
const dayEpsilon = 1e-6

// Totals is the outcome of an estimate.
type Totals struct {
	BaseHours         float64  `json:"base_hours"`
	RiskAdjustedHours *float64 `json:"risk_adjusted_hours"`
	EstimatedDays     int      `json:"estimated_days"`
}

// Effective returns the risk-adjusted hours when present, otherwise the base hours.
func (t Totals) Effective() float64 {
	if t.RiskAdjustedHours != nil {
		return *t.RiskAdjustedHours
	}
	return t.BaseHours
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Days converts hours into whole working days, rounding up.
func Days(hours float64) int {
	if hours <= 0 {
		return 0
	}
	return int(math.Ceil(hours/HoursPerDay - dayEpsilon))
}

// RiskFactor returns the multiplier for a risk percentage. Nil or non-positive
// percentages leave hours unchanged.
func RiskFactor(riskPct *float64) float64 {
	if riskPct == nil || *riskPct <= 0 {
		return 1
	}
	return 1 + *riskPct/100
}

// Compute sums line-item hours and applies the optional risk percentage.
func Compute(hours []float64, riskPct *float64) Totals {
	var sum float64
	for _, h := range hours {
		sum += h
	}
	t := Totals{BaseHours: Round2(sum)}
	if riskPct != nil && *riskPct > 0 {
		adjusted := Round2(t.BaseHours * RiskFactor(riskPct))
		t.RiskAdjustedHours = &adjusted
	}
	t.EstimatedDays = Days(t.Effective())
	return t
}
