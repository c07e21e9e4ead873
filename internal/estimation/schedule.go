package estimation

import "math"

// ScheduleEntry places one task on the working-day timeline.
type ScheduleEntry struct {
	Index     int     `json:"index"`
	BaseHours float64 `json:"base_hours"`
	RiskHours float64 `json:"risk_hours"`
	Days      int     `json:"days"`
	StartDay  int     `json:"start_day"`
	EndDay    int     `json:"end_day"`
}

// Schedule lays tasks out back to back in the given order. Each task's hours are
// inflated by the risk percentage; days are 1-based.
func Schedule(hours []float64, riskPct *float64) []ScheduleEntry {
	factor := RiskFactor(riskPct)
	entries := make([]ScheduleEntry, 0, len(hours))

	var acc float64
	for i, h := range hours {
		riskHours := Round2(h * factor)
		start := int(math.Floor(acc/HoursPerDay+dayEpsilon)) + 1
		acc += riskHours
		end := Days(acc)
		if end < start {
			end = start
		}
		entries = append(entries, ScheduleEntry{
			Index:     i + 1,
			BaseHours: h,
			RiskHours: riskHours,
			Days:      Days(riskHours),
			StartDay:  start,
			EndDay:    end,
		})
	}
	return entries
}
