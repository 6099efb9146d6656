package fees

import (
	"github.com/shopspring/decimal"

	"Backend-Schoolhub/src/models"
)

const monthsPerYear = 12

// FeeSchedule ค่าเทอมรายเดือนต่อห้องเรียน
type FeeSchedule map[string]decimal.Decimal

// ScheduleFromRoster takes each class's fee from the first active student in it with a non-zero fee.
func ScheduleFromRoster(roster []models.Person) FeeSchedule {
	s := FeeSchedule{}
	for _, p := range roster {
		if p.IsTeacher() || !p.Active || p.ClassName == "" || p.MonthlyFee.IsZero() {
			continue
		}
		if _, ok := s[p.ClassName]; !ok {
			s[p.ClassName] = p.MonthlyFee
		}
	}
	return s
}

// Aggregate folds entries into per-class summaries from scratch.
// Same entries, roster, schedule and window always give the same result.
func Aggregate(entries []models.LedgerEntry, roster []models.Person, schedule FeeSchedule, window models.ReportWindow) map[string]models.ClassFeeSummary {
	classOf := make(map[string]string, len(roster))
	counted := make(map[string]bool, len(roster))
	out := make(map[string]models.ClassFeeSummary)

	for _, p := range roster {
		if p.IsTeacher() {
			continue
		}
		classOf[p.ID] = p.ClassName
		if !p.Active || p.ClassName == "" {
			continue
		}
		counted[p.ID] = true
		s := summaryFor(out, p.ClassName, schedule)
		s.TotalPersonCount++
		out[p.ClassName] = s
	}

	paid := make(map[string]map[string]struct{})
	for _, e := range entries {
		if !window.Contains(e.Date) {
			continue
		}
		class, ok := classOf[e.PersonID]
		if !ok || class == "" {
			class = e.ClassName
		}
		if class == "" {
			continue
		}
		s := summaryFor(out, class, schedule)
		s.TotalPaid = s.TotalPaid.Add(e.AmountPaid)
		s.TotalDonation = s.TotalDonation.Add(e.DonationApplied)
		out[class] = s

		// PaidPersonCount นับเฉพาะคนที่อยู่ใน TotalPersonCount ของห้องนั้น
		if !counted[e.PersonID] || classOf[e.PersonID] != class {
			continue
		}
		if paid[class] == nil {
			paid[class] = make(map[string]struct{})
		}
		paid[class][e.PersonID] = struct{}{}
	}

	year := decimal.NewFromInt(monthsPerYear)
	for class, s := range out {
		s.PaidPersonCount = len(paid[class])
		expected := s.MonthlyFee.Mul(decimal.NewFromInt(int64(s.TotalPersonCount))).Mul(year)
		s.TotalDue = decimal.Max(decimal.Zero, expected.Sub(s.TotalPaid).Sub(s.TotalDonation))
		out[class] = s
	}
	return out
}

func summaryFor(out map[string]models.ClassFeeSummary, class string, schedule FeeSchedule) models.ClassFeeSummary {
	if s, ok := out[class]; ok {
		return s
	}
	fee := decimal.Zero
	if f, ok := schedule[class]; ok {
		fee = f
	}
	return models.ClassFeeSummary{
		ClassName:     class,
		MonthlyFee:    fee,
		TotalPaid:     decimal.Zero,
		TotalDonation: decimal.Zero,
		TotalDue:      decimal.Zero,
	}
}
