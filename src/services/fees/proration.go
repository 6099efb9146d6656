package fees

import (
	"fmt"

	"github.com/shopspring/decimal"

	"Backend-Schoolhub/src/models"
)

const (
	MaxMonths = 12
	// MoneyPlaces ปัดเศษต่อเดือนเป็นสตางค์
	MoneyPlaces = 2
)

// Compute splits one payment instruction into per-month ledger entries.
// A shortfall against monthlyFee × months becomes a donation; overpayment is not tracked.
func Compute(in models.PaymentInstruction) (models.Proration, error) {
	if err := checkInstruction(in); err != nil {
		return models.Proration{}, err
	}

	months := decimal.NewFromInt(int64(in.NumberOfMonths))
	totalExpected := in.MonthlyFee.Mul(months)
	donation := decimal.Max(decimal.Zero, totalExpected.Sub(in.PaidAmount))

	// แบ่งเท่ากันทุกเดือน ไม่กระจายเศษที่เหลือ
	paidPerMonth := in.PaidAmount.DivRound(months, MoneyPlaces)
	donationPerMonth := donation.DivRound(months, MoneyPlaces)

	entries := make([]models.LedgerEntry, 0, in.NumberOfMonths)
	for i := 0; i < in.NumberOfMonths; i++ {
		entries = append(entries, models.LedgerEntry{
			PersonID:        in.PersonID,
			MonthIndex:      (in.StartMonthIndex + i) % MaxMonths,
			AmountPaid:      paidPerMonth,
			DonationApplied: donationPerMonth,
			VoucherNumber:   voucherFor(in.VoucherNumber, i, in.NumberOfMonths),
			PaymentMethod:   in.PaymentMethod,
			CollectedBy:     in.CollectedBy,
			Date:            in.Date,
		})
	}

	return models.Proration{
		TotalExpected:    totalExpected,
		Donation:         donation,
		PaidPerMonth:     paidPerMonth,
		DonationPerMonth: donationPerMonth,
		Entries:          entries,
	}, nil
}

func voucherFor(voucher string, i, months int) string {
	if months <= 1 {
		return voucher
	}
	return fmt.Sprintf("%s-%d", voucher, i+1)
}

func checkInstruction(in models.PaymentInstruction) error {
	switch {
	case in.NumberOfMonths < 1 || in.NumberOfMonths > MaxMonths:
		return fmt.Errorf("%w: numberOfMonths must be 1..%d, got %d", models.ErrInvalidInput, MaxMonths, in.NumberOfMonths)
	case in.StartMonthIndex < 0 || in.StartMonthIndex >= MaxMonths:
		return fmt.Errorf("%w: startMonthIndex must be 0..11, got %d", models.ErrInvalidInput, in.StartMonthIndex)
	case in.MonthlyFee.IsNegative():
		return fmt.Errorf("%w: monthlyFee must not be negative", models.ErrInvalidInput)
	case in.PaidAmount.IsNegative():
		return fmt.Errorf("%w: paidAmount must not be negative", models.ErrInvalidInput)
	}
	return nil
}
