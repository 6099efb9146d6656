package fees_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/services/fees"
	"Backend-Schoolhub/src/testutil"
)

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, testutil.Money(want).Equal(got), append([]interface{}{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func instruction(fee, paid string, months, start int) models.PaymentInstruction {
	return models.PaymentInstruction{
		PersonID:        "S-001",
		MonthlyFee:      testutil.Money(fee),
		PaidAmount:      testutil.Money(paid),
		NumberOfMonths:  months,
		StartMonthIndex: start,
		VoucherNumber:   "V100",
		PaymentMethod:   "cash",
		Date:            testutil.Date,
		CollectedBy:     "admin",
	}
}

func TestComputeShortPaymentSingleMonth(t *testing.T) {
	p, err := fees.Compute(instruction("500", "300", 1, 4))
	require.NoError(t, err)

	assertMoney(t, "500", p.TotalExpected)
	assertMoney(t, "200", p.Donation)
	require.Len(t, p.Entries, 1)

	e := p.Entries[0]
	assertMoney(t, "300", e.AmountPaid)
	assertMoney(t, "200", e.DonationApplied)
	assert.Equal(t, 4, e.MonthIndex)
	assert.Equal(t, "V100", e.VoucherNumber, "single month keeps the plain voucher")
	assert.Equal(t, "S-001", e.PersonID)
	assert.Equal(t, "cash", e.PaymentMethod)
	assert.Equal(t, testutil.Date, e.Date)
}

func TestComputeFullAdvancePayment(t *testing.T) {
	p, err := fees.Compute(instruction("500", "1500", 3, 0))
	require.NoError(t, err)

	assert.True(t, p.Donation.IsZero())
	assert.Equal(t, []int{0, 1, 2}, p.MonthIndexes())
	for i, e := range p.Entries {
		assertMoney(t, "500", e.AmountPaid)
		assert.True(t, e.DonationApplied.IsZero())
		assert.Equal(t, []string{"V100-1", "V100-2", "V100-3"}[i], e.VoucherNumber)
	}
}

func TestComputeMonthWraparound(t *testing.T) {
	p, err := fees.Compute(instruction("500", "1500", 3, 11))
	require.NoError(t, err)
	assert.Equal(t, []int{11, 0, 1}, p.MonthIndexes())

	p, err = fees.Compute(instruction("500", "6000", 12, 6))
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7, 8, 9, 10, 11, 0, 1, 2, 3, 4, 5}, p.MonthIndexes())
}

func TestComputeDonationZeroWhenOverpaid(t *testing.T) {
	tests := []struct {
		name   string
		fee    string
		paid   string
		months int
	}{
		{"TestExactPayment", "500", "1000", 2},
		{"TestOverpayment", "500", "1800", 3},
		{"TestZeroFee", "0", "100", 1},
		{"TestZeroFeeZeroPaid", "0", "0", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := fees.Compute(instruction(tt.fee, tt.paid, tt.months, 0))
			require.NoError(t, err)
			assert.True(t, p.Donation.IsZero())
			for _, e := range p.Entries {
				assert.True(t, e.DonationApplied.IsZero())
			}
		})
	}
}

// ผลรวมรายเดือนต้องเท่ากับ paid + donation ภายในเศษปัดสตางค์
func TestComputeConservation(t *testing.T) {
	feesList := []string{"0", "350", "499.99", "500", "1234.56"}
	paidList := []string{"0", "1", "100", "333.33", "1000", "1500", "7000"}

	for _, fee := range feesList {
		for _, paid := range paidList {
			for months := 1; months <= fees.MaxMonths; months++ {
				in := instruction(fee, paid, months, months%12)
				p, err := fees.Compute(in)
				require.NoError(t, err)
				require.Len(t, p.Entries, months)

				sum := decimal.Zero
				for _, e := range p.Entries {
					sum = sum.Add(e.Covered())
				}
				expected := decimal.Max(in.PaidAmount, in.MonthlyFee.Mul(decimal.NewFromInt(int64(months))))
				assert.True(t, expected.Equal(in.PaidAmount.Add(p.Donation)))

				// each month rounds both parts by at most half a cent
				tolerance := decimal.New(1, -2).Mul(decimal.NewFromInt(int64(months)))
				diff := sum.Sub(expected).Abs()
				assert.True(t, diff.LessThanOrEqual(tolerance),
					"fee=%s paid=%s months=%d sum=%s expected=%s", fee, paid, months, sum, expected)
			}
		}
	}
}

func TestComputeRoundsToCents(t *testing.T) {
	p, err := fees.Compute(instruction("400", "100", 3, 0))
	require.NoError(t, err)
	assertMoney(t, "1100", p.Donation)
	assertMoney(t, "33.33", p.PaidPerMonth)
	assertMoney(t, "366.67", p.DonationPerMonth)
	for _, e := range p.Entries {
		assertMoney(t, "33.33", e.AmountPaid)
		assertMoney(t, "366.67", e.DonationApplied)
	}
}

func TestComputeInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   models.PaymentInstruction
	}{
		{"TestZeroMonths", instruction("500", "500", 0, 0)},
		{"TestThirteenMonths", instruction("500", "500", 13, 0)},
		{"TestNegativeStart", instruction("500", "500", 1, -1)},
		{"TestStartTwelve", instruction("500", "500", 1, 12)},
		{"TestNegativeFee", instruction("-1", "500", 1, 0)},
		{"TestNegativePaid", instruction("500", "-0.01", 1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fees.Compute(tt.in)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}
