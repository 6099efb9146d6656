package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentInstruction คำสั่งรับชำระค่าเทอมรายเดือน (จ่ายล่วงหน้าได้หลายเดือน)
type PaymentInstruction struct {
	PersonID        string          `json:"personId" validate:"required"`
	MonthlyFee      decimal.Decimal `json:"monthlyFee"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	NumberOfMonths  int             `json:"numberOfMonths" validate:"min=1,max=12"`
	StartMonthIndex int             `json:"startMonthIndex" validate:"min=0,max=11"`
	VoucherNumber   string          `json:"voucherNumber" validate:"required"`
	PaymentMethod   string          `json:"paymentMethod" validate:"required"`
	Date            string          `json:"date" validate:"required,datetime=2006-01-02"`
	CollectedBy     string          `json:"collectedBy"`
}

// LedgerEntry หนึ่งเดือนที่ถูกชำระ (paid + donation)
type LedgerEntry struct {
	ID              string          `bson:"_id,omitempty" json:"id"`
	BatchID         string          `bson:"batchId" json:"batchId"`
	PersonID        string          `bson:"personId" json:"personId"`
	ClassName       string          `bson:"className,omitempty" json:"className,omitempty"`
	MonthIndex      int             `bson:"monthIndex" json:"monthIndex"`
	AmountPaid      decimal.Decimal `bson:"amountPaid" json:"amountPaid"`
	DonationApplied decimal.Decimal `bson:"donationApplied" json:"donationApplied"`
	VoucherNumber   string          `bson:"voucherNumber" json:"voucherNumber"`
	PaymentMethod   string          `bson:"paymentMethod" json:"paymentMethod"`
	CollectedBy     string          `bson:"collectedBy" json:"collectedBy"`
	Date            string          `bson:"date" json:"date"`
	CreatedAt       time.Time       `bson:"createdAt" json:"createdAt"`
}

// Covered is the month's total: paid plus donation.
func (e LedgerEntry) Covered() decimal.Decimal {
	return e.AmountPaid.Add(e.DonationApplied)
}

// Proration ผลการคำนวณแบ่งยอดรายเดือนของหนึ่ง instruction
type Proration struct {
	TotalExpected    decimal.Decimal `json:"totalExpected"`
	Donation         decimal.Decimal `json:"donation"`
	PaidPerMonth     decimal.Decimal `json:"paidPerMonth"`
	DonationPerMonth decimal.Decimal `json:"donationPerMonth"`
	Entries          []LedgerEntry   `json:"entries"`
}

// MonthIndexes returns the covered month indexes in emission order.
func (p Proration) MonthIndexes() []int {
	idx := make([]int, len(p.Entries))
	for i, e := range p.Entries {
		idx[i] = e.MonthIndex
	}
	return idx
}

// ClassFeeSummary สรุปยอดค่าเทอมต่อห้องเรียน
type ClassFeeSummary struct {
	ClassName        string          `json:"className"`
	MonthlyFee       decimal.Decimal `json:"monthlyFee"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalDonation    decimal.Decimal `json:"totalDonation"`
	TotalDue         decimal.Decimal `json:"totalDue"`
	PaidPersonCount  int             `json:"paidPersonCount"`
	TotalPersonCount int             `json:"totalPersonCount"`
}

// ReportWindow limits aggregation to entries dated within [From, To]; empty bounds are open.
type ReportWindow struct {
	From string `json:"from,omitempty" query:"from"`
	To   string `json:"to,omitempty" query:"to"`
}

func (w ReportWindow) Contains(date string) bool {
	if w.From != "" && date < w.From {
		return false
	}
	if w.To != "" && date > w.To {
		return false
	}
	return true
}

type LedgerChangeType string

const (
	LedgerInserted LedgerChangeType = "insert"
	LedgerUpdated  LedgerChangeType = "update"
	LedgerDeleted  LedgerChangeType = "delete"
)

// LedgerChange push notification จาก store เมื่อ ledger เปลี่ยน
type LedgerChange struct {
	Type     LedgerChangeType `json:"type"`
	EntryID  string           `json:"entryId,omitempty"`
	PersonID string           `json:"personId,omitempty"`
	At       time.Time        `json:"at"`
}
