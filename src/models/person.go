package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

type PersonKind string

const (
	KindStudent PersonKind = "student"
	KindTeacher PersonKind = "teacher"
)

// Person นักเรียนหรือครูใน roster (read-only สำหรับ core)
type Person struct {
	ID            string          `bson:"_id" json:"id"`
	Kind          PersonKind      `bson:"kind" json:"kind"`
	SecondaryID   string          `bson:"secondaryId,omitempty" json:"secondaryId,omitempty"` // student code / staff no.
	Name          string          `bson:"name,omitempty" json:"name,omitempty"`
	EngName       string          `bson:"engName,omitempty" json:"engName,omitempty"`
	Nickname      string          `bson:"nickname,omitempty" json:"nickname,omitempty"`
	Phone         string          `bson:"phone,omitempty" json:"phone,omitempty"`
	GuardianPhone string          `bson:"guardianPhone,omitempty" json:"guardianPhone,omitempty"`
	ClassName     string          `bson:"className,omitempty" json:"className,omitempty"`
	Section       string          `bson:"section,omitempty" json:"section,omitempty"`
	Subject       string          `bson:"subject,omitempty" json:"subject,omitempty"`
	Department    string          `bson:"department,omitempty" json:"department,omitempty"`
	MonthlyFee    decimal.Decimal `bson:"monthlyFee" json:"monthlyFee"`
	Active        bool            `bson:"active" json:"active"`
}

func (p Person) IsTeacher() bool { return p.Kind == KindTeacher }

// DisplayName: Name, EngName, Nickname, SecondaryID, ID
func (p Person) DisplayName() string {
	return firstNonEmpty(p.Name, p.EngName, p.Nickname, p.SecondaryID, p.ID)
}

// ContactPhone: Phone, then GuardianPhone
func (p Person) ContactPhone() string {
	return firstNonEmpty(p.Phone, p.GuardianPhone)
}

// Group คือ class ของนักเรียน หรือ department ของครู
func (p Person) Group() string {
	if p.IsTeacher() {
		return p.Department
	}
	return p.ClassName
}

// MatchFields are the roster fields a scan payload is compared against, in order.
func (p Person) MatchFields() []string {
	fields := make([]string, 0, 4)
	for _, f := range []string{p.ID, p.SecondaryID, p.Name, p.EngName} {
		if strings.TrimSpace(f) != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// RosterScope เลือกกลุ่มคนที่ต้องการจาก roster
type RosterScope struct {
	Kind      PersonKind `json:"kind" query:"kind"`
	ClassName string     `json:"className,omitempty" query:"className"`
	Section   string     `json:"section,omitempty" query:"section"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
