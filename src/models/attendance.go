package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout รูปแบบ date key ของวัน (ไม่มีเวลา)
const DateLayout = "2006-01-02"

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusLeave   AttendanceStatus = "leave"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusLeave:
		return true
	}
	return false
}

type AttendanceSource string

const (
	SourceManual AttendanceSource = "manual"
	SourceQRScan AttendanceSource = "qr_scan"
)

// AttendanceEvent เหตุการณ์เช็คชื่อหนึ่งครั้ง (manual หรือ scan)
type AttendanceEvent struct {
	PersonID   string           `json:"personId"`
	Date       string           `json:"date"`
	Status     AttendanceStatus `json:"status"`
	Source     AttendanceSource `json:"source"`
	OccurredAt time.Time        `json:"occurredAt"`
	RecordedBy string           `json:"recordedBy"`
	EntryTime  *time.Time       `json:"entryTime,omitempty"`
	ExitTime   *time.Time       `json:"exitTime,omitempty"`
}

// AttendanceRecord มีได้เพียงหนึ่ง record ต่อ (personId, date)
type AttendanceRecord struct {
	ID         string           `bson:"_id,omitempty" json:"id"`
	PersonID   string           `bson:"personId" json:"personId"`
	Kind       PersonKind       `bson:"kind" json:"kind"`
	Date       string           `bson:"date" json:"date"`
	Status     AttendanceStatus `bson:"status" json:"status"`
	Source     AttendanceSource `bson:"source" json:"source"`
	EntryTime  *time.Time       `bson:"entryTime,omitempty" json:"entryTime,omitempty"`
	ExitTime   *time.Time       `bson:"exitTime,omitempty" json:"exitTime,omitempty"`
	RecordedBy string           `bson:"recordedBy" json:"recordedBy"`
	MarkedAt   time.Time        `bson:"markedAt" json:"markedAt"`
	UpdatedAt  time.Time        `bson:"updatedAt" json:"updatedAt"`
}

func (r AttendanceRecord) Key() string { return RecordKey(r.PersonID, r.Date) }

func (r AttendanceRecord) HasExit() bool { return r.ExitTime != nil && !r.ExitTime.IsZero() }

// Event describes the change that produced r at occurredAt.
func (r AttendanceRecord) Event(occurredAt time.Time) AttendanceEvent {
	return AttendanceEvent{
		PersonID:   r.PersonID,
		Date:       r.Date,
		Status:     r.Status,
		Source:     r.Source,
		OccurredAt: occurredAt,
		RecordedBy: r.RecordedBy,
		EntryTime:  r.EntryTime,
		ExitTime:   r.ExitTime,
	}
}

// RecordKey builds the (personId, date) identity used by stores and locks.
func RecordKey(personID, date string) string {
	return personID + "|" + date
}

// DateKey แปลงเวลาเป็น date key ตาม location ของเวลานั้น
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey validates a YYYY-MM-DD key and returns it normalized.
func ParseDateKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t.Format(DateLayout), nil
}

// DailyAttendanceSummary สรุปการเข้าเรียน/เข้างานรายวันของกลุ่มหนึ่ง
type DailyAttendanceSummary struct {
	Date       string `json:"date"`
	Registered int    `json:"registered"`
	Present    int    `json:"present"`
	Late       int    `json:"late"`
	Absent     int    `json:"absent"`
	Leave      int    `json:"leave"`
	Unmarked   int    `json:"unmarked"`
}
