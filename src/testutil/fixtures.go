// Package testutil holds roster fixtures and a controllable clock shared by package tests.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"Backend-Schoolhub/src/models"
)

// Bangkok is a fixed +07:00 zone so tests do not depend on the host tzdata.
var Bangkok = time.FixedZone("ICT", 7*60*60)

// At builds a wall-clock time on 2025-06-02 in Bangkok.
func At(hour, min, sec int) time.Time {
	return time.Date(2025, time.June, 2, hour, min, sec, 0, Bangkok)
}

const Date = "2025-06-02"

func Student(id, className string) models.Person {
	return models.Person{
		ID:            id,
		Kind:          models.KindStudent,
		SecondaryID:   "STD-" + id,
		EngName:       "Student " + id,
		ClassName:     className,
		Section:       "A",
		GuardianPhone: "089-" + id,
		MonthlyFee:    decimal.NewFromInt(500),
		Active:        true,
	}
}

func Teacher(id, name string) models.Person {
	return models.Person{
		ID:          id,
		Kind:        models.KindTeacher,
		SecondaryID: "EMP-" + id,
		EngName:     name,
		Department:  "Science",
		Phone:       "081-" + id,
		Active:      true,
	}
}

// Students returns n active students S-001.. in className.
func Students(n int, className string) []models.Person {
	out := make([]models.Person, n)
	for i := range out {
		out[i] = Student(fmt.Sprintf("S-%03d", i+1), className)
	}
	return out
}

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(t time.Time) *Clock { return &Clock{now: t} }

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Money parses a decimal literal and panics on bad input.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
