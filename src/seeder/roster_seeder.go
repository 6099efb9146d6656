package seeder

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"
)

// RosterWriter is satisfied by database.PersonRepository.
type RosterWriter interface {
	Count(ctx context.Context) (int64, error)
	UpsertPersons(ctx context.Context, persons []models.Person) error
}

// SampleRoster นักเรียน 2 ห้อง + ครู 2 คน สำหรับ dev/demo
func SampleRoster() []models.Person {
	fee := decimal.NewFromInt(500)
	persons := []models.Person{
		{ID: "T-001", Kind: models.KindTeacher, SecondaryID: "EMP001", Name: "สมศรี ใจดี", EngName: "Somsri Jaidee", Phone: "0810000001", Subject: "Mathematics", Department: "Science", Active: true},
		{ID: "T-002", Kind: models.KindTeacher, SecondaryID: "EMP002", Name: "ประเสริฐ ทองคำ", EngName: "Prasert Thongkham", Subject: "Thai", Department: "Languages", Active: true},
	}
	classes := []struct {
		name, section string
		size          int
	}{
		{"P1", "A", 3},
		{"P2", "A", 3},
	}
	n := 1
	for _, cl := range classes {
		for i := 0; i < cl.size; i++ {
			persons = append(persons, models.Person{
				ID:            fmt.Sprintf("S-%03d", n),
				Kind:          models.KindStudent,
				SecondaryID:   fmt.Sprintf("STD%04d", n),
				EngName:       fmt.Sprintf("Student %d", n),
				GuardianPhone: fmt.Sprintf("08900000%02d", n),
				ClassName:     cl.name,
				Section:       cl.section,
				MonthlyFee:    fee,
				Active:        true,
			})
			n++
		}
	}
	return persons
}

// SeedSampleRoster writes SampleRoster only into an empty persons collection.
func SeedSampleRoster(ctx context.Context, repo RosterWriter) error {
	log := logger.Module("seeder")

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.WithField("persons", count).Info("roster already present, skip seeding")
		return nil
	}

	persons := SampleRoster()
	if err := repo.UpsertPersons(ctx, persons); err != nil {
		return err
	}
	log.WithField("persons", len(persons)).Info("✅ sample roster seeded")
	return nil
}
