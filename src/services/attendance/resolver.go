package attendance

import (
	"fmt"
	"strings"

	"Backend-Schoolhub/src/models"
)

// ResolvePerson maps a raw QR payload to a roster entry.
// Passes run in order (exact, substring either way, case-insensitive substring) and the
// first roster entry matching in a pass wins.
func ResolvePerson(payload string, roster []models.Person) (models.Person, error) {
	p := strings.TrimSpace(payload)
	if p == "" {
		return models.Person{}, fmt.Errorf("%w: empty scan payload", models.ErrPersonNotFound)
	}

	passes := []func(field string) bool{
		func(f string) bool { return f == p },
		func(f string) bool { return strings.Contains(f, p) || strings.Contains(p, f) },
		func(f string) bool {
			lf, lp := strings.ToLower(f), strings.ToLower(p)
			return strings.Contains(lf, lp) || strings.Contains(lp, lf)
		},
	}
	for _, match := range passes {
		for _, person := range roster {
			for _, field := range person.MatchFields() {
				if match(field) {
					return person, nil
				}
			}
		}
	}
	return models.Person{}, fmt.Errorf("%w: no roster entry matches %q", models.ErrPersonNotFound, p)
}
