package attendance

import (
	"context"
	"time"

	"Backend-Schoolhub/src/models"
)

type (
	// RosterStore is read-through: callers must not cache its result across scans.
	RosterStore interface {
		GetRoster(ctx context.Context, scope models.RosterScope) ([]models.Person, error)
		GetPerson(ctx context.Context, id string) (*models.Person, error)
	}

	RecordStore interface {
		// GetRecord returns nil, nil when no record exists for the key.
		GetRecord(ctx context.Context, personID, date string) (*models.AttendanceRecord, error)
		// InsertRecord creates the record only if the key is free; otherwise models.ErrRecordExists.
		InsertRecord(ctx context.Context, rec models.AttendanceRecord) (*models.AttendanceRecord, error)
		// UpsertStatus creates or updates status/recordedBy/updatedAt for the key in one write.
		UpsertStatus(ctx context.Context, rec models.AttendanceRecord) (*models.AttendanceRecord, error)
		// SetExitTime writes exit only while it is unset; false means nothing was written.
		SetExitTime(ctx context.Context, personID, date string, exit time.Time) (bool, error)
		ListRecords(ctx context.Context, date string) ([]models.AttendanceRecord, error)
	}

	// Locker serializes decide-then-persist for one (person, date) key across instances.
	Locker interface {
		Lock(ctx context.Context, key string) (unlock func(), err error)
	}

	// SessionStore keeps sequential scan sessions between requests.
	SessionStore interface {
		SaveSession(ctx context.Context, snap SessionSnapshot) error
		LoadSession(ctx context.Context, id string) (*SessionSnapshot, error)
	}
)
