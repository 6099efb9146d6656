package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"TestNineAM", "09:00", 9 * time.Hour, false},
		{"TestHalfPast", " 08:30 ", 8*time.Hour + 30*time.Minute, false},
		{"TestMidnight", "00:00", 0, false},
		{"TestSeconds", "09:00:00", 0, true},
		{"TestGarbage", "nine", 0, true},
		{"TestOutOfRange", "25:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("TestDefaults", func(t *testing.T) {
		for _, k := range []string{"MONGO_DB", "APP_URI", "ATTENDANCE_LATE_CUTOFF", "ATTENDANCE_TZ", "SUMMARY_CACHE_TTL_MINUTES", "SEED_SAMPLE_ROSTER"} {
			t.Setenv(k, "")
		}

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "SchoolhubDB", cfg.MongoDB)
		assert.Equal(t, "8888", cfg.AppURI)
		assert.Equal(t, 9*time.Hour, cfg.LateCutoff)
		assert.Equal(t, "Asia/Bangkok", cfg.Location.String())
		assert.Equal(t, time.Hour, cfg.SummaryCacheTTL)
		assert.False(t, cfg.SeedSampleData)
	})

	t.Run("TestOverrides", func(t *testing.T) {
		t.Setenv("ATTENDANCE_LATE_CUTOFF", "08:15")
		t.Setenv("ATTENDANCE_TZ", "UTC")
		t.Setenv("SUMMARY_CACHE_TTL_MINUTES", "5")
		t.Setenv("SEED_SAMPLE_ROSTER", "true")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8*time.Hour+15*time.Minute, cfg.LateCutoff)
		assert.Equal(t, time.UTC, cfg.Location)
		assert.Equal(t, 5*time.Minute, cfg.SummaryCacheTTL)
		assert.True(t, cfg.SeedSampleData)
	})

	t.Run("TestBadCutoff", func(t *testing.T) {
		t.Setenv("ATTENDANCE_LATE_CUTOFF", "late")
		_, err := Load()
		assert.ErrorContains(t, err, "ATTENDANCE_LATE_CUTOFF")
	})

	t.Run("TestBadTimezone", func(t *testing.T) {
		t.Setenv("ATTENDANCE_LATE_CUTOFF", "")
		t.Setenv("ATTENDANCE_TZ", "Mars/Olympus")
		_, err := Load()
		assert.ErrorContains(t, err, "ATTENDANCE_TZ")
	})
}
