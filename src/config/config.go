package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // distroless images ship without zoneinfo

	"github.com/joho/godotenv"
)

// Config ค่าตั้งต้นของระบบ อ่านจาก .env / environment
type Config struct {
	MongoURI        string
	MongoDB         string
	RedisURI        string
	AppURI          string
	JWTSecret       string
	AllowedOrigins  string
	LogLevel        string
	LateCutoff      time.Duration // offset from midnight
	Location        *time.Location
	SummaryCacheTTL time.Duration
	SeedSampleData  bool
}

// Load reads .env (if present) then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	cutoff, err := ParseClock(getEnv("ATTENDANCE_LATE_CUTOFF", "09:00"))
	if err != nil {
		return nil, fmt.Errorf("ATTENDANCE_LATE_CUTOFF: %w", err)
	}

	loc, err := time.LoadLocation(getEnv("ATTENDANCE_TZ", "Asia/Bangkok"))
	if err != nil {
		return nil, fmt.Errorf("ATTENDANCE_TZ: %w", err)
	}

	return &Config{
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         getEnv("MONGO_DB", "SchoolhubDB"),
		RedisURI:        os.Getenv("REDIS_URI"),
		AppURI:          getEnv("APP_URI", "8888"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LateCutoff:      cutoff,
		Location:        loc,
		SummaryCacheTTL: time.Duration(intFromEnv("SUMMARY_CACHE_TTL_MINUTES", 60)) * time.Minute,
		SeedSampleData:  boolFromEnv("SEED_SAMPLE_ROSTER", false),
	}, nil
}

// ParseClock parses "HH:MM" into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q, want HH:MM", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolFromEnv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
