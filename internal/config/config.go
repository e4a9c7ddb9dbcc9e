// Package config loads service configuration from the environment.
//
// Secrets (JWT key, administrator override credentials) are required and the
// service refuses to start without them; everything else has a sensible
// default for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Config holds the full service configuration.
type Config struct {
	Port   int
	DBPath string

	// JWTSecret signs session tokens. Required.
	JWTSecret string
	TokenTTL  time.Duration

	// AdminUsername and AdminPasswordHash configure the privileged
	// administrator override. The hash is a bcrypt hash, never a plaintext
	// password. Both are required; there is no default administrator.
	AdminUsername     string
	AdminPasswordHash string

	// Candidates is the fixed candidate set for this deployment.
	Candidates []string

	// RequiredDocTokens are extra tokens (beyond NPM and name) that must
	// appear in the KRS document text, e.g. the election year.
	RequiredDocTokens []string

	// CascadePath points at the pigo face-detection cascade model file.
	// Required.
	CascadePath string

	// FaceScaleFactor (>1) and FaceMinNeighbors (>=1) tune the face
	// detector; defaults match the source system's cascade parameters.
	FaceScaleFactor  float64
	FaceMinNeighbors int

	// VerifyWorkers bounds concurrent document/face verification work.
	VerifyWorkers int

	// LocationTag is stamped on every audit entry.
	LocationTag string

	// AuditDuplicateRegistration controls whether a rejected duplicate
	// registration still writes an audit entry. Default: off.
	AuditDuplicateRegistration bool
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:                       3100,
		DBPath:                     getEnv("DB_PATH", "./data/pemira.db"),
		JWTSecret:                  os.Getenv("JWT_SECRET"),
		TokenTTL:                   24 * time.Hour,
		AdminUsername:              os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash:          os.Getenv("ADMIN_PASSWORD_HASH"),
		Candidates:                 splitList(getEnv("CANDIDATES", "Kandidat 01,Kandidat 02")),
		RequiredDocTokens:          splitList(getEnv("DOC_REQUIRED_TOKENS", "2024")),
		CascadePath:                os.Getenv("FACE_CASCADE_PATH"),
		FaceScaleFactor:            1.3,
		FaceMinNeighbors:           5,
		VerifyWorkers:              runtime.GOMAXPROCS(0),
		LocationTag:                getEnv("AUDIT_LOCATION", "Jakarta"),
		AuditDuplicateRegistration: getEnv("AUDIT_DUPLICATE_REGISTRATION", "") == "true",
	}

	var err error
	if cfg.Port, err = intEnv("PORT", cfg.Port); err != nil {
		return Config{}, err
	}
	if cfg.VerifyWorkers, err = intEnv("VERIFY_WORKERS", cfg.VerifyWorkers); err != nil {
		return Config{}, err
	}
	if cfg.FaceMinNeighbors, err = intEnv("FACE_MIN_NEIGHBORS", cfg.FaceMinNeighbors); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("FACE_SCALE_FACTOR"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FACE_SCALE_FACTOR %q: %w", v, err)
		}
		cfg.FaceScaleFactor = f
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL %q: %w", v, err)
		}
		cfg.TokenTTL = d
	}

	// Secrets and model files must be provided explicitly.
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}
	if cfg.AdminUsername == "" || cfg.AdminPasswordHash == "" {
		return Config{}, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD_HASH required")
	}
	if cfg.CascadePath == "" {
		return Config{}, errors.New("FACE_CASCADE_PATH required")
	}
	if len(cfg.Candidates) < 2 {
		return Config{}, errors.New("CANDIDATES must list at least two candidates")
	}
	if cfg.FaceScaleFactor <= 1 {
		return Config{}, errors.New("FACE_SCALE_FACTOR must be greater than 1")
	}
	if cfg.FaceMinNeighbors < 1 {
		return Config{}, errors.New("FACE_MIN_NEIGHBORS must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
