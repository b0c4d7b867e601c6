package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"shopsecure/internal/jobs"
)

type Config struct {
	HTTPPort       string
	AllowedOrigins []string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	UploadDir string

	JWTSecret string
	JWTTTL    time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPSender   string
	SMTPPassword string

	AdminEmail    string
	AdminPassword string

	PasscodeExpiry      time.Duration
	PasscodeMaxAttempts int
	PasscodeRateEvery   time.Duration
	PasscodeRateBurst   int

	LoginMaxFailures int

	RiskAcceptBelow float64
	RiskRejectAbove float64
	MaxFeatures     int

	RetrySchedule  string
	RetryBatchSize int
}

// DSN builds the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// ConfigFromEnv reads the process environment. Unset optional values take
// their defaults; malformed values are reported together.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	r := envReader{getenv: getenv}

	cfg := Config{
		HTTPPort:       r.str("HTTP_PORT", "8080"),
		AllowedOrigins: r.list("CORS_ALLOWED_ORIGINS"),

		DBHost:     r.str("DB_HOST", "localhost"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.str("DB_USER", "postgres"),
		DBPassword: r.str("DB_PASSWORD", ""),
		DBName:     r.str("DB_NAME", "shopsecure"),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),

		UploadDir: r.str("UPLOAD_DIR", "uploads"),

		JWTSecret: r.str("JWT_SECRET", ""),
		JWTTTL:    r.duration("JWT_TTL", 24*time.Hour),

		SMTPHost:     r.str("SMTP_HOST", ""),
		SMTPPort:     r.int("SMTP_PORT", 465),
		SMTPSender:   r.str("SMTP_SENDER", ""),
		SMTPPassword: r.str("SMTP_PASSWORD", ""),

		AdminEmail:    r.str("ADMIN_EMAIL", ""),
		AdminPassword: r.str("ADMIN_PASSWORD", ""),

		PasscodeExpiry:      r.duration("PASSCODE_EXPIRY", 2*time.Minute),
		PasscodeMaxAttempts: r.int("PASSCODE_MAX_ATTEMPTS", 3),
		PasscodeRateEvery:   r.duration("PASSCODE_RATE_EVERY", 20*time.Second),
		PasscodeRateBurst:   r.int("PASSCODE_RATE_BURST", 3),

		LoginMaxFailures: r.int("LOGIN_MAX_FAILURES", 5),

		RiskAcceptBelow: r.float("RISK_ACCEPT_BELOW", 30),
		RiskRejectAbove: r.float("RISK_REJECT_ABOVE", 70),
		MaxFeatures:     r.int("MAX_FEATURES", 1000),

		RetrySchedule:  r.str("NOTIFICATION_RETRY_SCHEDULE", jobs.DefaultRetrySchedule),
		RetryBatchSize: r.int("NOTIFICATION_RETRY_BATCH_SIZE", 50),
	}

	if cfg.JWTSecret == "" {
		r.errs = append(r.errs, errors.New("JWT_SECRET is required"))
	}

	return cfg, errors.Join(r.errs...)
}

type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) str(key, def string) string {
	if v := r.getenv(key); v != "" {
		return v
	}
	return def
}

func (r *envReader) list(key string) []string {
	v := r.getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *envReader) int(key string, def int) int {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (r *envReader) float(key string, def float64) float64 {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := r.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}
