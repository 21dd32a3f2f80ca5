package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	SMTP       SMTPConfig
	Attendance AttendanceConfig
	Payroll    PayrollConfig
	Cron       CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// AttendanceConfig holds check-in policy
type AttendanceConfig struct {
	// LateAfter is the wall-clock time (HH:MM) after which a check-in is late.
	LateAfter string
	// AbsentMarkHour is the local hour after which missing records are marked Absent.
	AbsentMarkHour int
}

// PayrollConfig holds the payroll constants
type PayrollConfig struct {
	WorkingDays int
	LatePenalty decimal.Decimal
	CycleDay    int
	Currency    string
}

type CronConfig struct {
	Enabled  bool
	Interval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Kolkata"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@localhost"),
		FromName: getEnv("SMTP_FROM_NAME", "HR Attendance"),
	}

	// Attendance policy
	absentHour, err := strconv.Atoi(getEnv("ATTENDANCE_ABSENT_MARK_HOUR", "23"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_ABSENT_MARK_HOUR: %w", err)
	}

	config.Attendance = AttendanceConfig{
		LateAfter:      getEnv("ATTENDANCE_LATE_AFTER", "09:30"),
		AbsentMarkHour: absentHour,
	}

	// Payroll constants
	workingDays, err := strconv.Atoi(getEnv("PAYROLL_WORKING_DAYS", "22"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_WORKING_DAYS: %w", err)
	}

	latePenalty, err := decimal.NewFromString(getEnv("PAYROLL_LATE_PENALTY", "200"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_LATE_PENALTY: %w", err)
	}

	cycleDay, err := strconv.Atoi(getEnv("PAYROLL_CYCLE_DAY", "23"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_CYCLE_DAY: %w", err)
	}

	config.Payroll = PayrollConfig{
		WorkingDays: workingDays,
		LatePenalty: latePenalty,
		CycleDay:    cycleDay,
		Currency:    getEnv("PAYROLL_CURRENCY", "INR"),
	}

	cronInterval, err := time.ParseDuration(getEnv("CRON_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_INTERVAL: %w", err)
	}

	config.Cron = CronConfig{
		Enabled:  getEnv("CRON_ENABLED", "true") == "true",
		Interval: cronInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.Parse("15:04", c.Attendance.LateAfter); err != nil {
		return fmt.Errorf("ATTENDANCE_LATE_AFTER must be HH:MM: %w", err)
	}
	if c.Attendance.AbsentMarkHour < 0 || c.Attendance.AbsentMarkHour > 23 {
		return fmt.Errorf("ATTENDANCE_ABSENT_MARK_HOUR must be between 0 and 23")
	}
	if c.Payroll.WorkingDays <= 0 {
		return fmt.Errorf("PAYROLL_WORKING_DAYS must be positive")
	}
	if c.Payroll.LatePenalty.IsNegative() {
		return fmt.Errorf("PAYROLL_LATE_PENALTY must not be negative")
	}
	// Day 28 is the last day every month has.
	if c.Payroll.CycleDay < 1 || c.Payroll.CycleDay > 28 {
		return fmt.Errorf("PAYROLL_CYCLE_DAY must be between 1 and 28")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the configured business timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
