package config

import "time"

// Config holds runtime configuration for the API service. It is loaded once
// at process start and passed by value into every component that needs it;
// nothing reads the environment after Load returns.
type Config struct {
	Environment   string
	Addr          string
	DatabaseURL   string
	MigrationsDir string
	AutoMigrate   bool
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	LogLevel      string
}

// Load constructs a Config from environment variables.
func Load() Config {
	return Config{
		Environment:   GetString("APP_ENV", "development"),
		Addr:          GetString("API_ADDR", ":5000"),
		DatabaseURL:   GetString("DATABASE_URL", "postgres://jobtrack:jobtrack@db:5432/jobtrack?sslmode=disable"),
		MigrationsDir: GetString("DB_MIGRATIONS_DIR", "db/migrations"),
		AutoMigrate:   GetBool("DB_AUTO_MIGRATE", true),
		JWTSecret:     GetString("JWT_SECRET", "change-me-in-production"),
		TokenTTL:      GetDuration("JWT_TTL", 168*time.Hour),
		BcryptCost:    GetInt("BCRYPT_COST", 12),
		LogLevel:      GetString("LOG_LEVEL", "info"),
	}
}

// IsDevelopment reports whether the process runs in development mode.
// Error responses include extra diagnostics only in this mode.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}
