package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_WithDefaults(t *testing.T) {
	// Clear any existing env vars that might interfere
	envVars := []string{
		"APP_NAME", "APP_ENVIRONMENT", "APP_DEBUG",
		"SERVER_HOST", "SERVER_PORT",
		"DATABASE_HOST", "DATABASE_PORT", "DATABASE_USER", "DATABASE_PASSWORD", "DATABASE_DBNAME",
		"REDIS_HOST", "REDIS_PORT",
		"KAFKA_BROKERS", "KAFKA_TOPIC",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_REQUESTS_PER_WINDOW", "RATE_LIMIT_WINDOW",
		"JWT_SECRET",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.App.Name != "event-management" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "event-management")
	}

	if cfg.App.Environment != "development" {
		t.Errorf("App.Environment = %q, want %q", cfg.App.Environment, "development")
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}

	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 5432)
	}

	if cfg.Database.DBName != "event_management" {
		t.Errorf("Database.DBName = %q, want %q", cfg.Database.DBName, "event_management")
	}

	if cfg.Redis.Port != 6379 {
		t.Errorf("Redis.Port = %d, want %d", cfg.Redis.Port, 6379)
	}

	if cfg.Kafka.Topic != "booking-events" {
		t.Errorf("Kafka.Topic = %q, want %q", cfg.Kafka.Topic, "booking-events")
	}

	if !cfg.RateLimit.Enabled {
		t.Error("RateLimit.Enabled = false, want true")
	}

	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("RateLimit.Window = %v, want %v", cfg.RateLimit.Window, time.Minute)
	}
}

func TestLoad_WithEnvOverride(t *testing.T) {
	os.Setenv("APP_NAME", "test-app")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("DATABASE_HOST", "db.example.com")
	os.Setenv("KAFKA_BROKERS", "kafka1:9092,kafka2:9092")
	defer func() {
		os.Unsetenv("APP_NAME")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("DATABASE_HOST")
		os.Unsetenv("KAFKA_BROKERS")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.App.Name != "test-app" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "test-app")
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}

	if cfg.Database.Host != "db.example.com" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "db.example.com")
	}

	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka2:9092" {
		t.Errorf("Kafka.Brokers = %v, want two brokers", cfg.Kafka.Brokers)
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
		SSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	if dsn := cfg.DSN(); dsn != expected {
		t.Errorf("DSN() = %q, want %q", dsn, expected)
	}
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{
		Host: "redis.example.com",
		Port: 6380,
	}

	expected := "redis.example.com:6380"
	if addr := cfg.Addr(); addr != expected {
		t.Errorf("Addr() = %q, want %q", addr, expected)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		App:      AppConfig{Name: "test", Environment: "development"},
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Host: "localhost", DBName: "testdb"},
		JWT:      JWTConfig{Secret: "secret"},
	}

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name:    "missing app name",
			mutate:  func(cfg *Config) { cfg.App.Name = "" },
			wantErr: true,
		},
		{
			name:    "invalid port",
			mutate:  func(cfg *Config) { cfg.Server.Port = -1 },
			wantErr: true,
		},
		{
			name:    "port too high",
			mutate:  func(cfg *Config) { cfg.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "missing database host",
			mutate:  func(cfg *Config) { cfg.Database.Host = "" },
			wantErr: true,
		},
		{
			name:    "missing database name",
			mutate:  func(cfg *Config) { cfg.Database.DBName = "" },
			wantErr: true,
		},
		{
			name:    "missing JWT secret",
			mutate:  func(cfg *Config) { cfg.JWT.Secret = "" },
			wantErr: true,
		},
		{
			name: "default JWT secret in production",
			mutate: func(cfg *Config) {
				cfg.App.Environment = "production"
				cfg.JWT.Secret = "your-secret-key-change-in-production"
			},
			wantErr: true,
		},
		{
			name: "rate limit enabled with zero quota",
			mutate: func(cfg *Config) {
				cfg.RateLimit.Enabled = true
				cfg.RateLimit.RequestsPerWindow = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "production"},
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}

	cfg.App.Environment = "development"
	if cfg.IsProduction() {
		t.Error("IsProduction() = true, want false")
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "development"},
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	cfg.App.Environment = "production"
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}
