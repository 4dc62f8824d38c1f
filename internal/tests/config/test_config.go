package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/urmu/storefront/internal/config"
)

// overridden lists the environment variables that would leak a developer's
// local setup into the tests
var overridden = []string{
	"STOREFRONT_PORT",
	"STOREFRONT_LOG_LEVEL",
	"STOREFRONT_BACKEND_URL",
	"STOREFRONT_BACKEND_TIMEOUT",
	"STOREFRONT_DATABASE_DSN",
	"STOREFRONT_REDIS_ADDR",
	"STOREFRONT_REDIS_PASSWORD",
	"STOREFRONT_REDIS_DB",
	"STOREFRONT_JWT_SECRET",
	"STOREFRONT_TWILIO_SID",
	"STOREFRONT_TWILIO_TOKEN",
	"STOREFRONT_TWILIO_FROM",
	"STOREFRONT_TWILIO_OPS",
}

// LoadTestConfig writes a config file pointing at the given backend and
// redis, then loads it the way the service does.
func LoadTestConfig(t *testing.T, backendURL, redisAddr string) *config.Config {
	t.Helper()

	for _, k := range overridden {
		t.Setenv(k, "")
	}

	file := config.ConfigFile{
		App:      config.AppConfig{Port: 0, GinMode: "test", CurrencyLabel: "تومان"},
		Log:      config.LogConfig{Level: "debug", Encoding: "console"},
		Backend:  config.BackendConfig{BaseURL: backendURL, Timeout: "2s"},
		Database: config.DatabaseConfig{DSN: "sqlite://:memory:"},
		Redis:    config.RedisConfig{Addr: redisAddr},
		JWT:      config.JWTConfig{Secret: "e2e-test-secret-with-enough-length", Issuer: "urmu-storefront-test", SessionTTL: "1h"},
		OTP: config.OTPConfig{
			ResendWait:      "60s",
			AttemptsAllowed: 5,
			PhoneMinLength:  11,
			CodeLength:      4,
			FlowTTL:         "15m",
			LoginDelay:      "0s",
		},
		Catalog: config.CatalogConfig{PageSize: 12, CacheTTL: "30s"},
		Twilio:  config.TwilioConfig{OpsNumber: "09350000000"},
	}

	raw, err := yaml.Marshal(file)
	if err != nil {
		t.Fatalf("Failed to encode test configuration: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("Failed to write test configuration: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Failed to load test configuration: %v", err)
	}
	return cfg
}
