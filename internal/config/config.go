package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yml"

type AppConfig struct {
	Port          int    `yaml:"port"`
	GinMode       string `yaml:"gin_mode"`
	CurrencyLabel string `yaml:"currency_label"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	SessionTTL string `yaml:"session_ttl"`
}

type OTPConfig struct {
	ResendWait      string `yaml:"resend_wait"`
	AttemptsAllowed int    `yaml:"attempts_allowed"`
	PhoneMinLength  int    `yaml:"phone_min_length"`
	CodeLength      int    `yaml:"code_length"`
	FlowTTL         string `yaml:"flow_ttl"`
	LoginDelay      string `yaml:"login_delay"`
}

type CatalogConfig struct {
	PageSize int    `yaml:"page_size"`
	CacheTTL string `yaml:"cache_ttl"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
	OpsNumber  string `yaml:"ops_number"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Log      LogConfig      `yaml:"log"`
	Backend  BackendConfig  `yaml:"backend"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Twilio   TwilioConfig   `yaml:"twilio"`
}

type Config struct {
	Port          string
	GinMode       string
	CurrencyLabel string

	LogLevel    string
	LogEncoding string

	BackendURL     string
	BackendTimeout time.Duration

	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	JWTIssuer  string
	SessionTTL time.Duration

	OTP_ResendWait      time.Duration
	OTP_AttemptsAllowed int
	OTP_PhoneMinLength  int
	OTP_CodeLength      int
	OTP_FlowTTL         time.Duration
	OTP_LoginDelay      time.Duration

	CatalogPageSize int
	CatalogCacheTTL time.Duration

	TwilioSID   string
	TwilioToken string
	TwilioFrom  string
	TwilioOps   string
}

type durationField struct {
	name  string
	value string
	dst   *time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// defaults are applied before the file is read, so a partial file is enough
func defaultConfigFile() ConfigFile {
	return ConfigFile{
		App:     AppConfig{Port: 8080, GinMode: "release", CurrencyLabel: "تومان"},
		Log:     LogConfig{Level: "info", Encoding: "json"},
		Backend: BackendConfig{Timeout: "15s"},
		Redis:   RedisConfig{Addr: "localhost:6379"},
		JWT:     JWTConfig{Issuer: "urmu-storefront", SessionTTL: "720h"},
		OTP: OTPConfig{
			ResendWait:      "60s",
			AttemptsAllowed: 5,
			PhoneMinLength:  11,
			CodeLength:      4,
			FlowTTL:         "15m",
			LoginDelay:      "0s",
		},
		Catalog: CatalogConfig{PageSize: 12, CacheTTL: "30s"},
	}
}

// Load reads the YAML file at path, then applies STOREFRONT_* environment overrides.
func Load(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return FromFile(configFile)
}

// FromFile converts a parsed file into a validated Config
func FromFile(configFile *ConfigFile) (*Config, error) {
	cfg := &Config{}
	durations := []durationField{
		{"backend timeout", env("STOREFRONT_BACKEND_TIMEOUT", configFile.Backend.Timeout), &cfg.BackendTimeout},
		{"JWT session TTL", configFile.JWT.SessionTTL, &cfg.SessionTTL},
		{"OTP resend wait", configFile.OTP.ResendWait, &cfg.OTP_ResendWait},
		{"OTP flow TTL", configFile.OTP.FlowTTL, &cfg.OTP_FlowTTL},
		{"OTP login delay", configFile.OTP.LoginDelay, &cfg.OTP_LoginDelay},
		{"catalog cache TTL", configFile.Catalog.CacheTTL, &cfg.CatalogCacheTTL},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*d.dst = v
	}

	redisDB := configFile.Redis.DB
	if v := os.Getenv("STOREFRONT_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid STOREFRONT_REDIS_DB: %w", err)
		}
		redisDB = n
	}

	cfg.Port = env("STOREFRONT_PORT", strconv.Itoa(configFile.App.Port))
	cfg.GinMode = configFile.App.GinMode
	cfg.CurrencyLabel = configFile.App.CurrencyLabel
	cfg.LogLevel = env("STOREFRONT_LOG_LEVEL", configFile.Log.Level)
	cfg.LogEncoding = configFile.Log.Encoding
	cfg.BackendURL = env("STOREFRONT_BACKEND_URL", configFile.Backend.BaseURL)
	cfg.DSN = env("STOREFRONT_DATABASE_DSN", configFile.Database.DSN)
	cfg.RedisAddr = env("STOREFRONT_REDIS_ADDR", configFile.Redis.Addr)
	cfg.RedisPassword = env("STOREFRONT_REDIS_PASSWORD", configFile.Redis.Password)
	cfg.RedisDB = redisDB
	cfg.JWTSecret = env("STOREFRONT_JWT_SECRET", configFile.JWT.Secret)
	cfg.JWTIssuer = configFile.JWT.Issuer
	cfg.OTP_AttemptsAllowed = configFile.OTP.AttemptsAllowed
	cfg.OTP_PhoneMinLength = configFile.OTP.PhoneMinLength
	cfg.OTP_CodeLength = configFile.OTP.CodeLength
	cfg.CatalogPageSize = configFile.Catalog.PageSize
	cfg.TwilioSID = env("STOREFRONT_TWILIO_SID", configFile.Twilio.AccountSID)
	cfg.TwilioToken = env("STOREFRONT_TWILIO_TOKEN", configFile.Twilio.AuthToken)
	cfg.TwilioFrom = env("STOREFRONT_TWILIO_FROM", configFile.Twilio.FromNumber)
	cfg.TwilioOps = env("STOREFRONT_TWILIO_OPS", configFile.Twilio.OpsNumber)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.BackendURL == "" {
		errs = append(errs, errors.New("backend.base_url is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.BackendTimeout <= 0 {
		errs = append(errs, errors.New("backend.timeout must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("jwt.session_ttl must be positive"))
	}
	if c.OTP_ResendWait <= 0 {
		errs = append(errs, errors.New("otp.resend_wait must be positive"))
	}
	if c.OTP_FlowTTL <= 0 {
		errs = append(errs, errors.New("otp.flow_ttl must be positive"))
	}
	if c.OTP_LoginDelay < 0 {
		errs = append(errs, errors.New("otp.login_delay cannot be negative"))
	}
	if c.OTP_PhoneMinLength <= 0 || c.OTP_CodeLength <= 0 {
		errs = append(errs, errors.New("otp.phone_min_length and otp.code_length must be positive"))
	}
	if c.CatalogPageSize <= 0 || c.CatalogPageSize > 100 {
		errs = append(errs, errors.New("catalog.page_size must be between 1 and 100"))
	}
	return errors.Join(errs...)
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	config := defaultConfigFile()
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
