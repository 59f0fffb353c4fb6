package config

import (
	"crypto/rsa"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stevedao0/contract-service/internal/middleware"
	"github.com/stevedao0/contract-service/internal/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	Env              string
	AppPort          string
	AppUrl           string

	// DBDriver is "postgres" or "sqlite".
	DBDriver   string
	DBUrl      string
	SQLitePath string

	RSAPublicKey *rsa.PublicKey
	TokenIssuer  string

	AuditRetention   time.Duration
	AuditCleanupCron string

	SeedDbWithTestData bool
	CORSHighSecurity   bool
}

const (
	OrganizationName = utils.OrganizationName

	EnvDev = "dev"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultAppPort          = "8080"
	DefaultSQLitePath       = "data/contracts.db"
	DefaultAuditRetention   = 365 * 24 * time.Hour
	DefaultAuditCleanupCron = "0 3 * * *"
)

// build-time override, set with -ldflags
var AppName = "contract-service"

// fileConfig is the optional YAML file. Environment variables win over it.
type fileConfig struct {
	Env                string `yaml:"env"`
	AppPort            string `yaml:"app_port"`
	AppUrl             string `yaml:"app_url"`
	DBDriver           string `yaml:"db_driver"`
	DBUrl              string `yaml:"db_url"`
	SQLitePath         string `yaml:"sqlite_path"`
	RSAPublicKeyBase64 string `yaml:"rsa_public_key_base64"`
	TokenIssuer        string `yaml:"token_issuer"`
	AuditRetentionDays *int   `yaml:"audit_retention_days"`
	AuditCleanupCron   string `yaml:"audit_cleanup_cron"`
	SeedDbWithTestData *bool  `yaml:"seed_db_with_test_data"`
	CORSHighSecurity   *bool  `yaml:"cors_high_security"`
}

// Load reads the YAML file at path (skipped when path is empty), overlays
// the environment, fills defaults and validates the result.
func Load(path string) (*Config, error) {
	var fc fileConfig
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		OrganizationName: OrganizationName,
		AppName:          AppName,
		Env:              firstNonEmpty(os.Getenv("ENV"), fc.Env, EnvDev),
		AppPort:          firstNonEmpty(os.Getenv("APP_PORT"), fc.AppPort, DefaultAppPort),
		AppUrl:           firstNonEmpty(os.Getenv("APP_URL_FROM_ANYWHERE"), fc.AppUrl),
		DBUrl:            firstNonEmpty(os.Getenv("DB_URL"), fc.DBUrl),
		SQLitePath:       firstNonEmpty(os.Getenv("SQLITE_PATH"), fc.SQLitePath, DefaultSQLitePath),
		TokenIssuer:      firstNonEmpty(os.Getenv("TOKEN_ISSUER"), fc.TokenIssuer),
		AuditCleanupCron: firstNonEmpty(os.Getenv("AUDIT_CLEANUP_CRON"), fc.AuditCleanupCron, DefaultAuditCleanupCron),
		AuditRetention:   DefaultAuditRetention,
	}

	//----------------------------------------------------------------------
	// Storage backend
	//----------------------------------------------------------------------
	driver := strings.ToLower(firstNonEmpty(os.Getenv("DB_DRIVER"), fc.DBDriver))
	if driver == "" {
		driver = DriverSQLite
		if cfg.DBUrl != "" {
			driver = DriverPostgres
		}
	}
	switch driver {
	case DriverPostgres:
		if cfg.DBUrl == "" {
			return nil, fmt.Errorf("DB_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", driver, DriverPostgres, DriverSQLite)
	}
	cfg.DBDriver = driver

	//----------------------------------------------------------------------
	// Auth
	//----------------------------------------------------------------------
	if pubB64 := firstNonEmpty(os.Getenv("RSA_PUBLIC_KEY_BASE64"), fc.RSAPublicKeyBase64); pubB64 != "" {
		pubKey, err := middleware.ParsePublicKeyBase64(pubB64)
		if err != nil {
			return nil, fmt.Errorf("parse RSA public key: %w", err)
		}
		cfg.RSAPublicKey = pubKey
	} else if cfg.Env != EnvDev {
		return nil, fmt.Errorf("RSA_PUBLIC_KEY_BASE64 is required when ENV=%s", cfg.Env)
	}

	//----------------------------------------------------------------------
	// Audit retention & flags
	//----------------------------------------------------------------------
	days, err := intSetting("AUDIT_RETENTION_DAYS", fc.AuditRetentionDays)
	if err != nil {
		return nil, err
	}
	if days != nil {
		if *days <= 0 {
			return nil, fmt.Errorf("AUDIT_RETENTION_DAYS must be positive, got %d", *days)
		}
		cfg.AuditRetention = time.Duration(*days) * 24 * time.Hour
	}

	seed, err := boolSetting("SEED_DB_WITH_TEST_DATA", fc.SeedDbWithTestData)
	if err != nil {
		return nil, err
	}
	cfg.SeedDbWithTestData = seed

	highSec, err := boolSetting("CORS_HIGH_SECURITY", fc.CORSHighSecurity)
	if err != nil {
		return nil, err
	}
	cfg.CORSHighSecurity = highSec

	return cfg, nil
}

// LogSummary reports what Load resolved, warning when actors are trusted
// from the X-Actor header.
func LogSummary(cfg *Config) {
	if cfg.RSAPublicKey == nil {
		utils.Logger.Warn("No RSA public key configured; trusting the X-Actor header (dev only)")
	}
	utils.Logger.Infof("Loaded config for %s (%s, %s backend)", cfg.AppName, cfg.Env, cfg.DBDriver)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func intSetting(env string, fromFile *int) (*int, error) {
	if raw := strings.TrimSpace(os.Getenv(env)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", env, err)
		}
		return &n, nil
	}
	return fromFile, nil
}

func boolSetting(env string, fromFile *bool) (bool, error) {
	if raw := strings.TrimSpace(os.Getenv(env)); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return false, fmt.Errorf("%s: %w", env, err)
		}
		return b, nil
	}
	if fromFile != nil {
		return *fromFile, nil
	}
	return false, nil
}
