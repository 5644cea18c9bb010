package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"warehouse/internal/adapters/out/blob"
	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/retry"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// ConfigFileEnv names an optional YAML or TOML file read on top of the environment.
const ConfigFileEnv = "WAREHOUSE_CONFIG"

type Config struct {
	HTTPPort string
	AppEnv   string

	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	LogLevel    string
	LogEncoding string

	OpTimeout       time.Duration
	OpMaxRetries    int
	PricingCacheTTL time.Duration

	ReconcileSchedule string
	ReconcileBatch    int
	MetricsSchedule   string

	BlobDriver            string
	BlobS3Bucket          string
	BlobS3Region          string
	BlobS3Endpoint        string
	BlobS3PathStyle       bool
	BlobS3AccessKeyID     string
	BlobS3SecretAccessKey string

	ValidateRequests bool
	SwaggerEnabled   bool
	Timezone         string
}

// LoadConfig reads .env when present, then the environment, then the file
// named by WAREHOUSE_CONFIG. Missing keys take their defaults.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := os.Getenv(ConfigFileEnv); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", file, err)
		}
	}

	cfg := Config{
		HTTPPort:              v.GetString("HTTP_PORT"),
		AppEnv:                strings.ToLower(v.GetString("APP_ENV")),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		DBMaxOpenConns:        v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:        v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime:     v.GetDuration("DB_CONN_MAX_LIFETIME"),
		LogLevel:              v.GetString("LOG_LEVEL"),
		LogEncoding:           v.GetString("LOG_ENCODING"),
		OpTimeout:             v.GetDuration("OP_TIMEOUT"),
		OpMaxRetries:          v.GetInt("OP_MAX_RETRIES"),
		PricingCacheTTL:       v.GetDuration("PRICING_CACHE_TTL"),
		ReconcileSchedule:     v.GetString("RECONCILE_SCHEDULE"),
		ReconcileBatch:        v.GetInt("RECONCILE_BATCH"),
		MetricsSchedule:       v.GetString("METRICS_SCHEDULE"),
		BlobDriver:            strings.ToLower(v.GetString("BLOB_DRIVER")),
		BlobS3Bucket:          v.GetString("BLOB_S3_BUCKET"),
		BlobS3Region:          v.GetString("BLOB_S3_REGION"),
		BlobS3Endpoint:        v.GetString("BLOB_S3_ENDPOINT"),
		BlobS3PathStyle:       v.GetBool("BLOB_S3_PATH_STYLE"),
		BlobS3AccessKeyID:     v.GetString("BLOB_S3_ACCESS_KEY_ID"),
		BlobS3SecretAccessKey: v.GetString("BLOB_S3_SECRET_ACCESS_KEY"),
		ValidateRequests:      v.GetBool("VALIDATE_REQUESTS"),
		SwaggerEnabled:        v.GetBool("SWAGGER_ENABLED"),
		Timezone:              v.GetString("TIMEZONE"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "warehouse")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", "")
	v.SetDefault("OP_TIMEOUT", "5s")
	v.SetDefault("OP_MAX_RETRIES", 5)
	v.SetDefault("PRICING_CACHE_TTL", "30s")
	v.SetDefault("RECONCILE_SCHEDULE", "0 * * * * *")
	v.SetDefault("RECONCILE_BATCH", 100)
	v.SetDefault("METRICS_SCHEDULE", "*/15 * * * * *")
	v.SetDefault("BLOB_DRIVER", string(blob.DriverMemory))
	v.SetDefault("BLOB_S3_REGION", "us-east-1")
	v.SetDefault("VALIDATE_REQUESTS", true)
	v.SetDefault("SWAGGER_ENABLED", true)
	v.SetDefault("TIMEZONE", "UTC")
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var joined []error

	if c.HTTPPort == "" {
		joined = append(joined, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	if c.DBHost == "" {
		joined = append(joined, errs.NewValueIsRequiredError("DB_HOST"))
	}
	if c.DBName == "" {
		joined = append(joined, errs.NewValueIsRequiredError("DB_NAME"))
	}
	if c.OpTimeout <= 0 {
		joined = append(joined, errs.NewValueIsOutOfRangeError("OP_TIMEOUT", c.OpTimeout, "1ns", "unbounded"))
	}
	if c.OpMaxRetries < 1 {
		joined = append(joined, errs.NewValueIsOutOfRangeError("OP_MAX_RETRIES", c.OpMaxRetries, 1, "unbounded"))
	}
	if c.PricingCacheTTL < 0 {
		joined = append(joined, errs.NewValueIsOutOfRangeError("PRICING_CACHE_TTL", c.PricingCacheTTL, 0, "unbounded"))
	}
	for key, schedule := range map[string]string{
		"RECONCILE_SCHEDULE": c.ReconcileSchedule,
		"METRICS_SCHEDULE":   c.MetricsSchedule,
	} {
		if _, err := cronParser.Parse(schedule); err != nil {
			joined = append(joined, errs.NewValueIsInvalidErrorWithCause(key, err))
		}
	}

	driver, err := blob.ParseDriver(c.BlobDriver)
	joined = append(joined, err)
	if err == nil && driver == blob.DriverS3 && c.BlobS3Bucket == "" {
		joined = append(joined, errs.NewValueIsRequiredError("BLOB_S3_BUCKET"))
	}

	if _, err = time.LoadLocation(c.Timezone); err != nil {
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause("TIMEZONE", err))
	}

	switch c.AppEnv {
	case "development", "production", "test":
	default:
		joined = append(joined, errs.NewValueIsInvalidErrorWithCause("APP_ENV",
			fmt.Errorf("%q is not one of development, production, test", c.AppEnv)))
	}

	return errors.Join(joined...)
}

// Jobs use cron.WithSeconds, so schedules carry six fields.
var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// DSN is the libpq connection string shared by gorm and sqlx.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

func (c Config) Pool() postgres.PoolSettings {
	return postgres.PoolSettings{
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
	}
}

// RetryPolicy derives the command retry policy from OP_TIMEOUT and OP_MAX_RETRIES.
func (c Config) RetryPolicy() retry.Policy {
	policy := retry.DefaultPolicy()
	policy.MaxAttempts = c.OpMaxRetries
	policy.AttemptTimeout = c.OpTimeout
	return policy
}

// Location is the warehouse calendar. Validate has already checked the name.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) S3() blob.S3Config {
	return blob.S3Config{
		Bucket:          c.BlobS3Bucket,
		Region:          c.BlobS3Region,
		Endpoint:        c.BlobS3Endpoint,
		AccessKeyID:     c.BlobS3AccessKeyID,
		SecretAccessKey: c.BlobS3SecretAccessKey,
		PathStyle:       c.BlobS3PathStyle,
	}
}
