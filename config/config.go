// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	migrateOnly       = pflag.Bool("migrate-only", false, "Runs database migrations and exits")
	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validEnvironments = []string{"development", "production"}
	validDrivers      = []string{"sqlite", "postgres"}
)

// Config is the single explicitly-constructed configuration object
// handed to components at startup. Nothing outside this package reads
// the environment directly.
type Config struct {
	Env        string
	LogLevel   string
	Port       int
	CORSOrigin string

	Driver string
	DSN    string

	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3PublicURL string

	MailHost   string
	MailPort   int
	MailSender string

	MaxUploadSize int64
	MigrateOnly   bool
}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() (*Config, error) {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")
	v.BindEnv("app.env", "app_env")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors_origin", "host_cors_origin")

	v.BindEnv("storage.driver", "storage_driver")
	v.BindEnv("storage.dsn", "storage_dsn")

	v.BindEnv("jwt.access_secret", "jwt_access_secret")
	v.BindEnv("jwt.refresh_secret", "jwt_refresh_secret")
	v.BindEnv("jwt.access_expiry", "jwt_access_expiry")
	v.BindEnv("jwt.refresh_expiry", "jwt_refresh_expiry")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("s3.endpoint", "s3_endpoint")
	v.BindEnv("s3.region", "s3_region")
	v.BindEnv("s3.access_key_id", "s3_access_key_id")
	v.BindEnv("s3.secret_access_key", "s3_secret_access_key")
	v.BindEnv("s3.bucket", "s3_bucket")
	v.BindEnv("s3.public_url", "s3_public_url")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.sender", "mail_sender")
	v.BindEnv("mail.password", "mail_password")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.env", "development")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origin", "http://localhost:5173")

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.dsn", "database.db")

	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "720h")

	v.SetDefault("upload.max_size", 10)

	v.SetDefault("s3.region", "auto")
	v.SetDefault("mail.port", 587)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return nil, errors.New("invalid log level provided")
	}

	if !slices.Contains(validEnvironments, v.GetString("app.env")) {
		return nil, errors.New("app.env must be development or production")
	}

	if v.GetInt("host.port") <= 0 {
		return nil, errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("storage.driver")) {
		return nil, errors.New("invalid storage driver provided")
	}

	if v.GetString("jwt.access_secret") == "" || v.GetString("jwt.refresh_secret") == "" {
		fmt.Println("WARNING: You haven't set both JWT secrets, so a random pair has been generated for you. Please set them as environment variables or in the config.toml file.\n\njwt.access_secret:\n" + genSecret() + "\n\njwt.refresh_secret:\n" + genSecret() + "\n\nPaste them into your config.toml file.")
		os.Exit(0)
	}

	accessExpiry, err := time.ParseDuration(v.GetString("jwt.access_expiry"))
	if err != nil || accessExpiry <= 0 {
		return nil, errors.New("jwt.access_expiry must be a positive duration")
	}

	refreshExpiry, err := time.ParseDuration(v.GetString("jwt.refresh_expiry"))
	if err != nil || refreshExpiry <= accessExpiry {
		return nil, errors.New("jwt.refresh_expiry must be a duration longer than jwt.access_expiry")
	}

	if v.GetInt64("upload.max_size") <= 0 {
		return nil, errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetString("s3.access_key_id") == "" {
		return nil, errors.New("account access id can't be empty")
	}
	if v.GetString("s3.secret_access_key") == "" {
		return nil, errors.New("secret access key can't be empty")
	}
	if v.GetString("s3.bucket") == "" {
		return nil, errors.New("bucket can't be empty")
	}
	if v.GetString("s3.public_url") == "" {
		return nil, errors.New("s3.public_url can't be empty")
	}

	if v.GetString("mail.host") == "" {
		return nil, errors.New("mail.host can't be empty")
	}
	if v.GetString("mail.sender") == "" {
		return nil, errors.New("mail.sender can't be empty")
	}

	return &Config{
		Env:           v.GetString("app.env"),
		LogLevel:      v.GetString("app.log_level"),
		Port:          v.GetInt("host.port"),
		CORSOrigin:    v.GetString("host.cors_origin"),
		Driver:        v.GetString("storage.driver"),
		DSN:           v.GetString("storage.dsn"),
		AccessSecret:  v.GetString("jwt.access_secret"),
		RefreshSecret: v.GetString("jwt.refresh_secret"),
		AccessExpiry:  accessExpiry,
		RefreshExpiry: refreshExpiry,
		S3Endpoint:    v.GetString("s3.endpoint"),
		S3Region:      v.GetString("s3.region"),
		S3Bucket:      v.GetString("s3.bucket"),
		S3PublicURL:   v.GetString("s3.public_url"),
		MailHost:      v.GetString("mail.host"),
		MailPort:      v.GetInt("mail.port"),
		MailSender:    v.GetString("mail.sender"),
		MaxUploadSize: v.GetInt64("upload.max_size") << 20,
		MigrateOnly:   *migrateOnly,
	}, nil
}

// Production reports whether cookies should carry the Secure flag.
func (c *Config) Production() bool {
	return c.Env == "production"
}
