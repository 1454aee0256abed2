package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultPath is read when BLOGAPI_CONFIG is unset.
const DefaultPath = "config.yml"

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port     int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env      string `yaml:"env" env:"ENV" env-default:"development"`
		LogLevel string `yaml:"log_level" env:"LOGLEVEL" env-default:"info"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
	} `yaml:"database"`
	Smtp struct {
		Host     string `yaml:"host" env:"SMTPHOST" env-default:"localhost"`
		Port     int    `yaml:"port" env:"SMTPPORT" env-default:"25"`
		Username string `yaml:"username" env:"SMTPUSERNAME"`
		Password string `yaml:"password" env:"SMTPPASSWORD"`
		Sender   string `yaml:"sender" env:"SMTPSENDER" env-default:"noreply@example.com"`
	} `yaml:"smtp"`
	S3 struct {
		AccessKeyID     string `yaml:"access_key_id" env:"ACCESSKEYID"`
		SecretAccessKey string `yaml:"secret_access_key" env:"SECRETACCESSKEY"`
		Region          string `yaml:"region" env:"REGION"`
		Bucket          string `yaml:"bucket" env:"BUCKET"`
	} `yaml:"s3"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"RPS" env-default:"2"`
		Burst   int     `yaml:"burst" env:"BURST" env-default:"4"`
		Enabled bool    `yaml:"enabled" env:"LENABLED" env-default:"true"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS" env-separator:" "`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"BASICAUTHUSERNAME"`
		Password string `yaml:"password" env:"BASICAUTHPASSWORD"`
	} `yaml:"basic_auth"`
	JWT struct {
		Secret     string        `yaml:"secret" env:"JWTSECRET"`
		AccessTTL  time.Duration `yaml:"access_ttl" env:"JWTACCESSTTL" env-default:"5m"`
		RefreshTTL time.Duration `yaml:"refresh_ttl" env:"JWTREFRESHTTL" env-default:"24h"`
	} `yaml:"jwt"`
	Accounts struct {
		TokenTTL time.Duration `yaml:"token_ttl" env:"TOKENTTL" env-default:"24h"`
	} `yaml:"accounts"`
	Pagination struct {
		PageSize    int `yaml:"page_size" env:"PAGESIZE" env-default:"4"`
		MaxPageSize int `yaml:"max_page_size" env:"MAXPAGESIZE" env-default:"100"`
	} `yaml:"pagination"`
}

// Decode reads the configuration file named by BLOGAPI_CONFIG (or config.yml)
// and overlays environment variables. A missing file is not an error: the
// configuration then comes from the environment and defaults alone.
func Decode() (Config, error) {
	// A .env file is optional.
	_ = godotenv.Load()
	path := os.Getenv("BLOGAPI_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	return DecodeFile(path)
}

// DecodeFile decodes the configuration stored at path.
func DecodeFile(path string) (Config, error) {
	var cfg Config
	_, err := os.Stat(path)
	switch {
	case err == nil:
		err = cleanenv.ReadConfig(path, &cfg)
	case errors.Is(err, os.ErrNotExist):
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Database.DSN == "" {
		return errors.New("config: database dsn must be provided")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("config: jwt secret must be at least 32 characters long")
	}
	if c.Pagination.PageSize < 1 || c.Pagination.MaxPageSize < c.Pagination.PageSize {
		return errors.New("config: invalid pagination page sizes")
	}
	return nil
}

// S3Enabled reports whether post image uploads can be served.
func (c Config) S3Enabled() bool {
	return c.S3.Bucket != "" && c.S3.Region != ""
}
