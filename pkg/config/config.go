package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Prompt       PromptConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BIKEWISH_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"BIKEWISH_LOG_LEVEL" default:"warn"`
	LogFormat    string `envconfig:"BIKEWISH_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"BIKEWISH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN        string `envconfig:"BIKEWISH_DB_DSN"`
	Driver     string `envconfig:"BIKEWISH_DB_DRIVER" default:"postgres"`
	SQLitePath string `envconfig:"BIKEWISH_DB_SQLITE_PATH" default:"bikewish.db"`

	Host     string `envconfig:"BIKEWISH_DB_HOST" default:"localhost"`
	Port     int    `envconfig:"BIKEWISH_DB_PORT" default:"5432"`
	User     string `envconfig:"BIKEWISH_DB_USER" default:"postgres"`
	Password string `envconfig:"BIKEWISH_DB_PASSWORD"`
	Name     string `envconfig:"BIKEWISH_DB_NAME" default:"bikewish"`
	SSLMode  string `envconfig:"BIKEWISH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BIKEWISH_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"BIKEWISH_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"BIKEWISH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BIKEWISH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	ConnectTimeout  time.Duration `envconfig:"BIKEWISH_DB_CONNECT_TIMEOUT" default:"5s"`
}

// IsSQLite reports whether the sqlite driver was selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DriverSQLite)
}

// NeedsPassword reports whether the password must still be collected from the user.
func (db DBConfig) NeedsPassword() bool {
	return !db.IsSQLite() && db.DSN == "" && db.Password == ""
}

// WithPassword returns a copy of the config carrying the supplied password.
func (db DBConfig) WithPassword(password string) DBConfig {
	db.Password = password
	return db
}

// ResolveDSN returns the configured DSN or assembles one from the individual parts.
func (db DBConfig) ResolveDSN() (string, error) {
	if db.IsSQLite() {
		if strings.TrimSpace(db.SQLitePath) == "" {
			return "", fmt.Errorf("%s is required for the sqlite driver", EnvDBSQLitePath)
		}
		return db.SQLitePath, nil
	}
	if db.DSN != "" {
		return db.DSN, nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range dbPartEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	q := u.Query()
	if db.SSLMode != "" {
		q.Set("sslmode", db.SSLMode)
	}
	if db.ConnectTimeout > 0 {
		q.Set("connect_timeout", fmt.Sprintf("%d", int(db.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func (db DBConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported %s %q (expected %s or %s)", EnvDBDriver, db.Driver, DriverPostgres, DriverSQLite)
	}
	if db.Port <= 0 || db.Port > 65535 {
		return fmt.Errorf("%s must be a valid port, got %d", EnvDBPort, db.Port)
	}
	return nil
}

type PromptConfig struct {
	PasswordAttempts int    `envconfig:"BIKEWISH_PASSWORD_ATTEMPTS" default:"3"`
	ConnectAttempts  int    `envconfig:"BIKEWISH_CONNECT_ATTEMPTS" default:"3"`
	CancelWord       string `envconfig:"BIKEWISH_CANCEL_WORD" default:"exit"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BIKEWISH_AUTO_MIGRATE" default:"false"`
}
