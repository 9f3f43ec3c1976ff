package config

const EnvPrefix = "BIKEWISH"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv       = "BIKEWISH_APP_ENV"
	EnvLogLevel     = "BIKEWISH_LOG_LEVEL"
	EnvLogFormat    = "BIKEWISH_LOG_FORMAT"
	EnvDBDSN        = "BIKEWISH_DB_DSN"
	EnvDBDriver     = "BIKEWISH_DB_DRIVER"
	EnvDBSQLitePath = "BIKEWISH_DB_SQLITE_PATH"
	EnvDBHost       = "BIKEWISH_DB_HOST"
	EnvDBPort       = "BIKEWISH_DB_PORT"
	EnvDBUser       = "BIKEWISH_DB_USER"
	EnvDBPassword   = "BIKEWISH_DB_PASSWORD"
	EnvDBName       = "BIKEWISH_DB_NAME"
	EnvAutoMigrate  = "BIKEWISH_AUTO_MIGRATE"
)

var dbPartEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
