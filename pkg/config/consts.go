package config

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvDBDSN  = "URBANTHREADS_DB_DSN"
	EnvDBHost = "URBANTHREADS_DB_HOST"
	EnvDBUser = "URBANTHREADS_DB_USER"
	EnvDBName = "URBANTHREADS_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
