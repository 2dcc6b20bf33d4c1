package config

const EnvPrefix = "ENVATEX"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
