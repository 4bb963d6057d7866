package config

const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv      = "SOKOLINK_APP_ENV"
	EnvPort        = "SOKOLINK_APP_PORT"
	EnvJWTSecret   = "SOKOLINK_JWT_SECRET"
	EnvDeliveryFee = "SOKOLINK_DELIVERY_FEE"
)
