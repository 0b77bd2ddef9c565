package config

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvPort           = "STOREFRONT_APP_PORT"
	EnvLogLevel       = "STOREFRONT_LOG_LEVEL"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvCatalogBaseURL = "STOREFRONT_CATALOG_BASE_URL"
	EnvCatalogTimeout = "STOREFRONT_CATALOG_TIMEOUT"
	EnvCartTaxRate    = "STOREFRONT_CART_TAX_RATE"
	EnvCartMaxQty     = "STOREFRONT_CART_MAX_QUANTITY"
	EnvSessionTTL     = "STOREFRONT_SESSION_TTL"
)
