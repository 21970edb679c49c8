package config

const (
	EnvPrefix = "RIDEFINDERZ"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "RIDEFINDERZ_APP_ENV"
	EnvPort     = "RIDEFINDERZ_APP_PORT"
	EnvLogLevel = "RIDEFINDERZ_LOG_LEVEL"
	EnvLogFmt   = "RIDEFINDERZ_LOG_FORMAT"
	EnvCORS     = "RIDEFINDERZ_CORS_ORIGINS"

	EnvRedisURL = "RIDEFINDERZ_REDIS_URL"

	EnvFiltersMaxPrice      = "RIDEFINDERZ_FILTERS_MAX_PRICE"
	EnvFiltersPriceGap      = "RIDEFINDERZ_FILTERS_PRICE_GAP"
	EnvFiltersSessionTTL    = "RIDEFINDERZ_FILTERS_SESSION_TTL"
	EnvFiltersSweepInterval = "RIDEFINDERZ_FILTERS_SWEEP_INTERVAL"
	EnvFiltersCurrency      = "RIDEFINDERZ_FILTERS_CURRENCY"

	EnvPubSubEnabled   = "RIDEFINDERZ_PUBSUB_ENABLED"
	EnvPubSubProjectID = "RIDEFINDERZ_GCP_PROJECT_ID"
	EnvPubSubTopic     = "RIDEFINDERZ_PUBSUB_FILTER_EVENTS_TOPIC"
)
