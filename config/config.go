package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Scheduling service (Cal-compatible API).
	CalAPIKey string `mapstructure:"CAL_API_KEY"`
	CalAPIURL string `mapstructure:"CAL_API_URL"`

	// Payment service (MercadoPago-compatible API).
	MPAccessToken string `mapstructure:"MP_ACCESS_TOKEN"`
	MPAPIURL      string `mapstructure:"MP_API_URL"`

	// WhatsApp messaging provider.
	WAAPIURL      string `mapstructure:"WA_API_URL"`
	WAAccessToken string `mapstructure:"WA_ACCESS_TOKEN"`
	WAVerifyToken string `mapstructure:"WA_VERIFY_TOKEN"`

	// Redis configuration.
	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	RedisPassword       string `mapstructure:"REDIS_PASSWORD"`
	RedisConversationDB int    `mapstructure:"REDIS_CONVERSATION_DB"`
	RedisTaskQueueDB    int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// Booking defaults.
	Timezone string `mapstructure:"TIMEZONE"`
	Locale   string `mapstructure:"LOCALE"`
	Currency string `mapstructure:"CURRENCY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values. Secrets default to empty so viper knows the keys;
	// without a registered key, Unmarshal never sees the env value.
	viper.SetDefault("APP_PORT", "3008")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("CAL_API_KEY", "")
	viper.SetDefault("CAL_API_URL", "https://api.cal.com/api/v1")
	viper.SetDefault("MP_ACCESS_TOKEN", "")
	viper.SetDefault("MP_API_URL", "https://api.mercadopago.com")
	viper.SetDefault("WA_API_URL", "https://graph.facebook.com/v19.0")
	viper.SetDefault("WA_ACCESS_TOKEN", "")
	viper.SetDefault("WA_VERIFY_TOKEN", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CONVERSATION_DB", 0)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 1)
	viper.SetDefault("TIMEZONE", "America/Argentina/Buenos_Aires")
	viper.SetDefault("LOCALE", "es")
	viper.SetDefault("CURRENCY", "ARS")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Every availability gate in the conversation depends on the scheduling
	// API key; there is no workable fallback.
	if AppConfig.CalAPIKey == "" {
		log.Fatal("CAL_API_KEY is not configured")
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
