package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration (session registry).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Gemini configuration for the conversational model.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Conversation limits.
	SessionTTLMinutes  int `mapstructure:"SESSION_TTL_MINUTES"`
	TurnTimeoutSeconds int `mapstructure:"TURN_TIMEOUT_SECONDS"`

	// Practitioner policy. Single practitioner today; adding another is a
	// configuration change, not a code change.
	PractitionerName   string `mapstructure:"PRACTITIONER_NAME"`
	Specialty          string `mapstructure:"SPECIALTY"`
	ClinicName         string `mapstructure:"CLINIC_NAME"`
	ClinicPhone        string `mapstructure:"CLINIC_PHONE"`
	CostContact        string `mapstructure:"COST_CONTACT"`
	BusinessHoursStart int    `mapstructure:"BUSINESS_HOURS_START"`
	BusinessHoursEnd   int    `mapstructure:"BUSINESS_HOURS_END"`
	BusinessDays       string `mapstructure:"BUSINESS_DAYS"`
	MaxPerSlot         int    `mapstructure:"MAX_PER_SLOT"`
	SearchHorizonDays  int    `mapstructure:"SEARCH_HORIZON_DAYS"`
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

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "clinicdesk")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-flash")
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("TURN_TIMEOUT_SECONDS", 15)
	viper.SetDefault("PRACTITIONER_NAME", "Dr Kumar Awadhesh")
	viper.SetDefault("SPECIALTY", "Consultant surgeon with Fellow Renal Transplant, minimal invasive surgery, bariatric surgery, endoscopy and cancer surgery")
	viper.SetDefault("CLINIC_NAME", "City Clinic Group")
	viper.SetDefault("CLINIC_PHONE", "26312122061600")
	viper.SetDefault("COST_CONTACT", "For cost of surgery contact Ansuiya 58246776")
	viper.SetDefault("BUSINESS_HOURS_START", 16)
	viper.SetDefault("BUSINESS_HOURS_END", 18)
	viper.SetDefault("BUSINESS_DAYS", "Monday,Tuesday,Wednesday,Thursday,Friday")
	viper.SetDefault("MAX_PER_SLOT", 5)
	viper.SetDefault("SEARCH_HORIZON_DAYS", 30)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SessionTTL is how long an idle conversation survives in the registry.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLMinutes) * time.Minute
}

// TurnTimeout bounds a single call to the conversational model.
func TurnTimeout() time.Duration {
	return time.Duration(AppConfig.TurnTimeoutSeconds) * time.Second
}
