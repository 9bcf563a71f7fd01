package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Email     EmailConfig     `yaml:"email"`
	Redis     RedisConfig     `yaml:"redis"`
	Coins     CoinsConfig     `yaml:"coins"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Google    GoogleConfig    `yaml:"google"`

	FirstOwnerEmail    string `yaml:"first_owner_email"`
	FirstOwnerPassword string `yaml:"first_owner_password"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`
}

type DatabaseConfig struct {
	DSN string `yaml:"url"`
}

type JWTConfig struct {
	Secret  string `yaml:"secret"`
	TTLDays int    `yaml:"ttl_days"`
}

type EmailConfig struct {
	// Mode "smtp" sends real mail; anything else logs the code instead.
	Mode         string `yaml:"mode"`
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CoinsConfig struct {
	// Flat reward credited once when a listing is approved.
	ListingReward int64 `yaml:"listing_reward"`
}

type RateLimitConfig struct {
	Enabled  bool `yaml:"enabled"`
	Capacity int  `yaml:"capacity"`
	WindowS  int  `yaml:"window_seconds"`
}

type GoogleConfig struct {
	ClientID string `yaml:"client_id"`
}

var AppConfig *Config

// LoadConfig populates AppConfig from config/config.yaml, or from
// environment variables when DATABASE_URL is set (test/deploy mode).
// A .env file is picked up when present.
func LoadConfig() {
	_ = godotenv.Load()

	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTLDays = 7
	cfg.Email.Mode = os.Getenv("EMAIL_MODE")
	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("EMAIL_FROM")
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Google.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	cfg.FirstOwnerEmail = os.Getenv("FIRST_OWNER_EMAIL")
	cfg.FirstOwnerPassword = os.Getenv("FIRST_OWNER_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.JWT.TTLDays == 0 {
		cfg.JWT.TTLDays = 7
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "Thryfto"
	}
	if cfg.Coins.ListingReward == 0 {
		cfg.Coins.ListingReward = 10
	}
	if cfg.RateLimit.Capacity == 0 {
		cfg.RateLimit.Capacity = 30
	}
	if cfg.RateLimit.WindowS == 0 {
		cfg.RateLimit.WindowS = 60
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
