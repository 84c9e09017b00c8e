package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server Server `yaml:"server"`

	Database Database `yaml:"database"`

	JWT JWT `yaml:"jwt"`

	Discord Discord `yaml:"discord"`

	RateLimit RateLimit `yaml:"rate_limit"`

	Admin Admin `yaml:"admin"`
}

type Server struct {
	Address string `yaml:"address"`
	Mode    string `yaml:"mode"`
}

type JWT struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"` // In Hours
}

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// Discord configures the outbound order notification. An empty webhook URL
// disables notifications.
type Discord struct {
	WebhookURL string `yaml:"webhook_url"`
}

// RateLimit configures the public order intake limit, in ulule/limiter
// formatted notation (e.g. "10-M" for 10 requests per minute).
type RateLimit struct {
	PublicOrders string `yaml:"public_orders"`
}

// Admin is the bootstrap account provisioned at startup when no admin
// exists yet.
type Admin struct {
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
}

func Load() (*Config, error) {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	configPath := "configs/development.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}

	f, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	return &cfg, nil
}

// applyEnv overrides file values with environment variables, so secrets
// never have to live in the yaml file.
func (c *Config) applyEnv() {
	setString(&c.Server.Address, "SERVER_ADDRESS")
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.Discord.WebhookURL, "DISCORD_WEBHOOK_URL")
	setString(&c.Admin.Username, "ADMIN_USERNAME")
	setString(&c.Admin.Email, "ADMIN_EMAIL")
	setString(&c.Admin.Password, "ADMIN_PASSWORD")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
