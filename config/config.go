package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type Log struct {
	Level      string
	JSON       bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type JWT struct {
	Secret      string
	Issuer      string
	TTLHours    int
	CookieName  string
	CookieHTTPS bool
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Files struct {
	InvoiceDir        string
	ProfilePictureDir string
}

type RateLimit struct {
	RPS   float64
	Burst int
}

type Google struct {
	ProjectID       string
	CredentialsFile string
}

type Config struct {
	Env       string
	HTTP      HTTP
	Log       Log
	JWT       JWT
	DB        DB
	SMTP      SMTP
	Redis     Redis `mapstructure:"redis"`
	Files     Files
	RateLimit RateLimit
	Google    Google
}

// Load reads the YAML config file and applies APP_-prefixed env overrides.
// The JWT secret must come from config or environment, never from code.
func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeoutsec", 15)
	v.SetDefault("http.writetimeoutsec", 30)
	v.SetDefault("http.idletimeoutsec", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.issuer", "ardeco")
	v.SetDefault("jwt.ttlhours", 24)
	v.SetDefault("jwt.cookiename", "jwt")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("files.invoicedir", "./invoices")
	v.SetDefault("files.profilepicturedir", "./static/profile_pictures")
	v.SetDefault("ratelimit.rps", 50)
	v.SetDefault("ratelimit.burst", 100)

	if err := v.ReadInConfig(); err != nil {
		// Env-only deployments are fine, a missing file is not fatal.
		log.Printf("config: %v (using defaults + env)", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = os.Getenv("JWT_SECRET")
	}
	return &c
}
