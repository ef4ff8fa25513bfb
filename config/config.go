package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Settings holds everything read from config.yml or the environment.
type Settings struct {
	Port            string
	Driver          string // "postgres" or "sqlite"
	DSN             string
	JWTSecret       string
	PageSize        int // restaurants per search result page
	TemplatesGlob   string
	BookingFallback string // redirect target when a mutated booking does not exist
	SeedDemo        bool
}

var (
	C  Settings
	DB *gorm.DB
)

// Load reads config.yml when present, otherwise falls back to environment
// variables (SERVER_PORT, DATABASE_DSN, ...). A .env file is honoured too.
// Safe to call more than once.
func Load() {
	if err := godotenv.Load(); err == nil {
		logrus.Debug("loaded settings from .env")
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "dinebook.db")
	viper.SetDefault("jwt.secret", "insecure-dev-secret")
	viper.SetDefault("search.page_size", 2)
	viper.SetDefault("templates.glob", "templates/*")
	viper.SetDefault("booking.fallback", "/user/profile")
	viper.SetDefault("seed.demo", false)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			viper.AutomaticEnv()
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		} else {
			logrus.Fatalf("could not read config file: %v", err)
		}
	}

	C = Settings{
		Port:            viper.GetString("server.port"),
		Driver:          viper.GetString("database.driver"),
		DSN:             viper.GetString("database.dsn"),
		JWTSecret:       viper.GetString("jwt.secret"),
		PageSize:        viper.GetInt("search.page_size"),
		TemplatesGlob:   viper.GetString("templates.glob"),
		BookingFallback: viper.GetString("booking.fallback"),
		SeedDemo:        viper.GetBool("seed.demo"),
	}
	if C.PageSize < 1 {
		C.PageSize = 2
	}
}

// ConnectDatabase opens the configured database and stores the handle in DB.
func ConnectDatabase() {
	var dial gorm.Dialector
	switch C.Driver {
	case "postgres":
		dial = postgres.Open(C.DSN)
	default:
		dial = sqlite.Open(C.DSN)
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	DB = db
}
