package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Booking BookingConfig
}

type AppConfig struct {
	Port     string
	Env      string
	Timezone string
	LogLevel string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// BookingConfig holds the slot rules of the clinic.
//
// The day picker hides days holding DisplayCapacity bookings. Submissions
// are accepted until a day holds CommitCapacity bookings.
type BookingConfig struct {
	WindowDays      int
	DisplayCapacity int
	CommitCapacity  int
	EditLeadDays    int
	SelectionTTL    time.Duration
}

func DefaultBookingConfig() BookingConfig {
	return BookingConfig{
		WindowDays:      21,
		DisplayCapacity: 10,
		CommitCapacity:  11,
		EditLeadDays:    1,
		SelectionTTL:    30 * time.Minute,
	}
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	booking := DefaultBookingConfig()
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_TIMEZONE", "UTC")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("BOOKING_WINDOW_DAYS", booking.WindowDays)
	viper.SetDefault("BOOKING_DISPLAY_CAPACITY", booking.DisplayCapacity)
	viper.SetDefault("BOOKING_COMMIT_CAPACITY", booking.CommitCapacity)
	viper.SetDefault("BOOKING_EDIT_LEAD_DAYS", booking.EditLeadDays)

	// A missing .env is fine: containers configure through the environment.
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	selectionTTL, err := time.ParseDuration(viper.GetString("BOOKING_SELECTION_TTL"))
	if err != nil {
		selectionTTL = booking.SelectionTTL
	}

	config := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			Timezone: viper.GetString("APP_TIMEZONE"),
			LogLevel: viper.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			Name:        viper.GetString("DB_NAME"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Booking: BookingConfig{
			WindowDays:      viper.GetInt("BOOKING_WINDOW_DAYS"),
			DisplayCapacity: viper.GetInt("BOOKING_DISPLAY_CAPACITY"),
			CommitCapacity:  viper.GetInt("BOOKING_COMMIT_CAPACITY"),
			EditLeadDays:    viper.GetInt("BOOKING_EDIT_LEAD_DAYS"),
			SelectionTTL:    selectionTTL,
		},
	}

	return config, nil
}
