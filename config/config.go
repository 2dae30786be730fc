package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type SheetsConfig struct {
	SpreadsheetID       string `mapstructure:"spreadsheet_id"`
	ServiceAccountEmail string `mapstructure:"service_account_email"`
	PrivateKey          string `mapstructure:"private_key"`
}

type RazorpayConfig struct {
	KeyID     string `mapstructure:"key_id"`
	KeySecret string `mapstructure:"key_secret"`
}

type EmailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type Config struct {
	ListenAddr string         `mapstructure:"listen_addr"`
	UploadsDir string         `mapstructure:"uploads_dir"`
	JWTSecret  string         `mapstructure:"jwt_secret"`
	Sheets     SheetsConfig   `mapstructure:"sheets"`
	Razorpay   RazorpayConfig `mapstructure:"razorpay"`
	Email      EmailConfig    `mapstructure:"email"`
	Redis      RedisConfig    `mapstructure:"redis"`
}

// Load reads config/config.yaml if present and lets environment variables
// override it (SWEETSHOP_SHEETS_SPREADSHEET_ID, SWEETSHOP_RAZORPAY_KEY_SECRET,
// and so on). Only the row store credentials and the JWT secret are mandatory
// at startup; other credentials are checked by the feature that needs them.
func Load() (Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config/")
	v.AddConfigPath("./")

	v.SetEnvPrefix("SWEETSHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":3000")
	v.SetDefault("uploads_dir", "./uploads")
	v.SetDefault("email.host", "smtp.gmail.com")
	v.SetDefault("email.port", 587)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	// Private keys arrive from the environment with literal \n sequences.
	config.Sheets.PrivateKey = strings.ReplaceAll(config.Sheets.PrivateKey, `\n`, "\n")

	if config.Sheets.SpreadsheetID == "" || config.Sheets.ServiceAccountEmail == "" || config.Sheets.PrivateKey == "" {
		return Config{}, errors.New("missing Google Sheets credentials")
	}
	if config.JWTSecret == "" {
		return Config{}, errors.New("missing JWT secret")
	}

	return config, nil
}

// HasRazorpay reports whether the payment gateway is configured.
func (c Config) HasRazorpay() bool {
	return c.Razorpay.KeyID != "" && c.Razorpay.KeySecret != ""
}

// HasEmail reports whether outgoing email is configured.
func (c Config) HasEmail() bool {
	return c.Email.User != "" && c.Email.Password != ""
}
