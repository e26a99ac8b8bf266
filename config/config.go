package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string   `mapstructure:"APP_PORT"`
	Env               string   `mapstructure:"ENV"`
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    []string `mapstructure:"ALLOWED_ORIGINS"`

	// Proxies whose X-Forwarded-For is honoured. Empty trusts none.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// SMTP transport shared by both sender identities.
	SMTPHost    string        `mapstructure:"SMTP_HOST"`
	SMTPPort    int           `mapstructure:"SMTP_PORT"`
	SMTPTimeout time.Duration `mapstructure:"SMTP_TIMEOUT"`

	// Sender used for operator alerts.
	AdminSMTPUser     string `mapstructure:"ADMIN_SMTP_USER"`
	AdminSMTPPassword string `mapstructure:"ADMIN_SMTP_PASSWORD"`

	// Sender used for guest confirmations.
	CustomerSMTPUser     string `mapstructure:"CUSTOMER_SMTP_USER"`
	CustomerSMTPPassword string `mapstructure:"CUSTOMER_SMTP_PASSWORD"`

	EmailFromName string `mapstructure:"EMAIL_FROM_NAME"`

	// Operator mailboxes. Either may be empty, they may also be identical.
	AdminEmail       string `mapstructure:"ADMIN_EMAIL"`
	CustomAdminEmail string `mapstructure:"CUSTOM_ADMIN_EMAIL"`

	// Contact handles offered to guests when the automated path fails.
	SupportEmail   string `mapstructure:"SUPPORT_EMAIL"`
	WhatsAppNumber string `mapstructure:"WHATSAPP_NUMBER"`

	// Pricing policy.
	ExtraGuestRate        float64 `mapstructure:"EXTRA_GUEST_RATE"`
	DiscountPerGuestNight float64 `mapstructure:"DISCOUNT_PER_GUEST_NIGHT"`

	// Redis backs the duplicate-submission guard. Empty address disables it.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisReplayDB int           `mapstructure:"REDIS_REPLAY_DB"`
	ReplayTTL     time.Duration `mapstructure:"REPLAY_TTL"`
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

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig.AllowedOrigins = splitList(AppConfig.AllowedOrigins)
	AppConfig.TrustedProxies = splitList(AppConfig.TrustedProxies)
}

// SetDefaults registers every default value. AutomaticEnv only resolves keys
// viper already knows about, so each key needs a default here.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("TRUSTED_PROXIES", []string{})

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_TIMEOUT", 15*time.Second)
	v.SetDefault("ADMIN_SMTP_USER", "")
	v.SetDefault("ADMIN_SMTP_PASSWORD", "")
	v.SetDefault("CUSTOMER_SMTP_USER", "")
	v.SetDefault("CUSTOMER_SMTP_PASSWORD", "")
	v.SetDefault("EMAIL_FROM_NAME", "Safari Camp Bookings")

	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("CUSTOM_ADMIN_EMAIL", "")
	v.SetDefault("SUPPORT_EMAIL", "")
	v.SetDefault("WHATSAPP_NUMBER", "")

	v.SetDefault("EXTRA_GUEST_RATE", 325.0)
	v.SetDefault("DISCOUNT_PER_GUEST_NIGHT", 25.0)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_REPLAY_DB", 0)
	v.SetDefault("REPLAY_TTL", 24*time.Hour)
}

// Validate reports settings the booking pipeline cannot run without.
// Missing admin mailboxes are not reported here: the dispatcher rejects
// every submission with NoAdminConfigured instead, so the guest still gets
// the fallback contacts.
func (c Config) Validate() error {
	var errs []error
	if c.SMTPHost == "" {
		errs = append(errs, errors.New("SMTP_HOST is required"))
	}
	if c.SMTPPort <= 0 {
		errs = append(errs, fmt.Errorf("SMTP_PORT must be positive, got %d", c.SMTPPort))
	}
	if c.AdminSMTPUser == "" {
		errs = append(errs, errors.New("ADMIN_SMTP_USER is required"))
	}
	if c.CustomerSMTPUser == "" {
		errs = append(errs, errors.New("CUSTOMER_SMTP_USER is required"))
	}
	if c.ExtraGuestRate < 0 || c.DiscountPerGuestNight < 0 {
		errs = append(errs, errors.New("pricing rates must not be negative"))
	}
	return errors.Join(errs...)
}

// splitList accepts both a YAML list and a comma-separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
