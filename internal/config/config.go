package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type PasswordResetDelivery string

const (
	// DeliveryDirect sends reset emails from the request goroutine.
	DeliveryDirect PasswordResetDelivery = "direct"
	// DeliveryQueue publishes reset emails to RabbitMQ for cmd/mailer.
	DeliveryQueue PasswordResetDelivery = "queue"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Port       uint16 `env:"PORT" envDefault:"8080"`

	Secret        string `env:"SECRET,required"`
	PostgresqlURL string `env:"POSTGRESQL_URL"`
	RedisURL      string `env:"REDIS_URL"`

	BcryptHasherCost                int                   `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDurationHours int                   `env:"PASSWORD_RESET_VALID_DURATION_HOURS" envDefault:"72"`
	PasswordResetBaseURL            url.URL               `env:"PASSWORD_RESET_BASE_URL" envDefault:"http://localhost:8080/user/reset/"`
	PasswordResetDelivery           PasswordResetDelivery `env:"PASSWORD_RESET_DELIVERY" envDefault:"direct"`

	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"336h"`
	SessionCookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"sessionid"`
	SessionCookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	LoginRedirectURL    string        `env:"LOGIN_REDIRECT_URL" envDefault:"/user/register/"`
	AllowedOrigins      []string      `env:"ALLOWED_ORIGINS" envSeparator:","`

	AwsRegion                     string `env:"AWS_REGION"`
	AwsAccessKey                  string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string `env:"AWS_SECRET_KEY"`
	AwsEmailSender                string `env:"AWS_EMAIL_SENDER"`
	AwsEmailPasswordResetTemplate string `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"password-reset"`

	RabbitmqURL                string `env:"RABBITMQ_URL"`
	RabbitmqPasswordResetQueue string `env:"RABBITMQ_PASSWORD_RESET_QUEUE" envDefault:"password_reset_email"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`
}

func (c *Config) PasswordResetValidDuration() time.Duration {
	return time.Duration(c.PasswordResetValidDurationHours) * time.Hour
}

// Load reads the configuration of the HTTP server.
func Load() (*Config, error) {
	config, err := parse()
	if err != nil {
		return nil, err
	}
	if config.PostgresqlURL == "" {
		return nil, fmt.Errorf("POSTGRESQL_URL must be set")
	}
	if config.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL must be set")
	}
	return config, nil
}

// LoadMailer reads the configuration of the queue consumer that sends reset emails.
func LoadMailer() (*Config, error) {
	config, err := parse()
	if err != nil {
		return nil, err
	}
	if config.PasswordResetDelivery != DeliveryQueue {
		return nil, fmt.Errorf("mailer requires PASSWORD_RESET_DELIVERY=%s", DeliveryQueue)
	}
	return config, nil
}

func parse() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("could not parse config: %w", err)
	}
	if config.Secret == "" {
		return nil, fmt.Errorf("SECRET must not be empty")
	}

	switch config.PasswordResetDelivery {
	case DeliveryDirect:
	case DeliveryQueue:
		if config.RabbitmqURL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL must be set for %s delivery", DeliveryQueue)
		}
	default:
		return nil, fmt.Errorf("invalid PASSWORD_RESET_DELIVERY value: %s", config.PasswordResetDelivery)
	}
	if config.PasswordResetValidDurationHours <= 0 {
		return nil, fmt.Errorf("PASSWORD_RESET_VALID_DURATION_HOURS must be positive")
	}
	if config.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}
	if config.SessionCookieName == "" {
		return nil, fmt.Errorf("SESSION_COOKIE_NAME must be set")
	}
	return config, nil
}
