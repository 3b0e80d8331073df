package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	// HTTPTimeout bounds a single call to the invite store.
	HTTPTimeout = 10 * time.Second
	// SMTPTimeout bounds a single SMTP submission.
	SMTPTimeout = 30 * time.Second
)

// ConfigurationError reports missing or malformed environment configuration.
// It is fatal: no row is processed once it is returned.
type ConfigurationError struct {
	Section string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s configuration: %v", e.Section, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// MailConfig holds the SMTP submission credentials.
type MailConfig struct {
	Address  string        `env:"WEDDING_EMAIL,required,notEmpty"`
	Password string        `env:"WEDDING_EMAIL_PASSWORD,required,notEmpty"`
	Host     string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
}

// APIConfig locates the invite store and the public website.
type APIConfig struct {
	BaseURL    string        `env:"API_BASE_URL" envDefault:"https://nick-and-tash-wedding.onrender.com"`
	WebsiteURL string        `env:"WEBSITE_BASE_URL" envDefault:"https://nick-and-tash-wedding.web.app"`
	Timeout    time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}

// MongoConfig locates the document store holding invites.
// Either URI or the User/Password/Cluster triple must be set.
type MongoConfig struct {
	URI        string   `env:"MONGO_URI"`
	User       string   `env:"MONGO_USER"`
	Password   string   `env:"MONGO_PASS"`
	Cluster    string   `env:"MONGO_CLUSTER"`
	Database   string   `env:"MONGO_DATABASE" envDefault:"db"`
	Collection string   `env:"MONGO_COLLECTION" envDefault:"invites"`
	Exclude    []string `env:"DIETARY_EXCLUDE" envSeparator:","`
}

// ConnectionString returns the MongoDB URI, building an Atlas SRV URI from
// the credential triple when no explicit URI is configured.
func (c MongoConfig) ConnectionString() string {
	if c.URI != "" {
		return c.URI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s.mongodb.net/%s?retryWrites=true&w=majority",
		url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Cluster, c.Database)
}

// CalendarConfig configures calendar file generation and publishing targets.
type CalendarConfig struct {
	Timezone           string `env:"EVENT_TIMEZONE" envDefault:"UTC"`
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCalendarID   string `env:"GOOGLE_CALENDAR_ID" envDefault:"primary"`
	CalDAVEndpoint     string `env:"CALDAV_ENDPOINT" envDefault:"https://caldav.icloud.com/"`
	CalDAVUsername     string `env:"CALDAV_USERNAME"`
	CalDAVPassword     string `env:"CALDAV_PASSWORD"`
	CalDAVCalendarName string `env:"CALDAV_CALENDAR_NAME"`
}

// Location resolves the configured timezone.
func (c CalendarConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, &ConfigurationError{Section: "calendar", Err: fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)}
	}
	return loc, nil
}

// LoadMail parses the mail configuration.
func LoadMail() (MailConfig, error) {
	return load[MailConfig]("mail")
}

// LoadAPI parses the invite store configuration.
func LoadAPI() (APIConfig, error) {
	cfg, err := load[APIConfig]("api")
	if err != nil {
		return cfg, err
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	cfg.WebsiteURL = strings.TrimSuffix(cfg.WebsiteURL, "/")
	if cfg.BaseURL == "" {
		return cfg, &ConfigurationError{Section: "api", Err: errors.New("API_BASE_URL is empty")}
	}
	return cfg, nil
}

// LoadMongo parses the document store configuration.
func LoadMongo() (MongoConfig, error) {
	cfg, err := load[MongoConfig]("mongo")
	if err != nil {
		return cfg, err
	}
	if cfg.URI == "" && (cfg.User == "" || cfg.Password == "" || cfg.Cluster == "") {
		return cfg, &ConfigurationError{
			Section: "mongo",
			Err:     errors.New("set MONGO_URI or all of MONGO_USER, MONGO_PASS and MONGO_CLUSTER"),
		}
	}
	return cfg, nil
}

// LoadCalendar parses the calendar configuration.
func LoadCalendar() (CalendarConfig, error) {
	return load[CalendarConfig]("calendar")
}

func load[T any](section string) (T, error) {
	cfg, err := env.ParseAs[T]()
	if err != nil {
		return cfg, &ConfigurationError{Section: section, Err: err}
	}
	return cfg, nil
}
