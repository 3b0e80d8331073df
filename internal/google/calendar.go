// Package google publishes wedding events to Google Calendar and runs the
// desktop OAuth flow that authorises it.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"weddinginvites/internal/config"
	"weddinginvites/internal/models"
)

const (
	credentialsFile = "credentials.json"
	outOfBandURL    = "urn:ietf:wg:oauth:2.0:oob"
)

// CalendarClient imports events into one Google calendar.
type CalendarClient struct {
	service    *calendar.Service
	calendarID string
	logger     *slog.Logger
}

// NewClient loads the saved token of account from tokenDir and creates an
// authenticated client for cfg.GoogleCalendarID.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.CalendarConfig, tokenDir, account string) (*CalendarClient, error) {
	oauthCfg, err := getOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth config: %w", err)
	}

	token, err := tokenFromFile(TokenFile(tokenDir, account))
	if err != nil {
		return nil, fmt.Errorf("could not load token for account %s: %w. Please run the 'auth' command first", account, err)
	}

	service, err := calendar.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return NewClientWithService(logger, service, cfg.GoogleCalendarID), nil
}

// NewClientWithService wraps an existing calendar service.
func NewClientWithService(logger *slog.Logger, service *calendar.Service, calendarID string) *CalendarClient {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &CalendarClient{service: service, calendarID: calendarID, logger: logger}
}

// PublishEvent imports the event keyed by its iCalendar UID, so publishing the
// same event twice updates it instead of duplicating it.
func (c *CalendarClient) PublishEvent(ctx context.Context, event models.Event) error {
	if event.UID == "" {
		return errors.New("event has no UID")
	}
	c.logger.Debug("Publishing event to Google Calendar", "eventTitle", event.Title, "uid", event.UID)

	created, err := c.service.Events.Import(c.calendarID, toGoogleEvent(event)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to import event: %w", err)
	}

	c.logger.Info("Published event to Google Calendar", "eventTitle", event.Title, "calendarID", c.calendarID, "link", created.HtmlLink)
	return nil
}

// toGoogleEvent converts the internal event into the API representation
// with a single popup reminder.
func toGoogleEvent(event models.Event) *calendar.Event {
	ge := &calendar.Event{
		ICalUID:      event.UID,
		Summary:      event.Title,
		Description:  event.Description,
		Location:     event.Location,
		Status:       "confirmed",
		Transparency: "opaque",
		Start:        &calendar.EventDateTime{DateTime: event.StartTime.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:          &calendar.EventDateTime{DateTime: event.EndTime.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		Reminders: &calendar.EventReminders{
			UseDefault:      false,
			ForceSendFields: []string{"UseDefault"},
		},
	}
	if event.Reminder > 0 {
		ge.Reminders.Overrides = []*calendar.EventReminder{
			{Method: "popup", Minutes: int64(event.Reminder / time.Minute)},
		}
	}
	return ge
}

// GetOAuthConfigForAuthFlow is used by the auth command to get the config for the web flow.
func GetOAuthConfigForAuthFlow(clientID, clientSecret string) (*oauth2.Config, error) {
	return getOAuthConfig(clientID, clientSecret)
}

// getOAuthConfig prefers explicit client credentials over a local credentials.json.
func getOAuthConfig(clientID, clientSecret string) (*oauth2.Config, error) {
	if clientID != "" && clientSecret != "" {
		return &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  outOfBandURL,
			Scopes:       []string{calendar.CalendarEventsScope},
			Endpoint:     google.Endpoint,
		}, nil
	}

	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("credentials.json not found. Please provide GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET env vars or place credentials.json in the working directory")
		}
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(b, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file to config: %w", err)
	}
	cfg.RedirectURL = outOfBandURL
	return cfg, nil
}

// TokenFromWeb exchanges an authorisation code for a token.
func TokenFromWeb(ctx context.Context, cfg *oauth2.Config, authCode string) (*oauth2.Token, error) {
	return cfg.Exchange(ctx, authCode)
}

// TokenFile is the path of the saved token for account.
func TokenFile(dir, account string) string {
	return filepath.Join(dir, "token-"+account+".json")
}

// SaveToken saves a token to a file path readable only by the owner.
func SaveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("unable to create token file: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// GetTokenAccounts lists the accounts with a saved token in dir.
func GetTokenAccounts(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var accounts []string
	for _, file := range files {
		name := file.Name()
		if strings.HasPrefix(name, "token-") && strings.HasSuffix(name, ".json") {
			accounts = append(accounts, strings.TrimSuffix(strings.TrimPrefix(name, "token-"), ".json"))
		}
	}
	return accounts, nil
}
