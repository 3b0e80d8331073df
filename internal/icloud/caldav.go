// Package icloud publishes wedding events to a CalDAV calendar (iCloud by default).
package icloud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"

	"weddinginvites/internal/config"
	"weddinginvites/internal/ics"
	"weddinginvites/internal/models"
)

// customTransport adds Basic Auth and the client identifier to each request.
type customTransport struct {
	Username  string
	Password  string
	Transport http.RoundTripper
}

func (t *customTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.Username, t.Password)
	req.Header.Set("User-Agent", "weddinginvites/1.0")
	return t.Transport.RoundTrip(req)
}

// calendarFinder is the discovery subset of caldav.Client.
type calendarFinder interface {
	FindCurrentUserPrincipal(ctx context.Context) (string, error)
	FindCalendarHomeSet(ctx context.Context, principal string) (string, error)
	FindCalendars(ctx context.Context, calendarHomeSet string) ([]caldav.Calendar, error)
}

// CalDAVClient writes events into one named calendar.
type CalDAVClient struct {
	finder       calendarFinder
	webdavClient *webdav.Client
	generator    ics.Generator
	logger       *slog.Logger
	calendarPath string
}

// NewClient connects to the configured endpoint and resolves the target calendar.
func NewClient(ctx context.Context, logger *slog.Logger, cfg config.CalendarConfig) (*CalDAVClient, error) {
	if cfg.CalDAVUsername == "" || cfg.CalDAVPassword == "" || cfg.CalDAVCalendarName == "" {
		return nil, &config.ConfigurationError{
			Section: "caldav",
			Err:     errors.New("CALDAV_USERNAME, CALDAV_PASSWORD and CALDAV_CALENDAR_NAME are required"),
		}
	}
	transport := &customTransport{
		Username:  cfg.CalDAVUsername,
		Password:  cfg.CalDAVPassword,
		Transport: http.DefaultTransport,
	}
	httpClient := &http.Client{Transport: transport, Timeout: config.HTTPTimeout}

	caldavClient, err := caldav.NewClient(httpClient, cfg.CalDAVEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create caldav client: %w", err)
	}
	webdavClient, err := webdav.NewClient(httpClient, cfg.CalDAVEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create webdav client: %w", err)
	}

	c := &CalDAVClient{
		finder:       caldavClient,
		webdavClient: webdavClient,
		generator:    ics.Generator{Clock: ics.RealClock{}},
		logger:       logger,
	}

	logger.Info("Finding CalDAV calendar", "calendarName", cfg.CalDAVCalendarName)
	calendarPath, err := c.findCalendar(ctx, cfg.CalDAVCalendarName)
	if err != nil {
		return nil, fmt.Errorf("could not find calendar '%s': %w", cfg.CalDAVCalendarName, err)
	}
	c.calendarPath = calendarPath
	logger.Info("Found CalDAV calendar", "path", calendarPath)

	return c, nil
}

// PublishEvent creates or replaces the event, stored as <uid>.ics.
func (c *CalDAVClient) PublishEvent(ctx context.Context, event models.Event) error {
	c.logger.Debug("Publishing event to CalDAV", "eventTitle", event.Title, "uid", event.UID)

	cal, err := c.generator.Calendar(event)
	if err != nil {
		return err
	}

	writer, err := c.webdavClient.Create(ctx, EventPath(c.calendarPath, event.UID))
	if err != nil {
		return fmt.Errorf("failed to create event on CalDAV server: %w", err)
	}
	if err := ical.NewEncoder(writer).Encode(cal); err != nil {
		writer.Close()
		return fmt.Errorf("failed to encode event to iCal format: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to upload event: %w", err)
	}

	c.logger.Info("Published event to CalDAV", "eventTitle", event.Title)
	return nil
}

// EventPath is the resource path of an event inside a calendar collection.
func EventPath(calendarPath, uid string) string {
	return path.Join(calendarPath, uid+".ics")
}

// findCalendar walks principal, home set and calendar list and returns the
// path of the calendar with the given display name.
func (c *CalDAVClient) findCalendar(ctx context.Context, name string) (string, error) {
	principalPath, err := c.finder.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find principal path: %w", err)
	}

	homeSetPath, err := c.finder.FindCalendarHomeSet(ctx, principalPath)
	if err != nil {
		return "", fmt.Errorf("failed to find calendar home set: %w", err)
	}

	calendars, err := c.finder.FindCalendars(ctx, homeSetPath)
	if err != nil {
		return "", fmt.Errorf("failed to find calendars: %w", err)
	}

	for _, cal := range calendars {
		if strings.EqualFold(cal.Name, name) {
			return cal.Path, nil
		}
	}
	return "", fmt.Errorf("no calendar found with name '%s'", name)
}
