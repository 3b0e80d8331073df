// Package invites talks to the invite store and derives the links mailed to guests.
package invites

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"weddinginvites/internal/config"
	"weddinginvites/internal/models"
)

const (
	invitesPath     = "/api/invites"
	rsvpSummaryPath = "/api/rsvp-summary"

	maxResponseSize = 1 << 20
	userAgent       = "weddinginvites/1.0"
)

// InviteCreationError is returned when the invite store rejects or cannot be
// reached for a create request. The invite must be treated as not created.
type InviteCreationError struct {
	Guests     []string
	StatusCode int // zero on transport failure
	Err        error
}

func (e *InviteCreationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to create invite for %v: status %d: %v", e.Guests, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to create invite for %v: %v", e.Guests, e.Err)
}

func (e *InviteCreationError) Unwrap() error {
	return e.Err
}

// Client is a client for the invite store HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client for the configured API base URL.
func NewClient(logger *slog.Logger, cfg config.APIConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.HTTPTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type createResponse struct {
	ID string `json:"_id"`
}

// CreateInvite submits a group and returns the id assigned by the store.
// Only HTTP 201 counts as success.
func (c *Client) CreateInvite(ctx context.Context, group models.InviteGroup) (string, error) {
	if group.InvitedLocation == "" {
		group.InvitedLocation = models.DefaultInvitedLocation
	}
	display := displayNames(group.Guests)
	c.logger.Debug("Creating invite", "guests", display, "plusOne", group.GivenPlusOne, "location", group.InvitedLocation)

	body, err := json.Marshal(group)
	if err != nil {
		return "", &InviteCreationError{Guests: display, Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+invitesPath, bytes.NewReader(body))
	if err != nil {
		return "", &InviteCreationError{Guests: display, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &InviteCreationError{Guests: display, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", &InviteCreationError{Guests: display, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusCreated {
		return "", &InviteCreationError{
			Guests:     display,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(payload))),
		}
	}

	var created createResponse
	if err := json.Unmarshal(payload, &created); err != nil {
		return "", &InviteCreationError{Guests: display, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if created.ID == "" {
		return "", &InviteCreationError{Guests: display, StatusCode: resp.StatusCode, Err: fmt.Errorf("response has no _id")}
	}

	c.logger.Info("Created invite", "guests", display, "inviteId", created.ID)
	return created.ID, nil
}

// FetchRSVPSummary retrieves guests grouped by RSVP category.
// Missing categories are returned as empty slices.
func (c *Client) FetchRSVPSummary(ctx context.Context) (models.RSVPSummary, error) {
	url := c.baseURL + rsvpSummaryPath
	c.logger.Info("Fetching RSVP data", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch RSVP summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	summary := make(models.RSVPSummary)
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode RSVP summary: %w", err)
	}
	for _, category := range models.RSVPCategories {
		if summary[category] == nil {
			summary[category] = []models.RSVPEntry{}
		}
	}
	return summary, nil
}

func displayNames(records []models.GuestRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = strings.TrimSpace(r.FirstName + " " + r.LastName)
	}
	return out
}
