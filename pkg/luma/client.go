package luma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://public-api.lu.ma"
	listEventsPath = "/public/v1/calendar/list-events"
	maxPages       = 50
)

// Client lists calendar events. Safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Nil is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a calendar client.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Event is a normalized calendar entry.
type Event struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	StartAt  time.Time `json:"start"`
	EndAt    time.Time `json:"end,omitzero"`
	Location string    `json:"location"`
	URL      string    `json:"url"`
	CoverURL string    `json:"cover_url,omitempty"`
}

// ListEventsParams filters the listing. Zero values are omitted.
type ListEventsParams struct {
	After         time.Time
	Before        time.Time
	SortDirection string
	Limit         int
}

type listResponse struct {
	Entries []struct {
		APIID string   `json:"api_id"`
		Event apiEvent `json:"event"`
	} `json:"entries"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type apiEvent struct {
	APIID      string    `json:"api_id"`
	Name       string    `json:"name"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	URL        string    `json:"url"`
	CoverURL   string    `json:"cover_url"`
	MeetingURL string    `json:"meeting_url"`
	Geo        *struct {
		Description string `json:"description"`
		FullAddress string `json:"full_address"`
		Address     string `json:"address"`
	} `json:"geo_address_json"`
}

func (e apiEvent) location() string {
	if e.Geo != nil {
		for _, s := range []string{e.Geo.Description, e.Geo.FullAddress, e.Geo.Address} {
			if s != "" {
				return s
			}
		}
	}
	if e.MeetingURL != "" {
		return "Online"
	}
	return ""
}

// ListEvents returns every event matching params across all pages.
func (c *Client) ListEvents(ctx context.Context, params ListEventsParams) ([]Event, error) {
	q := url.Values{}
	if !params.After.IsZero() {
		q.Set("after", params.After.UTC().Format(time.RFC3339))
	}
	if !params.Before.IsZero() {
		q.Set("before", params.Before.UTC().Format(time.RFC3339))
	}
	if params.SortDirection != "" {
		q.Set("sort_column", "start_at")
		q.Set("sort_direction", params.SortDirection)
	}
	if params.Limit > 0 {
		q.Set("pagination_limit", strconv.Itoa(params.Limit))
	}

	var events []Event
	for range maxPages {
		page, err := c.fetch(ctx, q)
		if err != nil {
			return nil, err
		}
		for _, entry := range page.Entries {
			ev := entry.Event
			id := ev.APIID
			if id == "" {
				id = entry.APIID
			}
			events = append(events, Event{
				ID:       id,
				Title:    ev.Name,
				StartAt:  ev.StartAt,
				EndAt:    ev.EndAt,
				Location: ev.location(),
				URL:      ev.URL,
				CoverURL: ev.CoverURL,
			})
		}
		if !page.HasMore || page.NextCursor == "" || page.NextCursor == q.Get("pagination_cursor") {
			break
		}
		q.Set("pagination_cursor", page.NextCursor)
	}
	return events, nil
}

func (c *Client) fetch(ctx context.Context, q url.Values) (*listResponse, error) {
	endpoint := c.baseURL + listEventsPath
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("x-luma-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, errors.Join(ErrRequestFailed, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	return &out, nil
}
