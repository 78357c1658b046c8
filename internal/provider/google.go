package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vtcal/internal/model"
)

// Google pulls the user's calendars and their upcoming events from the Google
// Calendar REST API. Google paginates with a nextPageToken in the body.
type Google struct {
	baseURL string
	client  *http.Client
	// now is injectable so tests control the timeMin lower bound.
	now func() time.Time
}

// NewGoogle creates a Google Calendar client against the given base URL.
func NewGoogle(baseURL string) *Google {
	return &Google{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(),
		now:     time.Now,
	}
}

// Name implements Provider.
func (g *Google) Name() string { return model.SourceGoogle }

type googleCalendarList struct {
	Items []struct {
		ID      string `json:"id"`
		Summary string `json:"summary"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

type googleEventList struct {
	Items []struct {
		Summary     string `json:"summary"`
		Description string `json:"description"`
		Start       struct {
			DateTime string `json:"dateTime"`
			Date     string `json:"date"`
		} `json:"start"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// Containers lists the user's calendars.
func (g *Google) Containers(ctx context.Context, token string) ([]Container, error) {
	var containers []Container
	pageToken := ""
	for {
		endpoint := g.baseURL + "/users/me/calendarList?maxResults=250"
		if pageToken != "" {
			endpoint += "&pageToken=" + url.QueryEscape(pageToken)
		}

		body, _, err := get(ctx, g.client, token, endpoint)
		if err != nil {
			return nil, fmt.Errorf("list calendars: %w", err)
		}

		var page googleCalendarList
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode calendars: %w", err)
		}
		for _, cal := range page.Items {
			name := cal.Summary
			if name == "" {
				name = "Unnamed Calendar"
			}
			containers = append(containers, Container{ID: cal.ID, Name: name})
		}
		if page.NextPageToken == "" {
			return containers, nil
		}
		pageToken = page.NextPageToken
	}
}

// Items lists one calendar's upcoming events. Both timed (dateTime) and
// all-day (date) starts are accepted; all-day events normalize to midnight
// UTC. Events without either are skipped.
func (g *Google) Items(ctx context.Context, token string, container Container) ([]Item, error) {
	base := fmt.Sprintf("%s/calendars/%s/events", g.baseURL, url.PathEscape(container.ID))
	params := url.Values{
		"timeMin":      {g.now().UTC().Format(time.RFC3339)},
		"singleEvents": {"true"},
		"orderBy":      {"startTime"},
		"maxResults":   {"2500"},
	}

	var items []Item
	for {
		body, _, err := get(ctx, g.client, token, base+"?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("list events for calendar %s: %w", container.ID, err)
		}

		var page googleEventList
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode events: %w", err)
		}
		for _, event := range page.Items {
			start := parseEventStart(event.Start.DateTime, event.Start.Date)
			if start == nil {
				continue
			}
			title := event.Summary
			if title == "" {
				title = "(No title)"
			}
			items = append(items, Item{
				Title:       title,
				Description: event.Description,
				DueAt:       *start,
			})
		}
		if page.NextPageToken == "" {
			return items, nil
		}
		params.Set("pageToken", page.NextPageToken)
	}
}

func parseEventStart(dateTime, date string) *time.Time {
	if dateTime != "" {
		return parseRFC3339(dateTime)
	}
	if date != "" {
		return parseRFC3339(date + "T00:00:00Z")
	}
	return nil
}
