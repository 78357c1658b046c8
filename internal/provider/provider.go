// Package provider implements the pull-based clients for the external
// services a student can link: the Canvas LMS and Google Calendar. Both
// clients authenticate with a caller-supplied bearer token, page through the
// remote listing endpoints and flatten the results into a common item shape
// for the sync layer to upsert.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// requestTimeout bounds every provider call. The remote services are outside
// our control; a hanging call must not pin a request handler forever.
const requestTimeout = 30 * time.Second

// Container is a remote grouping of items: a Canvas course or a Google
// calendar.
type Container struct {
	ID        string
	Name      string
	Code      string
	CreatedAt *time.Time
}

// Item is a normalized remote entry with a resolved due timestamp. Remote
// entries without one are dropped before they reach this shape.
type Item struct {
	Title       string
	Description string
	DueAt       time.Time
}

// Provider is the shared contract of the external sync clients.
type Provider interface {
	// Name is the source tag stamped onto synced events.
	Name() string
	// Containers lists the user's courses or calendars, following
	// pagination until exhausted.
	Containers(ctx context.Context, token string) ([]Container, error)
	// Items lists the entries of one container, following pagination
	// until exhausted.
	Items(ctx context.Context, token string, container Container) ([]Item, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// get performs one authenticated GET and returns the body and response.
// Callers own pagination; this helper owns auth and status handling.
func get(ctx context.Context, client *http.Client, token, url string) ([]byte, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("remote returned status %d for %s", resp.StatusCode, url)
	}
	return body, resp, nil
}
