package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"vtcal/internal/model"
)

// Canvas pulls active courses and their upcoming assignments from a Canvas
// LMS instance. Canvas paginates with RFC 5988 Link headers.
type Canvas struct {
	baseURL string
	client  *http.Client
}

// NewCanvas creates a Canvas client against the given base URL.
func NewCanvas(baseURL string) *Canvas {
	return &Canvas{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(),
	}
}

// Name implements Provider.
func (c *Canvas) Name() string { return model.SourceCanvas }

type canvasCourse struct {
	ID         json.Number `json:"id"`
	Name       string      `json:"name"`
	CourseCode string      `json:"course_code"`
	CreatedAt  string      `json:"created_at"`
}

type canvasAssignment struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueAt       string `json:"due_at"`
}

// Containers lists the user's active course enrollments.
func (c *Canvas) Containers(ctx context.Context, token string) ([]Container, error) {
	url := c.baseURL + "/api/v1/courses?enrollment_state=active&include[]=term"

	var containers []Container
	for url != "" {
		body, resp, err := get(ctx, c.client, token, url)
		if err != nil {
			return nil, fmt.Errorf("list courses: %w", err)
		}

		var page []canvasCourse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode courses: %w", err)
		}
		for _, course := range page {
			containers = append(containers, Container{
				ID:        course.ID.String(),
				Name:      course.Name,
				Code:      course.CourseCode,
				CreatedAt: parseRFC3339(course.CreatedAt),
			})
		}
		url = nextLink(resp.Header.Get("Link"))
	}
	return containers, nil
}

// Items lists the upcoming assignments of one course. Assignments without a
// due date are skipped.
func (c *Canvas) Items(ctx context.Context, token string, container Container) ([]Item, error) {
	url := fmt.Sprintf("%s/api/v1/courses/%s/assignments?bucket=upcoming&order_by=due_at", c.baseURL, container.ID)

	var items []Item
	for url != "" {
		body, resp, err := get(ctx, c.client, token, url)
		if err != nil {
			return nil, fmt.Errorf("list assignments for course %s: %w", container.ID, err)
		}

		var page []canvasAssignment
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode assignments: %w", err)
		}
		for _, assignment := range page {
			due := parseRFC3339(assignment.DueAt)
			if due == nil {
				continue
			}
			items = append(items, Item{
				Title:       assignment.Name,
				Description: assignment.Description,
				DueAt:       *due,
			})
		}
		url = nextLink(resp.Header.Get("Link"))
	}
	return items, nil
}

// nextLink extracts the rel="next" target from a Link header, or "".
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		if !strings.Contains(section[1], `rel="next"`) {
			continue
		}
		url := strings.TrimSpace(section[0])
		return strings.Trim(url, "<>")
	}
	return ""
}

func parseRFC3339(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Debug("unparseable remote timestamp", "value", value)
		return nil
	}
	return &t
}
