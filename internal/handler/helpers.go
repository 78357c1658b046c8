package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// queryUserID reads the userId query parameter, 0 when absent or malformed.
func queryUserID(c echo.Context) uint {
	raw := c.QueryParam("userId")
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// dueDateLayouts are the timestamp shapes clients send: full RFC3339 from
// synced sources, datetime-local from the web form, bare dates for all-day
// entries.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDueDate parses a client-supplied due date.
func parseDueDate(value string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}
