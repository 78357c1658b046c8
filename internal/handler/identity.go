package handler

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"vtcal/internal/repository"
)

// Identity resolves the acting user for a request: an explicit userId wins,
// else the bearer session token is looked up, else user 0.
//
// The zero fallback reproduces the original behavior where an unauthenticated
// request silently operates against a nonexistent "user 0". It is almost
// certainly a bug upstream, so resolution to 0 is logged rather than silent.
type Identity struct {
	userRepo repository.UserRepository
}

// NewIdentity creates a new identity resolver.
func NewIdentity(userRepo repository.UserRepository) *Identity {
	return &Identity{userRepo: userRepo}
}

// Resolve returns the user id for the request.
func (i *Identity) Resolve(c echo.Context, explicit uint) uint {
	if explicit != 0 {
		return explicit
	}

	if token := bearerToken(c); token != "" {
		user, err := i.userRepo.FindBySessionToken(c.Request().Context(), token)
		if err == nil {
			return user.ID
		}
	}

	log.Warn("request resolved to user 0", "path", c.Path())
	return 0
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
