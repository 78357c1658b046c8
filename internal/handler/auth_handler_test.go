package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vtcal/internal/model"
	"vtcal/internal/repository"
	"vtcal/internal/service"
)

// newAuthHandler wires a real auth service over an in-memory database so the
// tests check the exact wire contract.
func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.LoginSession{}))

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, repository.NewSessionRepository(db), false)
	return NewAuthHandler(authService, NewIdentity(userRepo))
}

func postJSON(t *testing.T, h echo.HandlerFunc, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h(e.NewContext(req, rec)))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestAuthHandler_LoginUnknownUser(t *testing.T) {
	h := newAuthHandler(t)

	rec, body := postJSON(t, h.Login, `{"email": "a@vt.edu", "password": "x"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, map[string]interface{}{"error": "Invalid credentials"}, body)
}

func TestAuthHandler_RegisterThenDuplicate(t *testing.T) {
	h := newAuthHandler(t)

	rec, body := postJSON(t, h.Register, `{"email": "a@vt.edu", "password": "x"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "a@vt.edu", body["email"])
	userID, ok := body["userId"].(float64)
	require.True(t, ok, "userId must be numeric")
	assert.Greater(t, userID, float64(0))

	rec, body = postJSON(t, h.Register, `{"email": "a@vt.edu", "password": "x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]interface{}{"error": "Email already exists"}, body)
}

func TestAuthHandler_RegisterRejectsForeignDomain(t *testing.T) {
	h := newAuthHandler(t)

	rec, body := postJSON(t, h.Register, `{"email": "a@gmail.com", "password": "x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Must use a Virginia Tech email (@vt.edu)", body["error"])
}

func TestAuthHandler_LoginDomainCheckBeforeCredentials(t *testing.T) {
	h := newAuthHandler(t)

	rec, body := postJSON(t, h.Login, `{"email": "a@gmail.com", "password": "x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid VT email address", body["error"])
}

func TestAuthHandler_RegisterLoginRoundTrip(t *testing.T) {
	h := newAuthHandler(t)

	_, registered := postJSON(t, h.Register, `{"email": "b@vt.edu", "password": "hunter2", "canvasUserId": "777"}`)
	require.Equal(t, true, registered["success"])

	rec, body := postJSON(t, h.Login, `{"email": "b@vt.edu", "password": "hunter2"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, false, body["requires2FA"])
	token, _ := body["sessionToken"].(string)
	assert.NotEmpty(t, token)

	rec, body = postJSON(t, h.Login, `{"email": "b@vt.edu", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestAuthHandler_TwoFactorFlow(t *testing.T) {
	h := newAuthHandler(t)

	_, registered := postJSON(t, h.Register, `{"email": "c@vt.edu", "password": "pw"}`)
	userID := int(registered["userId"].(float64))

	// enrollment flips the flag; the next login withholds the token
	rec, setup := postJSON(t, h.SetupTwoFactor, `{"userId": `+strconv.Itoa(userID)+`}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, setup["secret"])
	assert.Contains(t, setup["otpauthUrl"], "otpauth://totp/VTCalendar:c@vt.edu")

	rec, body := postJSON(t, h.Login, `{"email": "c@vt.edu", "password": "pw"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["requires2FA"])
	_, hasToken := body["sessionToken"]
	assert.False(t, hasToken)

	// the universal bypass code is rejected while the dev flag is off
	rec, body = postJSON(t, h.VerifyTwoFactor, `{"userId": `+strconv.Itoa(userID)+`, "code": "000000"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid 2FA code", body["error"])
}

func TestAuthHandler_VerifyTwoFactorNotEnabled(t *testing.T) {
	h := newAuthHandler(t)

	_, registered := postJSON(t, h.Register, `{"email": "d@vt.edu", "password": "pw"}`)
	userID := int(registered["userId"].(float64))

	rec, body := postJSON(t, h.VerifyTwoFactor, `{"userId": `+strconv.Itoa(userID)+`, "code": "123456"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "2FA not enabled for this account", body["error"])
}

func TestAuthHandler_VerifyTwoFactorUnknownUser(t *testing.T) {
	h := newAuthHandler(t)

	rec, body := postJSON(t, h.VerifyTwoFactor, `{"userId": 424242, "code": "123456"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid session", body["error"])
}

