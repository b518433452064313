package endpoint

import (
	"net/http"
	"testing"

	"github.com/carelog/hospital-admin/middleware"
	"github.com/carelog/hospital-admin/model"
	"github.com/stretchr/testify/assert"
)

func TestRegisterLoginFlow(t *testing.T) {
	r, db := setupEndpointTest(t)

	w := doRequest(t, r, http.MethodPost, "/auth/register", "", model.RegisterRequest{
		Name:     "Alice",
		Email:    "a@x.com",
		Password: "secret1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", decodeBody(t, w)["status"])

	var user model.User
	assert.NoError(t, db.First(&user, "email = ?", "a@x.com").Error)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.Password)

	w = doRequest(t, r, http.MethodPost, "/auth/login", "", model.LoginRequest{
		Email:    "a@x.com",
		Password: "secret1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", decodeBody(t, w)["status"])

	var sessionToken, roleCookie string
	for _, cookie := range w.Result().Cookies() {
		switch cookie.Name {
		case middleware.SessionCookieName:
			sessionToken = cookie.Value
			assert.True(t, cookie.HttpOnly)
			assert.Equal(t, "/", cookie.Path)
		case middleware.RoleCookieName:
			roleCookie = cookie.Value
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.NotEmpty(t, sessionToken)
	assert.Equal(t, "user", roleCookie)

	// Without a session the patient list is rejected; with the issued token it
	// answers an empty list.
	w = doRequest(t, r, http.MethodGet, "/patient", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodGet, "/patient", sessionToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["totalPatients"])
}

func TestRegisterInvalidPayloadWritesNothing(t *testing.T) {
	r, db := setupEndpointTest(t)

	w := doRequest(t, r, http.MethodPost, "/auth/register", "", model.RegisterRequest{
		Name:     "Al",
		Email:    "not-an-email",
		Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.NotNil(t, body["errors"])
	assert.Equal(t, int64(0), countRows(t, db, &model.User{}))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, db := setupEndpointTest(t)
	createTestUser(t, db, "Alice", "a@x.com")

	w := doRequest(t, r, http.MethodPost, "/auth/register", "", model.RegisterRequest{
		Name:     "Other Alice",
		Email:    "a@x.com",
		Password: "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(1), countRows(t, db, &model.User{}))
}

func TestLoginUnknownEmail(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w := doRequest(t, r, http.MethodPost, "/auth/login", "", model.LoginRequest{
		Email:    "ghost@x.com",
		Password: "secret1",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginWrongPasswordIncrementsFailedAttempts(t *testing.T) {
	r, db := setupEndpointTest(t)
	user := createTestUser(t, db, "Alice", "a@x.com")

	w := doRequest(t, r, http.MethodPost, "/auth/login", "", model.LoginRequest{
		Email:    "a@x.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var reloaded model.User
	assert.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Equal(t, 1, reloaded.FailedAttempts)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	r, db := setupEndpointTest(t)
	user := createTestUser(t, db, "Alice", "a@x.com")

	for i := 0; i < 5; i++ {
		doRequest(t, r, http.MethodPost, "/auth/login", "", model.LoginRequest{
			Email:    "a@x.com",
			Password: "wrong-password",
		})
	}

	var reloaded model.User
	assert.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	assert.NotNil(t, reloaded.LockedUntil)

	// Even the correct password is rejected while locked.
	w := doRequest(t, r, http.MethodPost, "/auth/login", "", model.LoginRequest{
		Email:    "a@x.com",
		Password: testPassword,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "locked")
}

func TestLogoutInvalidatesSession(t *testing.T) {
	r, db := setupEndpointTest(t)
	user := createTestUser(t, db, "Alice", "a@x.com")
	token := createTestSession(t, db, user)

	w := doRequest(t, r, http.MethodPost, "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), countRows(t, db, &model.Session{}))

	w = doRequest(t, r, http.MethodGet, "/patient", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutWithoutSessionRejected(t *testing.T) {
	r, _ := setupEndpointTest(t)

	w := doRequest(t, r, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
