package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"user-api/internal/data/entity"
	"user-api/internal/dto/request"
	"user-api/internal/dto/response"
	"user-api/pkg/apperror"
	"user-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

func withIdentity(r *http.Request, identity *utils.Identity) *http.Request {
	return r.WithContext(utils.SetIdentity(r.Context(), identity))
}

func TestAuthHandlerRegister(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc, false, zap.NewNop())

	resp := &response.AuthResponse{
		User:      response.UserSummary{ID: uuid.NewString(), Email: "a@b.com", Role: entity.RoleUser},
		Token:     "jwt",
		ExpiresIn: "24h",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	svc.On("Register", mock.Anything, mock.MatchedBy(func(req *request.RegisterRequest) bool {
		return req.Email == "a@b.com" && req.FirstName == "Ada"
	})).Return(resp, nil)

	body := `{"email":"a@b.com","password":"Password1!","first_name":"Ada","last_name":"Lovelace"}`
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Status)
	assert.Contains(t, string(env.Data), `"token":"jwt"`)
	svc.AssertExpectations(t)
}

func TestAuthHandlerRegisterRejectsUnknownRole(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc, false, zap.NewNop())

	body := `{"email":"a@b.com","password":"Password1!","first_name":"Ada","last_name":"Lovelace","role":"root"}`
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeEnvelope(t, rec).Message)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandlerLoginErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		status  int
		message string
	}{
		{"empty body", "", nil, http.StatusBadRequest, "Request body is required"},
		{"malformed", "{", nil, http.StatusBadRequest, "Invalid request body"},
		{"bad credentials", `{"email":"a@b.com","password":"x"}`, apperror.Unauthorized("Invalid email or password"), http.StatusUnauthorized, "Invalid email or password"},
		{"deactivated", `{"email":"a@b.com","password":"x"}`, apperror.Unauthorized("Account is deactivated"), http.StatusUnauthorized, "Account is deactivated"},
		{"store down", `{"email":"a@b.com","password":"x"}`, errors.New("dial tcp: refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockAuthService)
			if tt.err != nil {
				svc.On("Login", mock.Anything, mock.Anything).Return(nil, tt.err)
			}
			h := NewAuthHandler(svc, false, zap.NewNop())

			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Status)
			assert.Equal(t, tt.message, env.Message)
			assert.NotContains(t, string(env.Errors), "refused")
		})
	}
}

func TestAuthHandlerValidationFields(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperror.ValidationFields("Validation failed", map[string]string{"email": "email is required"}))
	h := NewAuthHandler(svc, false, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Validation failed", env.Message)
	assert.JSONEq(t, `{"email":"email is required"}`, string(env.Errors))
}

func TestAuthHandlerDetailInDevelopment(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, errors.New("dial tcp: refused"))
	h := NewAuthHandler(svc, true, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@b.com","password":"x"}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Errors), "refused")
}

func TestAuthHandlerRefreshAndLogout(t *testing.T) {
	identity := &utils.Identity{ID: uuid.New(), Email: "a@b.com", Role: entity.RoleUser}
	svc := new(mockAuthService)
	svc.On("Refresh", mock.Anything, identity.ID).Return(&response.TokenResponse{Token: "fresh", ExpiresIn: "24h"}, nil)
	svc.On("Logout", mock.Anything, identity).Return(nil)
	h := NewAuthHandler(svc, false, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Refresh(rec, withIdentity(httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil), identity))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), "fresh")

	rec = httptest.NewRecorder()
	h.Logout(rec, withIdentity(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), identity))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", decodeEnvelope(t, rec).Message)

	rec = httptest.NewRecorder()
	h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	svc.AssertExpectations(t)
}
