package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportconnect/sportconnect-api/internal/api/handler/v1/response"
	"github.com/sportconnect/sportconnect-api/internal/config"
	"github.com/sportconnect/sportconnect-api/internal/domain"
	"github.com/sportconnect/sportconnect-api/internal/service"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, user domain.User) (domain.User, error)
	loginFn  func(ctx context.Context, username, password string) (domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	return s.signupFn(ctx, user)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func newAuthTestRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewAuthHandler(&config.APIConfig{JWTSigningKey: "test-signing-key"}, svc)

	router := gin.New()
	router.POST("/auth/signup", handler.HandleSignup)
	router.POST("/auth/login", handler.HandleLogin)

	return router
}

func TestHandleSignup(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{
		signupFn: func(_ context.Context, user domain.User) (domain.User, error) {
			user.ID = 1

			return user, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"username":"marie","password":"secret123"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var got domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, "marie", got.Username)
}

func TestHandleSignup_ForwardsEmailAndAvatarColor(t *testing.T) {
	var received domain.User
	router := newAuthTestRouter(&stubAuthService{
		signupFn: func(_ context.Context, user domain.User) (domain.User, error) {
			received = user
			user.ID = 1

			return user, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"username":"marie","password":"password1","email":"marie@example.com","avatar_color":"#ff0000"}`))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "marie@example.com", received.Email)
	assert.Equal(t, "#ff0000", received.AvatarColor)
}

func TestHandleSignup_InvalidOptionalFields(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed email", `{"username":"marie","password":"password1","email":"not-an-email"}`},
		{"avatar color without hash", `{"username":"marie","password":"password1","avatar_color":"ff0000"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tc.body))
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleSignup_WeakPassword(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{})

	tests := []struct {
		name string
		body string
	}{
		{"too short", `{"username":"marie","password":"ab1"}`},
		{"no digit", `{"username":"marie","password":"abcdefgh"}`},
		{"no letter", `{"username":"marie","password":"12345678"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tc.body))
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleSignup_UsernameTaken(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{
		signupFn: func(_ context.Context, _ domain.User) (domain.User, error) {
			return domain.User{}, service.ErrUsernameExists
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"username":"marie","password":"secret123"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleLogin(t *testing.T) {
	router := newAuthTestRouter(&stubAuthService{
		loginFn: func(_ context.Context, username, _ string) (domain.User, error) {
			return domain.User{ID: 1, Username: username}, nil
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"marie","password":"secret123"}`))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got response.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotEmpty(t, got.Token)
	assert.Equal(t, "marie", got.User.Username)
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	for _, svcErr := range []error{service.ErrUserNotFound, service.ErrWrongPassword} {
		router := newAuthTestRouter(&stubAuthService{
			loginFn: func(_ context.Context, _, _ string) (domain.User, error) {
				return domain.User{}, svcErr
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"marie","password":"secret123"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}
