//go:build e2e

package auth

import (
	"context"
	"net/http"
	"testing"

	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/tests/common/authtest"
	"tablebook/tests/common/dbtest"
	"tablebook/tests/common/httptest"
	"tablebook/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) TestLogin() {
	s.Run("logs in with valid credentials and sets cookies", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "login@example.com", "customer")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
			reqdto.LoginRequest{Email: "login@example.com", Password: "password123"}, "")

		var resp resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		require.NotEmpty(s.T(), resp.AccessToken)
		require.NotEmpty(s.T(), resp.UserID)

		require.NotNil(s.T(), httptest.ExtractCookie(w, "access_token"))
		require.NotNil(s.T(), httptest.ExtractCookie(w, "refresh_token"))
	})

	s.Run("rejects a wrong password", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "login@example.com", "customer")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
			reqdto.LoginRequest{Email: "login@example.com", Password: "wrong-password"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("does not reveal whether the account exists", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
			reqdto.LoginRequest{Email: "ghost@example.com", Password: "password123"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("rejects an inactive account", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", "customer")
		_, err := s.DB.Exec(context.Background(),
			"UPDATE users SET is_active = false WHERE email = $1", "inactive@example.com")
		require.NoError(s.T(), err)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
			reqdto.LoginRequest{Email: "inactive@example.com", Password: "password123"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "inactive")
	})
}

func (s *AuthSuite) TestSession() {
	s.Run("returns the current user on /me", func() {
		token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "me@example.com", "admin")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/auth/me", nil, token)

		var resp resdto.MeResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		require.NotNil(s.T(), resp.User)
		require.Equal(s.T(), "me@example.com", resp.User.Email)
		require.Equal(s.T(), "admin", resp.User.Role)
	})

	s.Run("refreshes the token pair from the cookie", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "refresh@example.com", "customer")

		loginW := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
			reqdto.LoginRequest{Email: "refresh@example.com", Password: "password123"}, "")
		require.Equal(s.T(), http.StatusOK, loginW.Code)
		cookies := httptest.ExtractCookies(loginW)

		w := httptest.PerformRequestWithCookies(s.T(), s.Router, http.MethodPost, "/api/auth/refresh", nil, cookies, "")

		var resp resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		require.NotEmpty(s.T(), resp.AccessToken)
	})

	s.Run("rejects refresh without a token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/refresh", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Refresh token required")
	})

	s.Run("logout clears the session cookies", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "logout@example.com", "customer")

		loginW := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/login",
			reqdto.LoginRequest{Email: "logout@example.com", Password: "password123"}, "")
		require.Equal(s.T(), http.StatusOK, loginW.Code)
		cookies := httptest.ExtractCookies(loginW)

		authtest.LogoutUser(s.T(), s.Router, cookies)
	})
}
