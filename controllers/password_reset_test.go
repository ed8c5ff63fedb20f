package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"partner-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newPasswordResetRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/forgot-password", ForgotPassword)
	router.POST("/auth/reset-password", ResetPassword)
	return router
}

func stubResetMail(t *testing.T) *[]string {
	t.Helper()
	var sentTo []string
	original := sendPasswordResetEmail
	sendPasswordResetEmail = func(user models.User, rawToken string) error {
		sentTo = append(sentTo, user.Email)
		return nil
	}
	t.Cleanup(func() { sendPasswordResetEmail = original })
	return &sentTo
}

func stubResetToken(t *testing.T, raw string) {
	t.Helper()
	original := passwordResetTokenGenerator
	passwordResetTokenGenerator = func() (string, error) { return raw, nil }
	t.Cleanup(func() { passwordResetTokenGenerator = original })
}

func TestForgotPassword_IssuesTokenAndMailsIt(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleUser, "password-123")
	sentTo := stubResetMail(t)
	stubResetToken(t, "fixed-raw-token")
	router := newPasswordResetRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/forgot-password", jsonBody(t, gin.H{"email": user.Email}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{user.Email}, *sentTo)

	var token models.UserToken
	require.NoError(t, db.First(&token, "user_id = ?", user.UserID).Error)
	require.Equal(t, "password_reset", token.TokenType)
	require.False(t, token.IsRevoked)
	// the stored token is a hash, never the raw value
	require.NotEqual(t, "fixed-raw-token", token.Token)
	require.True(t, CheckPasswordHash("fixed-raw-token", token.Token))
	require.WithinDuration(t, time.Now().Add(10*time.Minute), token.ExpiresAt, time.Minute)
}

func TestForgotPassword_UnknownEmailStillReturnsOK(t *testing.T) {
	newTestDB(t)
	sentTo := stubResetMail(t)
	router := newPasswordResetRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/forgot-password", jsonBody(t, gin.H{"email": "nobody@example.com"}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "If the email exists")
	require.Empty(t, *sentTo)
}

func TestForgotPassword_ReissueRevokesOlderTokens(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleUser, "password-123")
	stubResetMail(t)
	router := newPasswordResetRouter()

	for range [2]struct{}{} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/auth/forgot-password", jsonBody(t, gin.H{"email": user.Email}))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	var active int64
	db.Model(&models.UserToken{}).
		Where("user_id = ? AND is_revoked = ?", user.UserID, false).
		Count(&active)
	require.Equal(t, int64(1), active)
}

func TestResetPassword_FullFlow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, models.RoleUser, "old password 1")
	sentTo := stubResetMail(t)
	stubResetToken(t, "fixed-raw-token")
	router := newPasswordResetRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/forgot-password", jsonBody(t, gin.H{"email": user.Email}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, *sentTo, 1)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/auth/reset-password", jsonBody(t, gin.H{
		"token":            "fixed-raw-token",
		"new_password":     "brand new pass 9",
		"confirm_password": "brand new pass 9",
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, "user_id = ?", user.UserID).Error)
	require.True(t, CheckPasswordHash("brand new pass 9", stored.Password))

	// the token is single use
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/auth/reset-password", jsonBody(t, gin.H{
		"token":            "fixed-raw-token",
		"new_password":     "yet another pass",
		"confirm_password": "yet another pass",
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid or expired token")

	// the audit row lands off the request path
	require.Eventually(t, func() bool {
		var count int64
		db.Model(&models.AuditLog{}).
			Where("action = ?", models.AuditActionPasswordReset).
			Count(&count)
		return count == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestResetPassword_Validation(t *testing.T) {
	newTestDB(t)
	router := newPasswordResetRouter()

	// mismatched confirmation
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/reset-password", jsonBody(t, gin.H{
		"token":            "whatever",
		"new_password":     "some password 1",
		"confirm_password": "different",
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Passwords do not match")

	// too-short password
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/auth/reset-password", jsonBody(t, gin.H{
		"token":            "whatever",
		"new_password":     "short",
		"confirm_password": "short",
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// unknown token
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/auth/reset-password", jsonBody(t, gin.H{
		"token":            "never-issued",
		"new_password":     "some password 1",
		"confirm_password": "some password 1",
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid or expired token")
}
