package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"partner-management-api/config"
	"partner-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(&models.User{}))

	previous := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = previous })
	return db
}

func seedAuthUser(t *testing.T, db *gorm.DB, role string, active bool) models.User {
	t.Helper()
	user := models.User{
		UserID:   uuid.NewString(),
		Name:     "Auth Test",
		Email:    uuid.NewString() + "@example.com",
		Password: "irrelevant",
		Role:     role,
		Active:   active,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func signToken(t *testing.T, user models.User, expiresAt time.Time) string {
	t.Helper()
	claims := Claims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(os.Getenv("JWT_SECRET")))
	require.NoError(t, err)
	return token
}

func newGuardedRouter(minRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/protected")
	group.Use(AuthMiddleware())
	if minRole != "" {
		group.Use(RequireMinRole(minRole))
	}
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})
	return router
}

func TestAuthMiddleware_MissingCredentialIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	newAuthTestDB(t)
	router := newGuardedRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Authentication required")
}

func TestAuthMiddleware_ExpiredTokenIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	user := seedAuthUser(t, db, models.RoleAdmin, true)
	router := newGuardedRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, user, time.Now().Add(-time.Hour)))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Token expired")
}

func TestAuthMiddleware_GarbageTokenIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	newAuthTestDB(t)
	router := newGuardedRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthMiddleware_DeletedUserIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	user := seedAuthUser(t, db, models.RoleAdmin, true)
	token := signToken(t, user, time.Now().Add(time.Hour))
	require.NoError(t, db.Model(&models.User{}).
		Where("user_id = ?", user.UserID).
		Update("delete_at", time.Now()).Error)
	router := newGuardedRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "User not found")
}

func TestAuthMiddleware_InactiveUserIs401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	user := seedAuthUser(t, db, models.RoleAdmin, false)
	router := newGuardedRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, user, time.Now().Add(time.Hour)))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Account is deactivated")
}

func TestAuthMiddleware_AcceptsCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	user := seedAuthUser(t, db, models.RoleUser, true)
	router := newGuardedRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: signToken(t, user, time.Now().Add(time.Hour))})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireMinRole_InsufficientRoleIs403Never401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	reviewer := seedAuthUser(t, db, models.RoleReviewer, true)
	router := newGuardedRouter(models.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, reviewer, time.Now().Add(time.Hour)))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "Insufficient permissions")
}

func TestRequireMinRole_HigherRolePasses(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	super := seedAuthUser(t, db, models.RoleSuperAdmin, true)
	router := newGuardedRouter(models.RoleReviewer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, super, time.Now().Add(time.Hour)))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), models.RoleSuperAdmin)
}
