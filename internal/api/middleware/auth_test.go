package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rohits-web03/ideaorbit/internal/api/handlers"
	"github.com/rohits-web03/ideaorbit/internal/api/middleware"
	"github.com/rohits-web03/ideaorbit/internal/models"
	"github.com/rohits-web03/ideaorbit/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func setupAuth(t *testing.T) (*gorm.DB, http.Handler, *models.User) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrate(db))

	user := &models.User{Email: "alice@example.com", Password: "x", FirstName: "Alice", LastName: "Doe"}
	require.NoError(t, db.Create(user).Error)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := middleware.UserFrom(r.Context())
		require.True(t, ok, "user missing from context")
		assert.Equal(t, user.ID, got.ID)
		w.WriteHeader(http.StatusOK)
	})

	return db, middleware.Auth(db, testSecret)(next), user
}

func signToken(t *testing.T, userID string, expiresIn time.Duration) string {
	t.Helper()
	claims := &handlers.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doAuth(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuth_MissingHeader(t *testing.T) {
	_, handler, _ := setupAuth(t)
	rec := doAuth(handler, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_NotBearer(t *testing.T) {
	_, handler, _ := setupAuth(t)
	rec := doAuth(handler, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_GarbageToken(t *testing.T) {
	_, handler, _ := setupAuth(t)
	rec := doAuth(handler, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	_, handler, user := setupAuth(t)
	token := signToken(t, user.ID.String(), -time.Hour)
	rec := doAuth(handler, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuth_WrongSigningKey(t *testing.T) {
	_, handler, user := setupAuth(t)
	claims := &handlers.Claims{
		UserID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)
	rec := doAuth(handler, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuth_DeletedUser(t *testing.T) {
	db, handler, user := setupAuth(t)
	token := signToken(t, user.ID.String(), time.Hour)
	require.NoError(t, db.Delete(user).Error)

	rec := doAuth(handler, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	_, handler, user := setupAuth(t)
	token := signToken(t, user.ID.String(), time.Hour)
	rec := doAuth(handler, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}
