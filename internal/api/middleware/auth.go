package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rohits-web03/ideaorbit/internal/models"
	"github.com/rohits-web03/ideaorbit/internal/utils"
	"gorm.io/gorm"
)

type contextKey string

const userKey contextKey = "user"

// Auth verifies the Authorization bearer token and attaches the resolved
// user to the request context. Missing header or a vanished user yield
// 401, a token that fails verification yields 403.
func Auth(db *gorm.DB, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			tokenStr, hasBearer := strings.CutPrefix(authHeader, "Bearer ")
			if authHeader == "" || !hasBearer || tokenStr == "" {
				log.Printf("auth: header_present=%t bearer=%t", authHeader != "", hasBearer)
				utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
					Message: "Missing bearer token",
				})
				return
			}

			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				log.Printf("auth: token_len=%d verify failed: %v", len(tokenStr), err)
				utils.JSONResponse(w, http.StatusForbidden, utils.Payload{
					Message: "Invalid or expired token",
				})
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				utils.JSONResponse(w, http.StatusForbidden, utils.Payload{
					Message: "Invalid or expired token",
				})
				return
			}

			userID, ok := claims["userId"].(string)
			if !ok || userID == "" {
				utils.JSONResponse(w, http.StatusForbidden, utils.Payload{
					Message: "Invalid or expired token",
				})
				return
			}

			// The token may outlive its account.
			var user models.User
			if err := db.First(&user, "id = ?", userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
						Message: "User no longer exists",
					})
					return
				}
				utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
					Message: "Database error",
				})
				return
			}

			log.Printf("auth: token_len=%d user=%s", len(tokenStr), user.ID)

			ctx := context.WithValue(r.Context(), userKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom extracts the authenticated user placed by Auth.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
