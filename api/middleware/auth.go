package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/silverium/labelgen/constant"
	appLogger "github.com/silverium/labelgen/infrastructure/logger"
)

type contextKey string

// SubjectContextKey carries the authenticated subject through the request
const SubjectContextKey contextKey = "subject"

// BearerAuth verifies an HMAC-signed JWT bearer token and puts its subject
// into the request context.
func BearerAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, r, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, r, "Invalid authorization header format")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, r, "Invalid or expired token")
				return
			}

			subject, _ := token.Claims.GetSubject()
			ctx := context.WithValue(r.Context(), SubjectContextKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Subject returns the authenticated subject, empty when unauthenticated
func Subject(ctx context.Context) string {
	if subject, ok := ctx.Value(SubjectContextKey).(string); ok {
		return subject
	}
	return ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	appLogger.CtxWarn(r.Context(), "Rejected unauthenticated request", appLogger.LoggerInfo{
		ContextFunction: constant.CtxAPI,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeAPIAuth,
			Message: message,
			Type:    constant.ErrTypeAPI,
		},
		Data: map[string]interface{}{
			constant.DataPath: r.URL.Path,
		},
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
