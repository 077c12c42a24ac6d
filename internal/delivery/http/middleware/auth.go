package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const (
	// SubjectIDKey carries the authenticated user or admin ID.
	SubjectIDKey contextKey = "subjectID"

	TokenTypeUser  = "user"
	TokenTypeAdmin = "admin"

	bearerSchema = "Bearer "
)

// Claims are shared by user and admin tokens; Type decides which routes the
// token opens.
type Claims struct {
	SubjectID string `json:"sub_id"`
	Username  string `json:"username"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

func GenerateToken(subjectID, username, tokenType, secret string, ttl time.Duration) (string, error) {
	claims := Claims{
		SubjectID: subjectID,
		Username:  username,
		Type:      tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Auth returns middleware admitting only tokens of the given type.
func Auth(secret, tokenType string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(*Claims)
			if !ok || claims.Type != tokenType {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SubjectIDKey, claims.SubjectID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, bearerSchema) {
		return strings.TrimPrefix(authHeader, bearerSchema)
	}
	return ""
}

// GetSubjectID extracts the authenticated subject from the request context.
func GetSubjectID(ctx context.Context) (string, bool) {
	subjectID, ok := ctx.Value(SubjectIDKey).(string)
	return subjectID, ok
}
