package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Session is the identity bound into a bearer token
type Session struct {
	UserID string
	Email  string
	Role   string
}

// Guard wraps the routes that mutate cases, users or assignments. Tokens are
// verified statelessly; there is no session store and no refresh, expiry
// forces re-login.
type Guard struct {
	Secret       []byte
	AllowedRoles []string
}

// Middleware rejects requests without a valid bearer token or with a role
// outside the allowed set
func (g Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		session, err := ResolveSession(r, g.Secret)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL,
				"error", err)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		if !roleAllowed(session.Role, g.AllowedRoles) {
			zap.S().Warnw("access denied",
				"url", r.URL,
				"role", session.Role)
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "access denied"}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionContextKey, session)))
	})
}

// SessionFromContext returns the identity the guard resolved for this request
func SessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// IssueToken signs a 24h HS256 token binding the user's id, email and role
func IssueToken(secret []byte, userID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"role":  role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ResolveSession verifies the Authorization bearer token and returns the
// bound identity
func ResolveSession(r *http.Request, secret []byte) (Session, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return Session{}, errors.New("no token provided")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return Session{}, errors.New("malformed authorization header")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("failed to parse token, %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Session{}, errors.New("invalid token")
	}

	session := Session{}
	if v, ok := claims["id"].(string); ok {
		session.UserID = v
	}
	if v, ok := claims["email"].(string); ok {
		session.Email = v
	}
	if v, ok := claims["role"].(string); ok {
		session.Role = v
	}
	if session.UserID == "" {
		return Session{}, errors.New("token missing identity")
	}
	return session, nil
}

func roleAllowed(role string, allowed []string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
