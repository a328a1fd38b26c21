package api

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"goRaceServer/config"
	"goRaceServer/db"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const userIDKey contextKey = "userID"

/* =========================
   JWT
========================= */

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Println("⚠️  JWT_SECRET not set, using insecure development secret")
	}
	return []byte(secret)
}

// IssueToken signs a JWT for a user, valid for config.TokenLifetime.
func IssueToken(userID int) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(config.TokenLifetime).Unix(),
		"iat":    time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken validates a signed token and returns the user ID it carries.
func ParseToken(tokenStr string) (int, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	userIDFloat, ok := claims["userId"].(float64)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return int(userIDFloat), nil
}

// RequireAuth validates the Bearer token and stores the user ID in the
// request context.
func RequireAuth(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			sendError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		userID, err := ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			sendError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		handler(w, r.WithContext(ctx))
	}
}

// userIDFrom extracts the authenticated user ID placed by RequireAuth.
func userIDFrom(r *http.Request) int {
	id, _ := r.Context().Value(userIDKey).(int)
	return id
}

/* =========================
   CORS
========================= */

// CORS adds CORS headers to allow frontend requests
func CORS(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler(w, r)
	}
}

/* =========================
   RATE LIMITING
   Fixed window per IP, counters in Redis (INCR + EXPIRE)
========================= */

// RateLimit rejects requests from an IP past max hits per window within a
// named scope. Local development traffic is exempt. Without Redis the
// limiter degrades to a no-op.
func RateLimit(scope string, window time.Duration, max int64, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if ip == "127.0.0.1" || ip == "::1" {
			handler(w, r)
			return
		}

		count, err := db.CountRequest(r.Context(), scope, ip, window)
		if err != nil {
			log.Printf("⚠️  Rate limit check failed: %v", err)
			handler(w, r) // fail open
			return
		}
		if count > max {
			sendError(w, http.StatusTooManyRequests, "Too many requests, slow down")
			return
		}

		handler(w, r)
	}
}

func clientIP(r *http.Request) string {
	// Behind a proxy the first X-Forwarded-For hop is the client.
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

/* =========================
   SAVE PROTECTION
========================= */

// NoStore disables caching on game-state routes so proxies never serve a
// stale save to the client.
func NoStore(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		handler(w, r)
	}
}
