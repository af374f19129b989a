// Package middleware provides HTTP middleware for the EcoLearn server.
//
// ────────────────────────────────────────────────────────────────────
// LEARNING NOTE — what is middleware?
// ────────────────────────────────────────────────────────────────────
// In HTTP servers, "middleware" is a function that wraps a handler to
// add behaviour before and/or after it runs. The pattern in Go is:
//
//	func MyMiddleware(next http.Handler) http.Handler {
//	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	        // do something before
//	        next.ServeHTTP(w, r)  // call the real handler
//	        // do something after
//	    })
//	}
//
// Middleware can be chained: CORS(Authenticate(handler)) means CORS
// runs first, then Authenticate, then the handler.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Elizabethomito/ecolearn/internal/accounts"
	"github.com/Elizabethomito/ecolearn/internal/apperr"
	"github.com/Elizabethomito/ecolearn/internal/auth"
	"github.com/Elizabethomito/ecolearn/internal/models"
)

// contextKey is a private type for context keys in this package.
// Using a named type prevents key collisions with other packages that
// also store values in the request context.
type contextKey string

const (
	// ContextUser is the key under which the authenticated user record
	// is stored after Authenticate runs.
	ContextUser contextKey = "user"
	// ContextSessionID is the key for the session the token names.
	ContextSessionID contextKey = "session_id"
)

// Resolver turns a token's session back into the current user record.
type Resolver interface {
	Resolve(ctx context.Context, sessionID, userID string) (models.User, error)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Authenticate is a middleware factory configured with the JWT secret
// and the resolver for sessions.
//
// Flow:
//  1. Read the "Authorization: Bearer <token>" header.
//  2. Parse and validate the JWT.
//  3. Resolve the session to the user as stored now, so a status change
//     or deletion takes effect on the next request.
//  4. Store the user and session id in the request context.
//
// A missing or bad token, or an ended session, gets 401. A disabled
// account gets 403 with the reason.
func Authenticate(secret string, resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing or invalid Authorization header"})
				return
			}
			claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
				return
			}

			u, err := resolver.Resolve(r.Context(), claims.SessionID(), claims.UserID)
			var perr *apperr.PolicyError
			switch {
			case err == nil:
			case errors.As(err, &perr):
				writeJSON(w, http.StatusForbidden, map[string]string{"error": perr.Reason, "redirect": string(accounts.DestLogin)})
				return
			case errors.Is(err, apperr.ErrUnauthenticated):
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "session expired"})
				return
			default:
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u, claims.SessionID())))
		})
	}
}

// RequireRole only lets through users with one of the given roles. Must
// be used after Authenticate.
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	allowed := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFrom(r.Context())
			if !ok || !allowed[u.Role] {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireActive holds pending accounts at the awaiting-approval gate. The
// 403 body names where the client should send the user. Super-admins
// always pass.
func RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var user *models.User
		if u, ok := UserFrom(r.Context()); ok {
			user = &u
		}
		if d := accounts.Check(user, accounts.Access{}); !d.Allowed {
			reason := "account is awaiting approval"
			if d.Redirect != accounts.DestPendingApproval {
				reason = "login required"
			}
			writeJSON(w, http.StatusForbidden, map[string]string{"error": reason, "redirect": string(d.Redirect)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CORS adds permissive CORS headers so the web client can call the API
// from a different origin.
//
// LEARNING NOTE — what is CORS?
// Browsers enforce the Same-Origin Policy: a page at origin A cannot
// fetch from origin B unless B explicitly allows it via CORS headers.
// "Access-Control-Allow-Origin: *" means any origin is allowed.
// The OPTIONS preflight is a browser pre-check; we must reply 204 so
// the real request is allowed to proceed.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder remembers the status code a handler wrote.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logger logs one line per request with its method, path, status and
// duration.
func Logger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			level := slog.LevelInfo
			if rec.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// UserFrom returns the authenticated user stored by Authenticate.
func UserFrom(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(ContextUser).(models.User)
	return u, ok
}

// SessionIDFrom returns the session id stored by Authenticate.
func SessionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ContextSessionID).(string)
	return id
}

// WithUser stores u and its session in ctx.
func WithUser(ctx context.Context, u models.User, sessionID string) context.Context {
	ctx = context.WithValue(ctx, ContextUser, u)
	return context.WithValue(ctx, ContextSessionID, sessionID)
}
