// Package middleware holds the http.Handler wrappers shared by all routes.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/employees-api/internal/utils/response"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id back to the client.
const RequestIDHeader = "X-Request-ID"

// Session is the part of the auth gate the middleware needs.
type Session interface {
	LoggedIn() bool
}

// RequestLog tags every request with an id and logs method, path, status
// and duration once it completes.
func RequestLog(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		log.Info("request",
			slog.String("request_id", id),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// RequireLogin rejects requests with 401 while the session flag is off.
func RequireLogin(session Session, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.LoggedIn() {
			response.WriteJSON(w, http.StatusUnauthorized,
				response.GeneralError(errors.New("login required")))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
