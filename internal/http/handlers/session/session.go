// Package session contains the login/logout handlers for the single
// administrator session.
package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/employees-api/internal/auth"
	"github.com/aanand-mishra/employees-api/internal/utils/response"
)

// Gate is the auth gate contract the handlers depend on.
type Gate interface {
	Login(username, password string) error
	Logout()
	LoggedIn() bool
	User() string
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type status struct {
	LoggedIn bool   `json:"loggedIn"`
	User     string `json:"user,omitempty"`
}

// Login handles POST /api/login. The gate's fixed delay applies to every
// attempt.
//
//	200 OK            { "loggedIn": true, "user": "admin" }
//	401 Unauthorized  { "status": "error", "error": "Invalid username or password" }
func Login(gate Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := gate.Login(c.Username, c.Password); err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				slog.Warn("login rejected", slog.String("username", c.Username))
				response.WriteJSON(w, http.StatusUnauthorized, response.GeneralError(err))
				return
			}
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("logged in", slog.String("username", c.Username))
		response.WriteJSON(w, http.StatusOK, status{LoggedIn: true, User: gate.User()})
	}
}

// Logout handles POST /api/logout.
func Logout(gate Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gate.Logout()
		response.WriteJSON(w, http.StatusOK, status{LoggedIn: false})
	}
}

// Status handles GET /api/session.
func Status(gate Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, status{LoggedIn: gate.LoggedIn(), User: gate.User()})
	}
}
