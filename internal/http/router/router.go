// Package router wires the handler factories into one http.Handler.
//
// Route table:
//
//	POST   /api/login                   → start the admin session
//	POST   /api/logout                  → end it
//	GET    /api/session                 → session flag
//	GET    /api/dashboard               → total / active / inactive counts
//	GET    /api/employees               → list (search, gender, status filters)
//	GET    /api/employees/print         → printable HTML list
//	GET    /api/employees/{id}          → one employee
//	POST   /api/employees               → create
//	PUT    /api/employees/{id}          → full-form update
//	PATCH  /api/employees/{id}          → partial update
//	DELETE /api/employees/{id}          → delete
//	POST   /api/uploads/profile-image   → image → data URI
//
// Everything except the session routes requires a logged-in session.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/employees-api/internal/auth"
	"github.com/aanand-mishra/employees-api/internal/http/handlers/employee"
	"github.com/aanand-mishra/employees-api/internal/http/handlers/session"
	"github.com/aanand-mishra/employees-api/internal/http/middleware"
	"github.com/aanand-mishra/employees-api/internal/store"
	"github.com/aanand-mishra/employees-api/internal/validation"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Store  *store.Store
	Engine *validation.Engine
	Gate   *auth.Gate
	Log    *slog.Logger
	Now    func() time.Time
}

// New returns the application's root handler.
func New(d Deps) http.Handler {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}

	protected := http.NewServeMux()
	protected.HandleFunc("GET /api/dashboard", employee.Dashboard(d.Store))
	protected.HandleFunc("GET /api/employees", employee.GetList(d.Store))
	protected.HandleFunc("GET /api/employees/print", employee.Print(d.Store, d.Now))
	protected.HandleFunc("GET /api/employees/{id}", employee.GetByID(d.Store))
	protected.HandleFunc("POST /api/employees", employee.New(d.Store, d.Engine))
	protected.HandleFunc("PUT /api/employees/{id}", employee.Update(d.Store, d.Engine))
	protected.HandleFunc("PATCH /api/employees/{id}", employee.Patch(d.Store, d.Engine))
	protected.HandleFunc("DELETE /api/employees/{id}", employee.Delete(d.Store))
	protected.HandleFunc("POST /api/uploads/profile-image", employee.UploadImage(d.Engine))

	root := http.NewServeMux()
	root.HandleFunc("POST /api/login", session.Login(d.Gate))
	root.HandleFunc("POST /api/logout", session.Logout(d.Gate))
	root.HandleFunc("GET /api/session", session.Status(d.Gate))
	root.Handle("/api/", middleware.RequireLogin(d.Gate, protected))

	return middleware.RequestLog(d.Log, root)
}
