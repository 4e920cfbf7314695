// Package employee contains all HTTP handlers related to the Employee resource.
//
// Handlers follow the closure / factory pattern: a factory receives the
// dependencies once at startup and returns the http.HandlerFunc that runs
// on every request.
//
//	router.HandleFunc("POST /api/employees", employee.New(records, engine))
//
// Every write path runs the validation engine before touching the record
// store; the store itself accepts whatever it is given.
package employee

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aanand-mishra/employees-api/internal/report"
	"github.com/aanand-mishra/employees-api/internal/types"
	"github.com/aanand-mishra/employees-api/internal/utils/response"
	"github.com/aanand-mishra/employees-api/internal/validation"
)

// Records is the record store contract the handlers depend on.
type Records interface {
	List() []types.Employee
	Get(id int) (types.Employee, bool)
	Create(fields types.Employee) types.Employee
	Update(id int, patch types.EmployeePatch) (types.Employee, bool)
	Delete(id int) bool
}

// Validator is the validation engine contract the handlers depend on.
type Validator interface {
	Validate(candidate types.Employee) validation.ErrorMap
}

var (
	errEmptyBody = errors.New("request body is empty")
	errBadID     = errors.New("invalid id: must be an integer")
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/employees
// Validates the form payload and creates a new employee.
//
// Request body (JSON), isActive defaults to true:
//
//	{ "fullName": "A", "gender": "Male", "dob": "2000-01-01",
//	  "state": "Texas", "profileImage": "data:image/png;base64,..." }
//
// Success response (201 Created): the stored employee, including its id.
// Error responses:
//
//	400 Bad Request  empty body, malformed JSON, or failed validation
//
// ─────────────────────────────────────────────────────────────────────────────
func New(records Records, v Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating an employee")

		var in types.EmployeeInput
		if !decode(w, r, &in) {
			return
		}

		candidate := in.Employee()
		if errs := v.Validate(candidate); !errs.Empty() {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		created := records.Create(candidate)
		slog.Info("employee created", slog.Int("id", created.ID))

		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/employees/{id}
//
//	200 OK           the employee
//	400 Bad Request  id is not a valid integer
//	404 Not Found    no employee with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(records Records) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		emp, found := records.Get(id)
		if !found {
			notFound(w, id)
			return
		}

		response.WriteJSON(w, http.StatusOK, emp)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/employees
// Returns the collection in store order, optionally narrowed by query
// parameters:
//
//	?search=jo&gender=Male&status=Active
//
// Returns an empty array [] (not null) when nothing matches.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(records Records) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := report.Query{
			Search: r.URL.Query().Get("search"),
			Gender: r.URL.Query().Get("gender"),
			Status: r.URL.Query().Get("status"),
		}

		response.WriteJSON(w, http.StatusOK, q.Apply(records.List()))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/employees/{id}
// Validates a full form payload and merges it into the existing record.
//
//	200 OK           the updated employee
//	400 Bad Request  invalid id, empty body, or validation failure
//	404 Not Found    no employee with that id
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(records Records, v Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("updating an employee", slog.Int("id", id))

		var in types.EmployeeInput
		if !decode(w, r, &in) {
			return
		}

		candidate := in.Employee()
		if errs := v.Validate(candidate); !errs.Empty() {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		updated, found := records.Update(id, types.PatchFrom(candidate))
		if !found {
			notFound(w, id)
			return
		}

		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Patch handles PATCH /api/employees/{id}
// Merges only the supplied fields. The merged record must still pass
// validation, e.g.
//
//	{ "isActive": false }
//
// ─────────────────────────────────────────────────────────────────────────────
func Patch(records Records, v Validator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("patching an employee", slog.Int("id", id))

		var patch types.EmployeePatch
		if !decode(w, r, &patch) {
			return
		}

		current, found := records.Get(id)
		if !found {
			notFound(w, id)
			return
		}
		if errs := v.Validate(patch.Apply(current)); !errs.Empty() {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
			return
		}

		updated, found := records.Update(id, patch)
		if !found {
			notFound(w, id)
			return
		}

		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/employees/{id}
// Deleting an id that does not exist is not an error, so repeating a
// delete is safe.
//
//	{ "status": "deleted", "id": 3 }
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(records Records) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if records.Delete(id) {
			slog.Info("employee deleted", slog.Int("id", id))
		}

		response.WriteJSON(w, http.StatusOK, map[string]any{"status": "deleted", "id": id})
	}
}

// Dashboard handles GET /api/dashboard with total/active/inactive counts.
func Dashboard(records Records) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, report.Summarize(records.List()))
	}
}

// Print handles GET /api/employees/print and renders the printable list
// as an HTML document.
func Print(records Records, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.WriteHTML(w, records.List(), now()); err != nil {
			slog.Error("error rendering print view", slog.String("error", err.Error()))
		}
	}
}

// decode reads a JSON body into dst, writing a 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errEmptyBody))
		return false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}
	return true
}

// pathID parses the {id} path segment, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(errBadID))
		return 0, false
	}
	return id, true
}

func notFound(w http.ResponseWriter, id int) {
	response.WriteJSON(w, http.StatusNotFound,
		response.GeneralError(errors.New("no employee found with id: "+strconv.Itoa(id))))
}
