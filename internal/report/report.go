// Package report builds read-only projections of the employee collection:
// dashboard counts, filtered listings and the printable employee list.
// Nothing here mutates the collection.
package report

import (
	"strings"

	"github.com/aanand-mishra/employees-api/internal/types"
	"github.com/samber/lo"
)

// Filter values meaning "no restriction".
const (
	All      = "All"
	Active   = "Active"
	Inactive = "Inactive"
)

// Stats are the dashboard headline numbers.
type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// Summarize counts active and inactive employees.
func Summarize(employees []types.Employee) Stats {
	active := lo.CountBy(employees, func(e types.Employee) bool { return e.IsActive })
	return Stats{
		Total:    len(employees),
		Active:   active,
		Inactive: len(employees) - active,
	}
}

// Query narrows a listing. Empty fields behave like All.
type Query struct {
	Search string // case-insensitive substring of fullName
	Gender string // All, Male, Female, Other
	Status string // All, Active, Inactive
}

// Apply returns the employees matching q, preserving order.
func (q Query) Apply(employees []types.Employee) []types.Employee {
	search := strings.ToLower(q.Search)
	return lo.Filter(employees, func(e types.Employee, _ int) bool {
		if search != "" && !strings.Contains(strings.ToLower(e.FullName), search) {
			return false
		}
		if q.Gender != "" && q.Gender != All && e.Gender != q.Gender {
			return false
		}
		switch q.Status {
		case Active:
			return e.IsActive
		case Inactive:
			return !e.IsActive
		}
		return true
	})
}

// StatusLabel renders isActive the way every listing shows it.
func StatusLabel(active bool) string {
	if active {
		return Active
	}
	return Inactive
}

// Row is one line of the printable list.
type Row struct {
	ID       int
	FullName string
	Gender   string
	State    string
	Status   string
}

// Rows projects employees onto the printable field set.
func Rows(employees []types.Employee) []Row {
	return lo.Map(employees, func(e types.Employee, _ int) Row {
		return Row{
			ID:       e.ID,
			FullName: e.FullName,
			Gender:   e.Gender,
			State:    e.State,
			Status:   StatusLabel(e.IsActive),
		}
	})
}
