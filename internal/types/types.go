// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, the record store and validation can all import types
// without depending on each other.
package types

// Employee represents an employee record in our system.
//
// Struct tags serve two purposes:
//
//  1. json:"...": controls how the field appears when encoded to JSON.
//     The same encoding is used for the HTTP API and for the durable
//     slot, so the persisted shape is identical to the in-memory shape.
//
//  2. validate:"...": rules checked by the go-playground/validator
//     package. "notblank", "isodate" and "adult" are custom rules
//     registered by the validation package.
//
// ID is never accepted from the client: the record store assigns it.
type Employee struct {
	ID           int    `json:"id"`
	FullName     string `json:"fullName"     validate:"notblank"`
	Gender       string `json:"gender"       validate:"required,gender"`
	DOB          string `json:"dob"          validate:"required,isodate,adult"`
	State        string `json:"state"        validate:"required,usstate"`
	ProfileImage string `json:"profileImage" validate:"required"`
	IsActive     bool   `json:"isActive"`
}

// EmployeePatch is a partial update. A nil field means "leave unchanged".
type EmployeePatch struct {
	FullName     *string `json:"fullName,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	DOB          *string `json:"dob,omitempty"`
	State        *string `json:"state,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// Apply merges the non-nil fields of p into e and returns the result.
// The ID is never touched.
func (p EmployeePatch) Apply(e Employee) Employee {
	if p.FullName != nil {
		e.FullName = *p.FullName
	}
	if p.Gender != nil {
		e.Gender = *p.Gender
	}
	if p.DOB != nil {
		e.DOB = *p.DOB
	}
	if p.State != nil {
		e.State = *p.State
	}
	if p.ProfileImage != nil {
		e.ProfileImage = *p.ProfileImage
	}
	if p.IsActive != nil {
		e.IsActive = *p.IsActive
	}
	return e
}

// PatchFrom builds a patch that overwrites every user-editable field of e.
// Used when a full form is submitted for an existing record.
func PatchFrom(e Employee) EmployeePatch {
	return EmployeePatch{
		FullName:     &e.FullName,
		Gender:       &e.Gender,
		DOB:          &e.DOB,
		State:        &e.State,
		ProfileImage: &e.ProfileImage,
		IsActive:     &e.IsActive,
	}
}

// EmployeeInput is the create/edit form payload. IsActive is a pointer so
// an omitted value can default to true.
type EmployeeInput struct {
	FullName     string `json:"fullName"`
	Gender       string `json:"gender"`
	DOB          string `json:"dob"`
	State        string `json:"state"`
	ProfileImage string `json:"profileImage"`
	IsActive     *bool  `json:"isActive"`
}

// Employee converts the form payload into an id-less Employee.
func (in EmployeeInput) Employee() Employee {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return Employee{
		FullName:     in.FullName,
		Gender:       in.Gender,
		DOB:          in.DOB,
		State:        in.State,
		ProfileImage: in.ProfileImage,
		IsActive:     active,
	}
}
