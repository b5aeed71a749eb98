// Package models contains the request and response payloads of the HTTP API
// and the course entity shared between the service and storage layers.
package models

import (
	"net/http"

	"github.com/patric-chuzhbe/courseapi/internal/user"
)

// Course is a catalog entry owned by exactly one user.
// EstimatedTime and MaterialsNeeded are optional and stored as NULL when absent.
type Course struct {
	ID              int
	Title           string
	Description     string
	EstimatedTime   *string
	MaterialsNeeded *string
	UserID          int
}

// CourseWithOwner is a course joined with its owning user's record.
type CourseWithOwner struct {
	Course
	Owner user.User
}

// CreateUserRequest is the payload of `POST /api/users`.
// Password arrives as plaintext and is hashed before persistence.
type CreateUserRequest struct {
	FirstName    string `json:"firstName" validate:"notblank"`
	LastName     string `json:"lastName" validate:"notblank"`
	EmailAddress string `json:"emailAddress" validate:"notblank"`
	Password     string `json:"password" validate:"notblank"`
}

// ValidationMessages returns the per-field messages reported when a
// required field is missing or blank.
func (CreateUserRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"FirstName":    "Please, enter your first name",
		"LastName":     "Please, enter your last name",
		"EmailAddress": "Please, enter your email",
		"Password":     "Please, enter a password",
	}
}

// CourseRequest is the payload of `POST /api/courses` and `PUT /api/courses/{courseID}`.
type CourseRequest struct {
	Title           string  `json:"title" validate:"notblank"`
	Description     string  `json:"description" validate:"notblank"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

// ValidationMessages returns the per-field messages reported when a
// required field is missing or blank.
func (CourseRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"Title":       "Please, enter a course title",
		"Description": "Please, enter a course description",
	}
}

// UserResponse carries the public fields of a user.
// The password hash is deliberately not part of this type.
type UserResponse struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

// CourseResponse is a course as returned to API clients, with the owner's
// public fields embedded.
type CourseResponse struct {
	ID              int          `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	EstimatedTime   *string      `json:"estimatedTime,omitempty"`
	MaterialsNeeded *string      `json:"materialsNeeded,omitempty"`
	UserID          int          `json:"userId"`
	User            UserResponse `json:"user"`
}

// CoursesResponse wraps the course list of `GET /api/courses`.
type CoursesResponse struct {
	Courses []CourseResponse `json:"courses"`
}

// SingleCourseResponse wraps the course of `GET /api/courses/{courseID}`.
type SingleCourseResponse struct {
	Course CourseResponse `json:"course"`
}

// MessageResponse is the generic `{"message": ...}` body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorsResponse is the `{"errors": [...]}` body of a failed
// field validation, one message per failing rule in declaration order.
type ValidationErrorsResponse struct {
	Errors []string `json:"errors"`
}

// UnhandledErrorResponse is the body produced by the central error handler
// for failures without a declared status.
type UnhandledErrorResponse struct {
	Message string   `json:"message"`
	Details struct{} `json:"error"`
}

// APIError is an error carrying the HTTP status it should be surfaced with.
// The central error-translation layer in the router maps it to a
// `{"message": ...}` response.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError returns an APIError with the given status and client-visible message.
func NewAPIError(status int, message string) *APIError {
	return &APIError{
		Status:  status,
		Message: message,
	}
}

// ErrCourseNotFound is returned when a referenced course id does not exist.
var ErrCourseNotFound = NewAPIError(http.StatusNotFound, "Course Not Found")

// Storage backend kinds selectable via configuration.
const (
	StorageTypeUnknown = iota
	StorageTypePostgresql
	StorageTypeMemory
)
