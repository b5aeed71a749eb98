// Package mockstorage provides a testify-based mock implementation
// of the internal storage interfaces used by the router package.
// It is used for unit testing HTTP handlers by simulating storage behavior.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/patric-chuzhbe/courseapi/internal/models"
	"github.com/patric-chuzhbe/courseapi/internal/user"
)

// StorageMock is a testify mock that implements all interfaces
// used by the router and the auth middleware for storage operations.
//
// Use it in handler tests to simulate database behavior.
type StorageMock struct {
	mock.Mock
}

// FindUserByEmail mocks the user lookup performed by the auth gate.
func (m *StorageMock) FindUserByEmail(ctx context.Context, emailAddress string) (*user.User, bool, error) {
	args := m.Called(ctx, emailAddress)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

// CreateUser mocks user creation and returns a generated ID.
func (m *StorageMock) CreateUser(ctx context.Context, usr *user.User) (int, error) {
	args := m.Called(ctx, usr)
	return args.Int(0), args.Error(1)
}

// ListCourses mocks fetching all courses with their owners.
func (m *StorageMock) ListCourses(ctx context.Context) ([]models.CourseWithOwner, error) {
	args := m.Called(ctx)
	courses, _ := args.Get(0).([]models.CourseWithOwner)
	return courses, args.Error(1)
}

// GetCourse mocks fetching one course by id.
func (m *StorageMock) GetCourse(ctx context.Context, courseID int) (*models.CourseWithOwner, bool, error) {
	args := m.Called(ctx, courseID)
	course, _ := args.Get(0).(*models.CourseWithOwner)
	return course, args.Bool(1), args.Error(2)
}

// CreateCourse mocks course creation and returns a generated ID.
func (m *StorageMock) CreateCourse(ctx context.Context, course *models.Course) (int, error) {
	args := m.Called(ctx, course)
	return args.Int(0), args.Error(1)
}

// UpdateCourse mocks overwriting a course by id.
func (m *StorageMock) UpdateCourse(ctx context.Context, course *models.Course) (bool, error) {
	args := m.Called(ctx, course)
	return args.Bool(0), args.Error(1)
}

// DeleteCourse mocks removing a course by id.
func (m *StorageMock) DeleteCourse(ctx context.Context, courseID int) error {
	args := m.Called(ctx, courseID)
	return args.Error(0)
}

// Ping mocks the pinger interface to simulate a health check.
func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close mocks closing the storage and releasing resources.
func (m *StorageMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
