// Package service implements the business operations behind the HTTP
// handlers: user registration with secret hashing and the course CRUD cycle.
package service

import (
	"context"

	"github.com/thoas/go-funk"
	"golang.org/x/crypto/bcrypt"

	"github.com/patric-chuzhbe/courseapi/internal/models"
	"github.com/patric-chuzhbe/courseapi/internal/user"
)

type userKeeper interface {
	CreateUser(ctx context.Context, usr *user.User) (int, error)
	FindUserByEmail(ctx context.Context, emailAddress string) (*user.User, bool, error)
}

type courseKeeper interface {
	ListCourses(ctx context.Context) ([]models.CourseWithOwner, error)
	GetCourse(ctx context.Context, courseID int) (*models.CourseWithOwner, bool, error)
	CreateCourse(ctx context.Context, course *models.Course) (int, error)
	UpdateCourse(ctx context.Context, course *models.Course) (bool, error)
	DeleteCourse(ctx context.Context, courseID int) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type storage interface {
	userKeeper
	courseKeeper
	pinger
}

// Service composes the storage collaborator into the operations the API exposes.
type Service struct {
	db storage
}

// New returns a Service backed by the given storage.
func New(db storage) *Service {
	return &Service{db: db}
}

// RegisterUser hashes the supplied plaintext secret and persists the new user.
// Email uniqueness is left to the storage constraint.
func (s *Service) RegisterUser(ctx context.Context, req models.CreateUserRequest) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.db.CreateUser(ctx, &user.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		PasswordHash: string(passwordHash),
	})

	return err
}

func userToResponse(usr user.User) models.UserResponse {
	return models.UserResponse{
		FirstName:    usr.FirstName,
		LastName:     usr.LastName,
		EmailAddress: usr.EmailAddress,
	}
}

func courseToResponse(course models.CourseWithOwner) models.CourseResponse {
	return models.CourseResponse{
		ID:              course.ID,
		Title:           course.Title,
		Description:     course.Description,
		EstimatedTime:   course.EstimatedTime,
		MaterialsNeeded: course.MaterialsNeeded,
		UserID:          course.UserID,
		User:            userToResponse(course.Owner),
	}
}

// GetCurrentUser maps an authenticated user to its public representation.
func (s *Service) GetCurrentUser(usr *user.User) models.UserResponse {
	return userToResponse(*usr)
}

// GetCourses returns all courses with their owners' public fields.
func (s *Service) GetCourses(ctx context.Context) ([]models.CourseResponse, error) {
	courses, err := s.db.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	return funk.Map(courses, courseToResponse).([]models.CourseResponse), nil
}

// GetCourse returns one course by id with its owner's public fields.
// The second return value reports whether the course exists.
func (s *Service) GetCourse(ctx context.Context, courseID int) (models.CourseResponse, bool, error) {
	course, found, err := s.db.GetCourse(ctx, courseID)
	if err != nil || !found {
		return models.CourseResponse{}, found, err
	}

	return courseToResponse(*course), true, nil
}

// CreateCourse persists a new course owned by the given user and returns its id.
func (s *Service) CreateCourse(ctx context.Context, req models.CourseRequest, ownerID int) (int, error) {
	return s.db.CreateCourse(ctx, &models.Course{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
		UserID:          ownerID,
	})
}

// UpdateCourse overwrites the course with the supplied fields.
// The owner is reassigned to the acting caller.
// TODO: verify the caller owns the course before applying changes; today any
// authenticated user can take over any course via PUT.
func (s *Service) UpdateCourse(
	ctx context.Context,
	courseID int,
	req models.CourseRequest,
	ownerID int,
) (bool, error) {
	return s.db.UpdateCourse(ctx, &models.Course{
		ID:              courseID,
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
		UserID:          ownerID,
	})
}

// DeleteCourse removes a course by id. Unknown ids are not an error.
func (s *Service) DeleteCourse(ctx context.Context, courseID int) error {
	return s.db.DeleteCourse(ctx, courseID)
}

// Ping checks the health of the storage layer.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
