// Package memorystorage implements the application storage in process memory.
// It is used when no database DSN is configured and as the backend of choice
// in tests.
package memorystorage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/patric-chuzhbe/courseapi/internal/models"
	"github.com/patric-chuzhbe/courseapi/internal/user"
)

// MemoryStorage keeps users and courses in maps guarded by a mutex.
type MemoryStorage struct {
	mu sync.RWMutex

	users        map[int]*user.User
	usersByEmail map[string]int
	courses      map[int]*models.Course

	nextUserID   int
	nextCourseID int
}

// New returns an empty MemoryStorage.
func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		users:        map[int]*user.User{},
		usersByEmail: map[string]int{},
		courses:      map[int]*models.Course{},
		nextUserID:   1,
		nextCourseID: 1,
	}, nil
}

// FindUserByEmail fetches the user whose email address exactly matches the
// given identifier.
func (theStorage *MemoryStorage) FindUserByEmail(
	ctx context.Context,
	emailAddress string,
) (*user.User, bool, error) {
	theStorage.mu.RLock()
	defer theStorage.mu.RUnlock()

	userID, found := theStorage.usersByEmail[emailAddress]
	if !found {
		return nil, false, nil
	}

	usrCopy := *theStorage.users[userID]
	return &usrCopy, true, nil
}

// CreateUser stores a new user and returns the assigned id.
func (theStorage *MemoryStorage) CreateUser(ctx context.Context, usr *user.User) (int, error) {
	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	userID := theStorage.nextUserID
	theStorage.nextUserID++

	usrCopy := *usr
	usrCopy.ID = userID
	theStorage.users[userID] = &usrCopy
	theStorage.usersByEmail[usrCopy.EmailAddress] = userID

	return userID, nil
}

func (theStorage *MemoryStorage) courseWithOwner(course *models.Course) (models.CourseWithOwner, error) {
	owner, found := theStorage.users[course.UserID]
	if !found {
		return models.CourseWithOwner{}, fmt.Errorf("user with id %d does not exist", course.UserID)
	}

	return models.CourseWithOwner{
		Course: *course,
		Owner:  *owner,
	}, nil
}

// ListCourses returns all courses with their owners, ordered by course id.
func (theStorage *MemoryStorage) ListCourses(ctx context.Context) ([]models.CourseWithOwner, error) {
	theStorage.mu.RLock()
	defer theStorage.mu.RUnlock()

	courseIDs := make([]int, 0, len(theStorage.courses))
	for courseID := range theStorage.courses {
		courseIDs = append(courseIDs, courseID)
	}
	sort.Ints(courseIDs)

	result := make([]models.CourseWithOwner, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		course, err := theStorage.courseWithOwner(theStorage.courses[courseID])
		if err != nil {
			return nil, err
		}
		result = append(result, course)
	}

	return result, nil
}

// GetCourse fetches one course by id together with its owning user.
func (theStorage *MemoryStorage) GetCourse(
	ctx context.Context,
	courseID int,
) (*models.CourseWithOwner, bool, error) {
	theStorage.mu.RLock()
	defer theStorage.mu.RUnlock()

	course, found := theStorage.courses[courseID]
	if !found {
		return nil, false, nil
	}

	result, err := theStorage.courseWithOwner(course)
	if err != nil {
		return nil, false, err
	}

	return &result, true, nil
}

// CreateCourse stores a new course and returns the assigned id.
// The owning user must exist, mirroring the database foreign key.
func (theStorage *MemoryStorage) CreateCourse(ctx context.Context, course *models.Course) (int, error) {
	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	if _, found := theStorage.users[course.UserID]; !found {
		return 0, fmt.Errorf("user with id %d does not exist", course.UserID)
	}

	courseID := theStorage.nextCourseID
	theStorage.nextCourseID++

	courseCopy := *course
	courseCopy.ID = courseID
	theStorage.courses[courseID] = &courseCopy

	return courseID, nil
}

// UpdateCourse overwrites the course with the given id, including its owner
// reference. The first return value reports whether the course existed.
func (theStorage *MemoryStorage) UpdateCourse(ctx context.Context, course *models.Course) (bool, error) {
	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	if _, found := theStorage.courses[course.ID]; !found {
		return false, nil
	}
	if _, found := theStorage.users[course.UserID]; !found {
		return false, fmt.Errorf("user with id %d does not exist", course.UserID)
	}

	courseCopy := *course
	theStorage.courses[course.ID] = &courseCopy

	return true, nil
}

// DeleteCourse removes the course with the given id. Deleting an id that does
// not exist is not an error.
func (theStorage *MemoryStorage) DeleteCourse(ctx context.Context, courseID int) error {
	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	delete(theStorage.courses, courseID)

	return nil
}

// Ping always succeeds for the in-memory backend.
func (theStorage *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory backend.
func (theStorage *MemoryStorage) Close() error {
	return nil
}
