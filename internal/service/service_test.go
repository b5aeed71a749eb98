package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/patric-chuzhbe/courseapi/internal/db/memorystorage"
	"github.com/patric-chuzhbe/courseapi/internal/models"
)

func newTestService(t *testing.T) (*Service, *memorystorage.MemoryStorage) {
	t.Helper()

	theStorage, err := memorystorage.New()
	require.NoError(t, err)

	return New(theStorage), theStorage
}

func TestRegisterUserHashesThePassword(t *testing.T) {
	svc, theStorage := newTestService(t)
	ctx := context.Background()

	err := svc.RegisterUser(ctx, models.CreateUserRequest{
		FirstName:    "A",
		LastName:     "B",
		EmailAddress: "a@b.com",
		Password:     "secret1",
	})
	require.NoError(t, err)

	usr, found, err := theStorage.FindUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.True(t, found)

	// The persisted secret must be a one-way hash, never the plaintext.
	assert.NotEqual(t, "secret1", usr.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte("secret1")))
}

func registerAndFetchOwner(t *testing.T, svc *Service, theStorage *memorystorage.MemoryStorage) int {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, svc.RegisterUser(ctx, models.CreateUserRequest{
		FirstName:    "A",
		LastName:     "B",
		EmailAddress: "a@b.com",
		Password:     "secret1",
	}))

	usr, found, err := theStorage.FindUserByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.True(t, found)

	return usr.ID
}

func TestCourseRoundTrip(t *testing.T) {
	svc, theStorage := newTestService(t)
	ctx := context.Background()
	ownerID := registerAndFetchOwner(t, svc, theStorage)

	estimatedTime := "12 hours"
	courseID, err := svc.CreateCourse(ctx, models.CourseRequest{
		Title:         "Learn Go",
		Description:   "A course about Go",
		EstimatedTime: &estimatedTime,
	}, ownerID)
	require.NoError(t, err)

	course, found, err := svc.GetCourse(ctx, courseID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Learn Go", course.Title)
	assert.Equal(t, "A course about Go", course.Description)
	require.NotNil(t, course.EstimatedTime)
	assert.Equal(t, "12 hours", *course.EstimatedTime)
	assert.Equal(t, ownerID, course.UserID)
	assert.Equal(t, "a@b.com", course.User.EmailAddress)

	courses, err := svc.GetCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, courseID, courses[0].ID)
}

func TestUpdateCourseReassignsOwner(t *testing.T) {
	svc, theStorage := newTestService(t)
	ctx := context.Background()
	ownerID := registerAndFetchOwner(t, svc, theStorage)

	require.NoError(t, svc.RegisterUser(ctx, models.CreateUserRequest{
		FirstName:    "C",
		LastName:     "D",
		EmailAddress: "c@d.com",
		Password:     "secret2",
	}))
	otherUser, found, err := theStorage.FindUserByEmail(ctx, "c@d.com")
	require.NoError(t, err)
	require.True(t, found)

	courseID, err := svc.CreateCourse(ctx, models.CourseRequest{
		Title:       "Learn Go",
		Description: "A course about Go",
	}, ownerID)
	require.NoError(t, err)

	updated, err := svc.UpdateCourse(ctx, courseID, models.CourseRequest{
		Title:       "Learn Go Deeply",
		Description: "A course about Go",
	}, otherUser.ID)
	require.NoError(t, err)
	require.True(t, updated)

	course, found, err := svc.GetCourse(ctx, courseID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Learn Go Deeply", course.Title)
	// The owner follows the acting caller, whoever created the course.
	assert.Equal(t, otherUser.ID, course.UserID)
}

func TestUpdateUnknownCourse(t *testing.T) {
	svc, theStorage := newTestService(t)
	ownerID := registerAndFetchOwner(t, svc, theStorage)

	updated, err := svc.UpdateCourse(context.Background(), 999, models.CourseRequest{
		Title:       "Nope",
		Description: "Nope",
	}, ownerID)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestDeleteCourseIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.DeleteCourse(context.Background(), 999))
}
