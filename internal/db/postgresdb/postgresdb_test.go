package postgresdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/courseapi/internal/models"
	"github.com/patric-chuzhbe/courseapi/internal/user"
)

const (
	databaseDSN   = "" // host=localhost user=courseapi password=courseapi dbname=courses sslmode=disable
	migrationsDir = "../../../cmd/courseapi/migrations"
)

func newTestDB(t *testing.T) *PostgresDB {
	t.Helper()

	if databaseDSN == "" {
		t.Skip("set databaseDSN to run the postgres tests")
	}

	db, err := New(context.Background(), databaseDSN, 10*time.Second, migrationsDir)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestPing(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Ping(context.Background()))
}

func TestUserAndCourseLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	emailAddress := "lifecycle-" + time.Now().Format("20060102150405.000000000") + "@smith.com"

	userID, err := db.CreateUser(ctx, &user.User{
		FirstName:    "Joe",
		LastName:     "Smith",
		EmailAddress: emailAddress,
		PasswordHash: "$2a$10$xxxxxxxxxxxxxxxxxxxxxx",
	})
	require.NoError(t, err)

	usr, found, err := db.FindUserByEmail(ctx, emailAddress)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, userID, usr.ID)

	estimatedTime := "12 hours"
	courseID, err := db.CreateCourse(ctx, &models.Course{
		Title:         "Learn Go",
		Description:   "A course about Go",
		EstimatedTime: &estimatedTime,
		UserID:        userID,
	})
	require.NoError(t, err)

	course, found, err := db.GetCourse(ctx, courseID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Learn Go", course.Title)
	require.NotNil(t, course.EstimatedTime)
	assert.Equal(t, "12 hours", *course.EstimatedTime)
	assert.Nil(t, course.MaterialsNeeded)
	assert.Equal(t, emailAddress, course.Owner.EmailAddress)

	updated, err := db.UpdateCourse(ctx, &models.Course{
		ID:          courseID,
		Title:       "Learn Go Deeply",
		Description: "A course about Go",
		UserID:      userID,
	})
	require.NoError(t, err)
	assert.True(t, updated)

	course, found, err = db.GetCourse(ctx, courseID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Learn Go Deeply", course.Title)
	// Omitted optional fields overwrite any previous values with NULL.
	assert.Nil(t, course.EstimatedTime)

	require.NoError(t, db.DeleteCourse(ctx, courseID))

	_, found, err = db.GetCourse(ctx, courseID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateUnknownCourse(t *testing.T) {
	db := newTestDB(t)

	updated, err := db.UpdateCourse(context.Background(), &models.Course{
		ID:          -1,
		Title:       "Nope",
		Description: "Nope",
		UserID:      -1,
	})
	require.NoError(t, err)
	assert.False(t, updated)
}
