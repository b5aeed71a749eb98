package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/courseapi/internal/models"
)

func TestCollectErrorsForUserPayload(t *testing.T) {
	validator, err := New()
	require.NoError(t, err)

	tests := []struct {
		name     string
		payload  models.CreateUserRequest
		expected []string
	}{
		{
			name: "valid payload",
			payload: models.CreateUserRequest{
				FirstName:    "A",
				LastName:     "B",
				EmailAddress: "a@b.com",
				Password:     "secret1",
			},
			expected: nil,
		},
		{
			name: "missing last name",
			payload: models.CreateUserRequest{
				FirstName:    "A",
				EmailAddress: "a@b.com",
				Password:     "secret1",
			},
			expected: []string{"Please, enter your last name"},
		},
		{
			name:    "everything missing reports rules in declaration order",
			payload: models.CreateUserRequest{},
			expected: []string{
				"Please, enter your first name",
				"Please, enter your last name",
				"Please, enter your email",
				"Please, enter a password",
			},
		},
		{
			name: "whitespace-only values are blank",
			payload: models.CreateUserRequest{
				FirstName:    "   ",
				LastName:     "B",
				EmailAddress: "a@b.com",
				Password:     "\t",
			},
			expected: []string{
				"Please, enter your first name",
				"Please, enter a password",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			messages, err := validator.CollectErrors(test.payload)
			require.NoError(t, err)
			assert.Equal(t, test.expected, messages)
		})
	}
}

func TestCollectErrorsForCoursePayload(t *testing.T) {
	validator, err := New()
	require.NoError(t, err)

	messages, err := validator.CollectErrors(models.CourseRequest{Title: "Go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Please, enter a course description"}, messages)

	messages, err = validator.CollectErrors(models.CourseRequest{
		Title:       "Go",
		Description: "An introduction",
	})
	require.NoError(t, err)
	assert.Empty(t, messages)
}
