// Package user defines the user model used throughout the application,
// particularly for authentication and course ownership.
package user

// User represents a registered account.
// The email address doubles as the login identifier.
type User struct {
	// ID is the surrogate identifier assigned by the storage layer.
	ID int

	FirstName    string
	LastName     string
	EmailAddress string

	// PasswordHash is the bcrypt hash of the account secret.
	// The plaintext is never persisted.
	PasswordHash string
}
