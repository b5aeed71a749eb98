// Package auth provides the HTTP Basic Authentication middleware guarding
// protected routes. Credentials are checked against the stored bcrypt hash;
// every rejection is answered with the same generic 401 body while the
// specific reason goes to the server log only.
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/patric-chuzhbe/courseapi/internal/logger"
	"github.com/patric-chuzhbe/courseapi/internal/models"
	"github.com/patric-chuzhbe/courseapi/internal/user"
)

type userFinder interface {
	FindUserByEmail(ctx context.Context, emailAddress string) (*user.User, bool, error)
}

// Auth authenticates incoming requests with HTTP Basic credentials.
type Auth struct {
	// db is the interface to the user data storage.
	db userFinder
}

// ContextKey is a custom type for storing values in context to avoid collisions.
type ContextKey string

// UserKey is the context key under which the authenticated user is stored.
const UserKey ContextKey = "currentUser"

// New creates a new Auth handler with the given user data access layer.
func New(db userFinder) *Auth {
	return &Auth{db: db}
}

// Authenticate is an HTTP middleware that resolves the caller from the
// Authorization header. The email address is matched case-sensitively and the
// supplied secret is compared against the stored bcrypt hash. On success the
// resolved user is attached to the request context; otherwise the request is
// short-circuited with a generic 401.
func (a *Auth) Authenticate(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		emailAddress, password, ok := request.BasicAuth()
		if !ok {
			a.reject(response, "Authentication header not found.")
			return
		}

		usr, found, err := a.db.FindUserByEmail(request.Context(), emailAddress)
		if err != nil {
			logger.Log.Errorw(
				"user lookup failed during authentication",
				"email", emailAddress,
				"error", err,
			)
			response.Header().Set("Content-Type", "application/json")
			response.WriteHeader(http.StatusInternalServerError)
			if encodeErr := json.NewEncoder(response).Encode(models.UnhandledErrorResponse{Message: err.Error()}); encodeErr != nil {
				logger.Log.Debugln("Error calling the `json.Encoder.Encode()`: ", zap.Error(encodeErr))
			}
			return
		}
		if !found {
			a.reject(response, "No user found for "+emailAddress+".")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
			a.reject(response, "Authentication failure for "+emailAddress+".")
			return
		}

		ctx := context.WithValue(request.Context(), UserKey, usr)
		h.ServeHTTP(response, request.WithContext(ctx))
	}

	return http.HandlerFunc(middleware)
}

// reject logs the rejection reason server-side and answers the caller with
// the uniform 401 body. The reason never reaches the client.
func (a *Auth) reject(response http.ResponseWriter, reason string) {
	logger.Log.Warnln("access denied:", reason)

	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(response).Encode(models.MessageResponse{Message: "Access Denied"}); err != nil {
		logger.Log.Debugln("Error calling the `json.Encoder.Encode()`: ", zap.Error(err))
	}
}

// UserFromContext returns the authenticated user attached by Authenticate.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	usr, ok := ctx.Value(UserKey).(*user.User)
	return usr, ok
}
