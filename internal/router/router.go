// Package router wires the HTTP routes of the API: the public course reads,
// the validated and authenticated write routes, and the centralized error
// translation every handler forwards to.
package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/courseapi/internal/auth"
	"github.com/patric-chuzhbe/courseapi/internal/gzippedhttp"
	"github.com/patric-chuzhbe/courseapi/internal/logger"
	"github.com/patric-chuzhbe/courseapi/internal/models"
	"github.com/patric-chuzhbe/courseapi/internal/service"
	"github.com/patric-chuzhbe/courseapi/internal/validation"
)

type authenticator interface {
	Authenticate(h http.Handler) http.Handler
}

// Router holds the collaborators of the HTTP handlers.
type Router struct {
	svc                       *service.Service
	validator                 *validation.Validator
	enableVerboseErrorLogging bool
}

// New builds the chi mux with all routes, middleware, and the NotFound handler.
func New(
	svc *service.Service,
	authGate authenticator,
	validator *validation.Validator,
	enableVerboseErrorLogging bool,
) chi.Router {
	rtr := &Router{
		svc:                       svc,
		validator:                 validator,
		enableVerboseErrorLogging: enableVerboseErrorLogging,
	}

	router := chi.NewRouter()
	router.Use(logger.WithLoggingHTTPMiddleware)
	router.Use(gzippedhttp.UngzipRequest)
	router.Use(gzippedhttp.GzipResponse)

	router.Get(`/`, rtr.withErrorHandling(rtr.getWelcome))
	router.Get(`/ping`, rtr.withErrorHandling(rtr.getPing))

	router.Route(`/api`, func(api chi.Router) {
		api.With(authGate.Authenticate).Get(`/users`, rtr.withErrorHandling(rtr.getCurrentUser))
		api.Post(`/users`, rtr.withErrorHandling(rtr.postUsers))

		api.Get(`/courses`, rtr.withErrorHandling(rtr.getCourses))
		api.Get(`/courses/{courseID}`, rtr.withErrorHandling(rtr.getCourse))
		api.With(authGate.Authenticate).Post(`/courses`, rtr.withErrorHandling(rtr.postCourses))
		api.With(authGate.Authenticate).Put(`/courses/{courseID}`, rtr.withErrorHandling(rtr.putCourse))
		api.With(authGate.Authenticate).Delete(`/courses/{courseID}`, rtr.withErrorHandling(rtr.deleteCourse))
	})

	router.NotFound(rtr.notFound)

	return router
}

// withErrorHandling adapts a handler returning an error into an http.HandlerFunc.
// APIError values are answered with their declared status and message; anything
// else becomes a generic 500 whose details are logged only when verbose error
// logging is enabled.
func (rtr *Router) withErrorHandling(handler func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(response http.ResponseWriter, request *http.Request) {
		err := handler(response, request)
		if err == nil {
			return
		}

		var apiError *models.APIError
		if errors.As(err, &apiError) {
			writeJSON(response, apiError.Status, models.MessageResponse{Message: apiError.Message})
			return
		}

		if rtr.enableVerboseErrorLogging {
			logger.Log.Errorw(
				"unhandled error in request handler",
				"uri", request.RequestURI,
				"method", request.Method,
				"error", err,
			)
		}

		writeJSON(response, http.StatusInternalServerError, models.UnhandledErrorResponse{Message: err.Error()})
	}
}

func writeJSON(response http.ResponseWriter, status int, payload interface{}) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(status)
	if err := json.NewEncoder(response).Encode(payload); err != nil {
		logger.Log.Debugln("Error calling the `json.Encoder.Encode()`: ", zap.Error(err))
	}
}

// decodeAndValidate parses the request JSON body into payload and runs the
// required-field gate. A non-nil *APIError or a written 400 response means the
// request must not proceed; the boolean reports whether to continue.
func (rtr *Router) decodeAndValidate(
	response http.ResponseWriter,
	request *http.Request,
	payload validation.Validatable,
) (bool, error) {
	if err := json.NewDecoder(request.Body).Decode(payload); err != nil {
		return false, models.NewAPIError(http.StatusBadRequest, "cannot decode the request JSON body")
	}

	validationErrors, err := rtr.validator.CollectErrors(payload)
	if err != nil {
		return false, err
	}
	if len(validationErrors) > 0 {
		writeJSON(response, http.StatusBadRequest, models.ValidationErrorsResponse{Errors: validationErrors})
		return false, nil
	}

	return true, nil
}

func (rtr *Router) getWelcome(response http.ResponseWriter, request *http.Request) error {
	writeJSON(response, http.StatusOK, models.MessageResponse{Message: "Welcome to the REST API project!"})
	return nil
}

func (rtr *Router) getPing(response http.ResponseWriter, request *http.Request) error {
	if err := rtr.svc.Ping(request.Context()); err != nil {
		return err
	}

	response.WriteHeader(http.StatusOK)
	return nil
}

func (rtr *Router) getCurrentUser(response http.ResponseWriter, request *http.Request) error {
	usr, ok := auth.UserFromContext(request.Context())
	if !ok {
		return models.NewAPIError(http.StatusUnauthorized, "Access Denied")
	}

	writeJSON(response, http.StatusOK, rtr.svc.GetCurrentUser(usr))
	return nil
}

func (rtr *Router) postUsers(response http.ResponseWriter, request *http.Request) error {
	payload := &models.CreateUserRequest{}
	proceed, err := rtr.decodeAndValidate(response, request, payload)
	if err != nil || !proceed {
		return err
	}

	if err := rtr.svc.RegisterUser(request.Context(), *payload); err != nil {
		return err
	}

	response.Header().Set("Location", "/")
	response.WriteHeader(http.StatusCreated)
	return nil
}

func (rtr *Router) getCourses(response http.ResponseWriter, request *http.Request) error {
	courses, err := rtr.svc.GetCourses(request.Context())
	if err != nil {
		return err
	}

	writeJSON(response, http.StatusOK, models.CoursesResponse{Courses: courses})
	return nil
}

func (rtr *Router) getCourse(response http.ResponseWriter, request *http.Request) error {
	courseID, err := strconv.Atoi(chi.URLParam(request, "courseID"))
	if err != nil {
		return models.ErrCourseNotFound
	}

	course, found, err := rtr.svc.GetCourse(request.Context(), courseID)
	if err != nil {
		return err
	}
	if !found {
		return models.ErrCourseNotFound
	}

	writeJSON(response, http.StatusOK, models.SingleCourseResponse{Course: course})
	return nil
}

func (rtr *Router) postCourses(response http.ResponseWriter, request *http.Request) error {
	payload := &models.CourseRequest{}
	proceed, err := rtr.decodeAndValidate(response, request, payload)
	if err != nil || !proceed {
		return err
	}

	usr, ok := auth.UserFromContext(request.Context())
	if !ok {
		return models.NewAPIError(http.StatusUnauthorized, "Access Denied")
	}

	courseID, err := rtr.svc.CreateCourse(request.Context(), *payload, usr.ID)
	if err != nil {
		return err
	}

	response.Header().Set("Location", fmt.Sprintf("/courses/%d", courseID))
	response.WriteHeader(http.StatusCreated)
	return nil
}

func (rtr *Router) putCourse(response http.ResponseWriter, request *http.Request) error {
	courseID, err := strconv.Atoi(chi.URLParam(request, "courseID"))
	if err != nil {
		return models.ErrCourseNotFound
	}

	payload := &models.CourseRequest{}
	proceed, err := rtr.decodeAndValidate(response, request, payload)
	if err != nil || !proceed {
		return err
	}

	usr, ok := auth.UserFromContext(request.Context())
	if !ok {
		return models.NewAPIError(http.StatusUnauthorized, "Access Denied")
	}

	found, err := rtr.svc.UpdateCourse(request.Context(), courseID, *payload, usr.ID)
	if err != nil {
		return err
	}
	if !found {
		return models.ErrCourseNotFound
	}

	// The original API answers 201 here instead of the conventional 200/204.
	response.WriteHeader(http.StatusCreated)
	return nil
}

func (rtr *Router) deleteCourse(response http.ResponseWriter, request *http.Request) error {
	courseID, err := strconv.Atoi(chi.URLParam(request, "courseID"))
	if err == nil {
		if err := rtr.svc.DeleteCourse(request.Context(), courseID); err != nil {
			return err
		}
	}

	// No existence check: deleting an unknown id still answers 204.
	response.WriteHeader(http.StatusNoContent)
	return nil
}

func (rtr *Router) notFound(response http.ResponseWriter, request *http.Request) {
	writeJSON(response, http.StatusNotFound, models.MessageResponse{Message: "Route Not Found"})
}
