// Package logger holds the global zap sugared logger used across the
// application and the request-logging HTTP middleware.
package logger

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Log is the process-wide SugaredLogger. It must be initialized via Init()
// before any other package logs through it.
var Log *zap.SugaredLogger

// Init builds the global logger with the given level ("debug", "info", ...).
func Init(level string) error {
	parsedLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	loggerConfig := zap.NewDevelopmentConfig()
	loggerConfig.Level = parsedLevel

	zapLogger, err := loggerConfig.Build()
	if err != nil {
		return err
	}
	Log = zapLogger.Sugar()

	return nil
}

// Sync flushes buffered log entries. Syncing stderr on some platforms
// reports os.ErrInvalid, which is not a real failure.
func Sync() error {
	if err := Log.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) {
		return err
	}

	return nil
}

// statusRecorder captures the status code and body size a handler produced.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.size += size

	return size, err
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.status = statusCode
}

// WithLoggingHTTPMiddleware logs one line per request with its method, URI,
// status, duration, and response size. Every request gets a generated
// correlation id which is logged and returned in the X-Request-Id header.
func WithLoggingHTTPMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()

		recorder := &statusRecorder{ResponseWriter: response}
		recorder.Header().Set("X-Request-Id", requestID)

		h.ServeHTTP(recorder, request)

		Log.Infoln(
			"uri", request.RequestURI,
			"method", request.Method,
			"status", recorder.status,
			"duration", time.Since(start),
			"size", recorder.size,
			"request_id", requestID,
		)
	})
}
