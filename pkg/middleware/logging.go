package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/peopledesk/backoffice/pkg/configuration"
	"github.com/peopledesk/backoffice/pkg/constants"
)

type responseCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
}

func (w *responseCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *responseCaptureWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

func getRealIP(r *http.Request, conf *configuration.Configuration) string {
	if len(r.Header.Get(conf.RealIPHeader)) > 0 {
		return r.Header.Get(conf.RealIPHeader)
	}
	return r.RemoteAddr
}

func getRequestID(r *http.Request, conf *configuration.Configuration) string {
	if len(r.Header.Get(conf.RequestIDHeader)) > 0 {
		return r.Header.Get(conf.RequestIDHeader)
	}
	return uuid.New().String()
}

// WithLogger attaches a request-scoped logger to the context, logs request
// start/completion and recovers panics with a stable JSON response.
func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	conf := configuration.Use()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := getRequestID(r, conf)

			fieldsLogger := logger.WithFields(logrus.Fields{
				"request-id": requestID,
				"path":       r.RequestURI,
				"method":     r.Method,
			})

			fieldsLogger.WithFields(logrus.Fields{
				"ip":         getRealIP(r, conf),
				"user-agent": r.UserAgent(),
			}).Info("request started")

			ctx := context.WithValue(r.Context(), constants.LoggerKey, fieldsLogger)
			ctx = context.WithValue(ctx, constants.RequestStart, start)

			w.Header().Set("X-Request-Id", requestID)
			wrapped := &responseCaptureWriter{ResponseWriter: w}

			defer func() {
				if recovered := recover(); recovered != nil {
					fieldsLogger.WithFields(logrus.Fields{
						"panic":    recovered,
						"stack":    string(debug.Stack()),
						"duration": time.Since(start),
					}).Error("panic recovered in request handler")

					if !wrapped.statusWritten {
						wrapped.Header().Set("Content-Type", "application/json")
						wrapped.WriteHeader(http.StatusInternalServerError)
						_, _ = wrapped.Write([]byte(`{"code":"INTERNAL","message":"internal server error"}`))
					}
				}
			}()

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			fieldsLogger.WithFields(logrus.Fields{
				"duration":    time.Since(start),
				"status-code": wrapped.Status(),
			}).Info("request completed")
		})
	}
}
