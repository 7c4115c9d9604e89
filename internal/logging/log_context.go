package logging

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

type logDataKey struct{}

// WithLogData returns a context carrying the request's LogData.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, logDataKey{}, logData)
}

// GetLogData returns the request's LogData, or nil outside a request.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(logDataKey{}).(*LogData)
	return logData
}

// Middleware attaches a fresh LogData to every request and emits the
// accumulated fields and timings as one entry when the handler returns.
func Middleware(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logData := NewLogData(log)
			logData.AddData("method", req.Method)
			logData.AddData("path", req.URL.Path)

			endTimer := logData.AddTiming("durationMs")
			next.ServeHTTP(w, req.WithContext(WithLogData(req.Context(), logData)))
			endTimer()

			logData.Log().Info("Request.Complete")
		})
	}
}
