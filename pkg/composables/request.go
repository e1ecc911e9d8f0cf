package composables

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/peopledesk/backoffice/pkg/constants"
)

// UseLogger returns the request-scoped logger from the context.
// Panics when the logging middleware did not run.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		panic("logger not found")
	}
	return logger.(*logrus.Entry)
}

// TryUseLogger is the non-panicking variant for code paths that may run
// outside a request.
func TryUseLogger(ctx context.Context) (*logrus.Entry, bool) {
	logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	return logger, ok
}
