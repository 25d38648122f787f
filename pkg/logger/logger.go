package logger

import (
	"go.uber.org/zap"
)

// New creates the structured logger used across the service.
func New(serviceName string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.InitialFields = map[string]interface{}{
		"service": serviceName,
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}

	return log, nil
}

// WithRequestID returns a logger with the request_id field attached.
func WithRequestID(log *zap.Logger, requestID string) *zap.Logger {
	return log.With(zap.String("request_id", requestID))
}
