package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/vehicle-marketplace/internal/events"
	"github.com/spec-kit/vehicle-marketplace/internal/observability"
)

// StartTelemetryWorker subscribes auth telemetry handlers. This is where
// token rejections keep their distinct kinds (malformed, invalid_signature,
// expired) even though API callers see a uniform 401.
func StartTelemetryWorker(dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	dispatcher.Subscribe(events.EventTokenRejected, func(_ context.Context, event events.Event) error {
		metrics.RecordAuthFailure(event.Reason)
		logger.Info("token rejected",
			zap.String("kind", event.Reason),
			zap.String("path", event.Path),
			zap.String("method", event.Method),
		)
		return nil
	})

	dispatcher.Subscribe(events.EventAccessDenied, func(_ context.Context, event events.Event) error {
		metrics.RecordAuthFailure("insufficient_role")
		logger.Info("access denied",
			zap.String("subject_id", event.SubjectID),
			zap.String("path", event.Path),
		)
		return nil
	})

	dispatcher.Subscribe(events.EventLoginFailed, func(_ context.Context, event events.Event) error {
		metrics.RecordAuthFailure("login_" + event.Reason)
		logger.Info("login failed", zap.String("reason", event.Reason))
		return nil
	})

	dispatcher.Subscribe(events.EventLoginSucceeded, func(_ context.Context, event events.Event) error {
		logger.Info("login succeeded",
			zap.String("subject_id", event.SubjectID),
			zap.String("role", event.Role),
		)
		return nil
	})
}
