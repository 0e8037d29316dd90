// Package notifier is the delivery edge of the engine. The engine treats
// dispatch as fire-and-forget: a failed send is logged, never retried and
// never rolled back into state.
package notifier

import (
	"context"

	"github.com/google/uuid"
	"github.com/limbo/cadence/internal/service"
	"github.com/sirupsen/logrus"
)

// LogNotifier writes notifications to the structured log. Stands in for a
// real push gateway in development and in tests.
type LogNotifier struct {
	logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, userID uuid.UUID, message string, urgency service.Urgency) error {
	entry := n.logger.WithFields(logrus.Fields{
		"uid":     userID.String(),
		"urgency": urgency,
	})
	if urgency == service.UrgencyUrgent {
		entry.Warn(message)
		return nil
	}
	entry.Info(message)
	return nil
}
