package notify

import (
	"context"

	"github.com/dmitrijs2005/accounts/internal/logging"
)

// LogNotifier forwards notifications to a structured logger.
type LogNotifier struct {
	logger logging.Logger
}

func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{logger: l.With("module", "notifier")}
}

func (n *LogNotifier) Handle(ctx context.Context, notification Notification) {
	n.logger.Warn(ctx, notification.Message)
}
