package editor

import (
	"context"

	"go.uber.org/zap"
)

// Outcome messages acknowledged to the user
const (
	MessageSaved         = "Saved!"
	MessageSaveFailed    = "Failed to save draft"
	MessagePublished     = "Published!"
	MessagePublishFailed = "Failed to publish"
)

// Notification is a user-facing acknowledgement of a save or publish
type Notification struct {
	Op      string `json:"op"`
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	// URL is set on a successful publish
	URL string `json:"url,omitempty"`
	Err error  `json:"-"`
}

// Notifier delivers acknowledgements to the user
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, n Notification)

// Notify calls f
func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

// LogNotifier writes acknowledgements to a zap logger
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger discards output.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs n at info level on success and warn level on failure
func (l *LogNotifier) Notify(_ context.Context, n Notification) {
	fields := []zap.Field{zap.String("op", n.Op)}
	if n.URL != "" {
		fields = append(fields, zap.String("url", n.URL))
	}
	if n.OK {
		l.logger.Info(n.Message, fields...)
		return
	}
	l.logger.Warn(n.Message, append(fields, zap.Error(n.Err))...)
}
