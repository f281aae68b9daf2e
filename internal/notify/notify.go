// Package notify delivers user-visible notifications. Cart mutations emit
// transient confirmations; the payload shape matches what the web client's
// push handler consumes: clicking opens the application at URL.
package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Notification is the payload surfaced to the user.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Notifier pushes a notification to one session. Delivery is best-effort;
// callers log failures instead of propagating them.
type Notifier interface {
	Push(ctx context.Context, sessionID string, n Notification) error
}

// LogNotifier writes notifications to the log. Used in development and as
// a fallback when no broker is configured.
type LogNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Push(ctx context.Context, sessionID string, n Notification) error {
	l.log.WithFields(logrus.Fields{
		"session": sessionID,
		"title":   n.Title,
		"url":     n.URL,
	}).Info(n.Body)
	return nil
}
