// Package notification sends desktop notifications. Used when an
// assistant reply finishes after its panel was closed, so the reader
// is not left wondering.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/pastelhq/pastel/internal/logger"
)

// notifier is swappable so tests never fire real notifications.
var notifier = beeep.Notify

// SetNotifier replaces the underlying notification function.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores the real notification function.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	err := notifier(title, message, "")
	if err != nil {
		logger.ComponentLogger("Notification").Warn("Notification failed", "error", err)
	}
	return err
}

// ReplyReady notifies that an assistant reply arrived while the panel
// was not visible.
func ReplyReady() error {
	return Send("Pastel", "AI assistant reply is ready")
}
