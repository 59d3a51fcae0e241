package services

import "inkwell/internal/domain/models"

// ChangeNotifier receives change events after a mutation has committed.
// Publish must not block and must not report failure to the caller.
type ChangeNotifier interface {
	Publish(event *models.ChangeEvent)
}

// NopNotifier discards every event
type NopNotifier struct{}

// Publish implements ChangeNotifier
func (NopNotifier) Publish(*models.ChangeEvent) {}
