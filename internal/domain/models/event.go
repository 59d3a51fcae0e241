package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType names a change event on the notification channel
type EventType string

const (
	EventConnection        EventType = "connection"
	EventDocumentCreated   EventType = "document_created"
	EventDocumentUpdated   EventType = "document_updated"
	EventDocumentDeleted   EventType = "document_deleted"
	EventAttachmentAdded   EventType = "attachment_added"
	EventAttachmentRemoved EventType = "attachment_removed"
)

// ChangeEvent is broadcast to live observers. Payload keys are flattened into
// the top-level JSON object next to the fixed fields.
type ChangeEvent struct {
	Type          EventType
	DocumentID    string
	DocumentTitle string
	Message       string
	Payload       map[string]interface{}
	Timestamp     time.Time
}

// MarshalJSON implements custom JSON marshaling to include Payload fields at top level
func (e ChangeEvent) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(e.Payload)+5)
	for k, v := range e.Payload {
		m[k] = v
	}

	m["type"] = e.Type
	m["message"] = e.Message
	m["timestamp"] = e.Timestamp.UTC().Format(time.RFC3339Nano)
	if e.DocumentID != "" {
		m["documentId"] = e.DocumentID
	}
	if e.DocumentTitle != "" {
		m["documentTitle"] = e.DocumentTitle
	}

	return json.Marshal(m)
}

func newEvent(t EventType, documentID, title, message string) *ChangeEvent {
	return &ChangeEvent{
		Type:          t,
		DocumentID:    documentID,
		DocumentTitle: title,
		Message:       message,
		Timestamp:     time.Now().UTC(),
	}
}

// NewConnectionEvent acknowledges a new observer. It is not a content update.
func NewConnectionEvent() *ChangeEvent {
	return newEvent(EventConnection, "", "", "Connected to document notification system")
}

// NewDocumentCreatedEvent announces a new document
func NewDocumentCreatedEvent(documentID, title, author string) *ChangeEvent {
	e := newEvent(EventDocumentCreated, documentID, title, fmt.Sprintf("New document created: %q", title))
	e.Payload = map[string]interface{}{"author": author}
	return e
}

// NewDocumentUpdatedEvent announces a new version
func NewDocumentUpdatedEvent(documentID, title string, versionNumber int) *ChangeEvent {
	e := newEvent(EventDocumentUpdated, documentID, title, fmt.Sprintf("Document updated: %q", title))
	e.Payload = map[string]interface{}{"versionNumber": versionNumber}
	return e
}

// NewDocumentDeletedEvent announces a deleted document
func NewDocumentDeletedEvent(documentID, title string) *ChangeEvent {
	return newEvent(EventDocumentDeleted, documentID, title, fmt.Sprintf("Document deleted: %q", title))
}

// NewAttachmentAddedEvent announces a file bound to the document's current version
func NewAttachmentAddedEvent(documentID, title, attachmentID, filename, mimeType string, size int64) *ChangeEvent {
	e := newEvent(EventAttachmentAdded, documentID, title,
		fmt.Sprintf("File %q attached to document: %q", filename, title))
	e.Payload = map[string]interface{}{
		"attachment": map[string]interface{}{
			"id":       attachmentID,
			"filename": filename,
			"mimeType": mimeType,
			"size":     size,
		},
	}
	return e
}

// NewAttachmentRemovedEvent announces a removed file
func NewAttachmentRemovedEvent(documentID, title, filename string) *ChangeEvent {
	e := newEvent(EventAttachmentRemoved, documentID, title,
		fmt.Sprintf("File %q removed from document: %q", filename, title))
	e.Payload = map[string]interface{}{"filename": filename}
	return e
}
