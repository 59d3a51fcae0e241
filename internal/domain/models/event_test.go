package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeEvent_MarshalFlattensPayload(t *testing.T) {
	ev := NewAttachmentAddedEvent("doc-1", "Report", "att-1", "a.pdf", "application/pdf", 42)

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))

	assert.Equal(t, "attachment_added", m["type"])
	assert.Equal(t, "doc-1", m["documentId"])
	assert.Equal(t, "Report", m["documentTitle"])
	assert.Contains(t, m["message"], "a.pdf")
	assert.NotEmpty(t, m["timestamp"])

	att, ok := m["attachment"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "att-1", att["id"])
	assert.Equal(t, "application/pdf", att["mimeType"])
	assert.EqualValues(t, 42, att["size"])
}

func TestChangeEvent_FixedFieldsWin(t *testing.T) {
	ev := NewDocumentDeletedEvent("doc-1", "T")
	ev.Payload = map[string]interface{}{"type": "spoofed", "extra": true}

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "document_deleted", m["type"])
	assert.Equal(t, true, m["extra"])
}

func TestConnectionEvent_HasNoDocument(t *testing.T) {
	raw, err := json.Marshal(NewConnectionEvent())
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "connection", m["type"])
	_, hasDoc := m["documentId"]
	assert.False(t, hasDoc)
}
