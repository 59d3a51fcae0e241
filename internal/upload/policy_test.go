package upload

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models/docsystem"
)

func TestDefaultPolicy(t *testing.T) {
	p, err := DefaultPolicy()
	require.NoError(t, err)

	assert.Equal(t, int64(10<<20), p.MaxBytes)
	for _, m := range []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp", "application/pdf"} {
		assert.True(t, p.Allows(m), m)
	}
	assert.True(t, p.Allows("Application/PDF; name=x.pdf"))
	assert.False(t, p.Allows("text/html"))
	assert.False(t, p.Allows(""))
}

func TestPolicy_Check(t *testing.T) {
	p, err := DefaultPolicy()
	require.NoError(t, err)

	tests := []struct {
		name    string
		file    *docsystem.UploadedFile
		wantErr bool
	}{
		{name: "valid png", file: &docsystem.UploadedFile{Filename: "a.png", MimeType: "image/png", Data: []byte{1}}},
		{name: "nil file", file: nil, wantErr: true},
		{name: "empty filename", file: &docsystem.UploadedFile{Filename: "  ", MimeType: "image/png", Data: []byte{1}}, wantErr: true},
		{name: "long filename", file: &docsystem.UploadedFile{Filename: strings.Repeat("a", 256), MimeType: "image/png", Data: []byte{1}}, wantErr: true},
		{name: "empty payload", file: &docsystem.UploadedFile{Filename: "a.png", MimeType: "image/png"}, wantErr: true},
		{name: "too large", file: &docsystem.UploadedFile{Filename: "a.pdf", MimeType: "application/pdf", Data: bytes.Repeat([]byte{1}, 10<<20+1)}, wantErr: true},
		{name: "exactly max", file: &docsystem.UploadedFile{Filename: "a.pdf", MimeType: "application/pdf", Data: bytes.Repeat([]byte{1}, 10<<20)}},
		{name: "disallowed type", file: &docsystem.UploadedFile{Filename: "a.exe", MimeType: "application/octet-stream", Data: []byte{1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Check(tt.file)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadPolicy_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_bytes: 5\nallowed_mime_types: [text/plain]\n"), 0o600))

	p, err := LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.MaxBytes)
	assert.True(t, p.Allows("text/plain"))
	assert.False(t, p.Allows("image/png"))
}

func TestParsePolicy_Invalid(t *testing.T) {
	_, err := ParsePolicy([]byte("max_bytes: 0\nallowed_mime_types: []\n"))
	assert.Error(t, err)

	_, err = ParsePolicy([]byte("max_bytes: [\n"))
	assert.Error(t, err)
}
