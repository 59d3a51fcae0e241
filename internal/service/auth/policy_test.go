package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/models/docsystem"
)

func strPtr(s string) *string { return &s }

func TestCanMutateDocument(t *testing.T) {
	owned := &docsystem.Document{ID: "d1", CreatorID: strPtr("alice")}
	legacy := &docsystem.Document{ID: "d2"}

	alice := &models.Caller{UserID: "alice", Role: models.RoleUser}
	bob := &models.Caller{UserID: "bob", Role: models.RoleUser}
	admin := &models.Caller{UserID: "root", Role: models.RoleAdmin}

	tests := []struct {
		name   string
		doc    *docsystem.Document
		caller *models.Caller
		want   bool
	}{
		{"creator", owned, alice, true},
		{"other user", owned, bob, false},
		{"admin", owned, admin, true},
		{"legacy document, user", legacy, alice, false},
		{"legacy document, admin", legacy, admin, true},
		{"no caller", owned, nil, false},
		{"empty user id", owned, &models.Caller{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutateDocument(tt.doc, tt.caller))
		})
	}
}

func TestCanMutateComment(t *testing.T) {
	comment := &docsystem.Comment{ID: "c1", AuthorID: strPtr("alice")}
	anonymous := &docsystem.Comment{ID: "c2"}

	alice := &models.Caller{UserID: "alice", Role: models.RoleUser}
	admin := &models.Caller{UserID: "root", Role: models.RoleAdmin}

	tests := []struct {
		name    string
		comment *docsystem.Comment
		caller  *models.Caller
		want    bool
	}{
		{"author", comment, alice, true},
		{"admin has no override", comment, admin, false},
		{"legacy comment is immutable", anonymous, alice, false},
		{"legacy comment, admin", anonymous, admin, false},
		{"no caller", comment, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutateComment(tt.comment, tt.caller))
		})
	}
}

func TestAuthorizeErrors(t *testing.T) {
	doc := &docsystem.Document{CreatorID: strPtr("alice")}
	err := AuthorizeDocument(doc, &models.Caller{UserID: "bob"}, "edit")
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Contains(t, err.Error(), "edit")

	assert.NoError(t, AuthorizeDocument(doc, &models.Caller{UserID: "alice"}, "edit"))

	err = AuthorizeComment(&docsystem.Comment{}, &models.Caller{UserID: "alice"}, "delete")
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	assert.True(t, errors.Is(RequireCaller(nil), domain.ErrUnauthorized))
	assert.NoError(t, RequireCaller(&models.Caller{UserID: "alice"}))
}
