package docsystem

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models/docsystem"
)

// versionContent is the normalized content of one version write
type versionContent struct {
	Title  string
	Body   string
	Author string
}

// newVersionContent trims every field. The body is stored as supplied.
func newVersionContent(title, body, author string) *versionContent {
	return &versionContent{
		Title:  strings.TrimSpace(title),
		Body:   strings.TrimSpace(body),
		Author: strings.TrimSpace(author),
	}
}

// validate checks title and body limits. Title and author are measured in
// characters, the body in bytes.
func (c *versionContent) validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, config.MaxTitleLength),
		),
		validation.Field(&c.Body,
			validation.Required.Error("body is required"),
			validation.Length(1, config.MaxBodyBytes),
		),
		validation.Field(&c.Author,
			validation.RuneLength(0, config.MaxAuthorLength),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// commentBody is a normalized comment text
type commentBody struct {
	Body string
}

func (c *commentBody) validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Body,
			validation.Required.Error("comment body is required"),
			validation.RuneLength(1, config.MaxCommentLength),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

func validateComment(body string) (string, error) {
	c := &commentBody{Body: strings.TrimSpace(body)}
	if err := c.validate(); err != nil {
		return "", err
	}
	return c.Body, nil
}

// documentTitle returns the title to show for a document in notifications
func documentTitle(v *docsystem.Version) string {
	if v == nil || v.Title == "" {
		return fallbackTitle
	}
	return v.Title
}

const fallbackTitle = "Document"
