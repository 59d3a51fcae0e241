// Package upload decides which files may be attached to documents.
package upload

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models/docsystem"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Policy is the allow-list and size cap applied to every upload
type Policy struct {
	MaxBytes         int64    `yaml:"max_bytes"`
	AllowedMimeTypes []string `yaml:"allowed_mime_types"`

	allowed map[string]struct{}
}

// DefaultPolicy loads the embedded policy
func DefaultPolicy() (*Policy, error) {
	data, err := configFiles.ReadFile("config/policy.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded upload policy: %w", err)
	}
	return ParsePolicy(data)
}

// LoadPolicy reads a policy from path, or the embedded default when path is empty
func LoadPolicy(path string) (*Policy, error) {
	if path == "" {
		return DefaultPolicy()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload policy %s: %w", path, err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes and validates a YAML policy document
func ParsePolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal upload policy: %w", err)
	}

	err := validation.ValidateStruct(&p,
		validation.Field(&p.MaxBytes, validation.Required, validation.Min(int64(1))),
		validation.Field(&p.AllowedMimeTypes, validation.Required),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid upload policy: %w", err)
	}

	p.allowed = make(map[string]struct{}, len(p.AllowedMimeTypes))
	for _, m := range p.AllowedMimeTypes {
		p.allowed[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}
	return &p, nil
}

// Allows reports whether a MIME type is on the allow-list. Parameters such as
// "; charset=..." are ignored.
func (p *Policy) Allows(mimeType string) bool {
	base, _, _ := strings.Cut(mimeType, ";")
	_, ok := p.allowed[strings.ToLower(strings.TrimSpace(base))]
	return ok
}

// Check validates an upload against the policy. Violations are domain.ErrValidation.
func (p *Policy) Check(file *docsystem.UploadedFile) error {
	if file == nil {
		return fmt.Errorf("%w: no file uploaded", domain.ErrValidation)
	}

	name := strings.TrimSpace(file.Filename)
	switch {
	case name == "":
		return fmt.Errorf("%w: filename is required", domain.ErrValidation)
	case utf8.RuneCountInString(name) > config.MaxFilenameLength:
		return fmt.Errorf("%w: filename exceeds %d characters", domain.ErrValidation, config.MaxFilenameLength)
	case len(file.Data) == 0:
		return fmt.Errorf("%w: file is empty", domain.ErrValidation)
	case int64(len(file.Data)) > p.MaxBytes:
		return fmt.Errorf("%w: file exceeds %d bytes", domain.ErrValidation, p.MaxBytes)
	case !p.Allows(file.MimeType):
		return fmt.Errorf("%w: file type %q is not allowed", domain.ErrValidation, file.MimeType)
	}
	return nil
}
