package config

const (
	// MaxTitleLength is the maximum length of a version title, in characters.
	MaxTitleLength = 200

	// MaxBodyBytes is the maximum size of a version body, in bytes.
	MaxBodyBytes = 1_000_000

	// MaxAuthorLength is the maximum length of a version's author label.
	MaxAuthorLength = 100

	// MaxCommentLength is the maximum length of a comment body, in characters.
	MaxCommentLength = 5000

	// MaxFilenameLength is the maximum length of an attachment filename.
	MaxFilenameLength = 255

	// ExcerptLength is the number of characters shown in document list excerpts.
	ExcerptLength = 150

	// MaxWorkspaceNameLength is the maximum length of a workspace name.
	MaxWorkspaceNameLength = 100

	// MinPasswordLength is the shortest password the user pipeline accepts.
	MinPasswordLength = 6
)
