package artifact

import "errors"

var (
	// ErrArtifactNotFound indicates the artifact doesn't exist.
	ErrArtifactNotFound = errors.New("artifact not found")
	// ErrUnknownKind indicates an unrecognized artifact kind tag.
	ErrUnknownKind = errors.New("unknown artifact kind")
	// ErrInvalidContent indicates content that violates its kind's schema.
	ErrInvalidContent = errors.New("invalid artifact content")
)
