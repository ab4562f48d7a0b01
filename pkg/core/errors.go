package core

import "errors"

// Sentinel errors for configuration synthesis. Callers wrap these with
// fmt.Errorf("%w: ...") to attach the offending value.
var (
	// ErrNoEntry reports that no entry module could be resolved from the
	// manifest or the filesystem.
	ErrNoEntry = errors.New("no entry module found")

	// ErrUnknownFormat reports an unrecognized output format name.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrDuplicateOutput reports two builds resolving to the same
	// destination path.
	ErrDuplicateOutput = errors.New("duplicate output path")

	// ErrManifestNotFound reports a missing package manifest.
	ErrManifestNotFound = errors.New("package manifest not found")

	// ErrManifestInvalid reports a manifest that exists but cannot be
	// decoded.
	ErrManifestInvalid = errors.New("invalid package manifest")
)
