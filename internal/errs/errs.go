// Package errs defines the failure taxonomy shared by every service. Errors
// are terminal for the call that produced them; the core never retries.
package errs

import "errors"

var (
	// ErrUnauthenticated means no caller identity could be resolved.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrValidation covers malformed input: empty passphrase, empty folder
	// name, sharing an encrypted file.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidPassphrase means the ciphertext integrity check failed.
	ErrInvalidPassphrase = errors.New("invalid passphrase")

	// ErrStorage is an object store I/O failure, including timeouts.
	ErrStorage = errors.New("object storage failure")

	// ErrMetadata is a catalog I/O failure.
	ErrMetadata = errors.New("metadata catalog failure")

	// ErrNotFound means a file, folder or share token does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired means a share token is past its validity window.
	ErrExpired = errors.New("share link expired")
)
