package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFiles is returned when an upload request carries no files.
	ErrNoFiles = errors.New("no files uploaded")
	// ErrNoMessage is returned when a chat request carries no message.
	ErrNoMessage = errors.New("no message provided")
	// ErrUnsupportedFileType is returned for media types outside the allow-list.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrFileTooLarge is returned when a file exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrEmptyContent is returned when extraction or chunking yields nothing.
	ErrEmptyContent = errors.New("no text content found in file")
	// ErrClientDisabled is returned when an external client was not configured.
	ErrClientDisabled = errors.New("client not initialized, check API key configuration")
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
)

// NoRelevantContentError means the similarity search succeeded but nothing
// met the minimum score floor. It is an expected terminal state, not a fault.
type NoRelevantContentError struct {
	SearchResults int
}

func (e *NoRelevantContentError) Error() string {
	return fmt.Sprintf("no relevant information found (%d search results below threshold)", e.SearchResults)
}

// SearchError wraps a vector store query failure so the HTTP layer can
// distinguish a misconfigured search backend from other failures.
type SearchError struct {
	Err error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("document search failed: %v", e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }
