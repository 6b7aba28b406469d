package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors
var (
	// ErrEmptyText indicates no repository text was provided
	ErrEmptyText = errors.New("Text was not provided")

	// ErrPickerInterrupted indicates the interactive picker was killed by a signal
	ErrPickerInterrupted = errors.New("The file picker was interrupted")
)

// DownloadError represents a failed content download
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("Downloading from %s caused an error", e.URL)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// NewDownloadError creates a new DownloadError
func NewDownloadError(url string, err error) *DownloadError {
	return &DownloadError{URL: url, Err: err}
}

// ReadError represents a failure reading a response body
type ReadError struct {
	URL string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("Reading from %s caused an error", e.URL)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError creates a new ReadError
func NewReadError(url string, err error) *ReadError {
	return &ReadError{URL: url, Err: err}
}

// StatusError represents a non-OK response from the source API
type StatusError struct {
	Status int
	Msg    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GitHub API failure with response status %d %s: %s",
		e.Status, http.StatusText(e.Status), e.Msg)
}

// NewStatusError creates a new StatusError
func NewStatusError(status int, msg string) *StatusError {
	return &StatusError{Status: status, Msg: msg}
}

// MalformedRepoError indicates a repository argument that is not "owner/name"
type MalformedRepoError struct {
	Repo string
}

func (e *MalformedRepoError) Error() string {
	return fmt.Sprintf("The given repo %s is malformed.", e.Repo)
}

// NewMalformedRepoError creates a new MalformedRepoError
func NewMalformedRepoError(repo string) *MalformedRepoError {
	return &MalformedRepoError{Repo: repo}
}

// ResponseKeyError indicates a parsed response lacking an expected field
type ResponseKeyError struct {
	Key string
}

func (e *ResponseKeyError) Error() string {
	return fmt.Sprintf("The response is missing the key: %s", e.Key)
}

// NewResponseKeyError creates a new ResponseKeyError
func NewResponseKeyError(key string) *ResponseKeyError {
	return &ResponseKeyError{Key: key}
}

// TreeNotFoundError indicates the requested tree could not be listed
type TreeNotFoundError struct {
	Ref  string
	Repo string
	Err  error
}

func (e *TreeNotFoundError) Error() string {
	return fmt.Sprintf("The tree %s does not exist for repo %s. "+
		"If you did not specify a tree, specify master (by default, the tree is main).",
		e.Ref, e.Repo)
}

func (e *TreeNotFoundError) Unwrap() error {
	return e.Err
}

// NewTreeNotFoundError creates a new TreeNotFoundError
func NewTreeNotFoundError(ref, repo string, err error) *TreeNotFoundError {
	return &TreeNotFoundError{Ref: ref, Repo: repo, Err: err}
}

// TransportError wraps a network-level request failure
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "Network request failure"
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new TransportError
func NewTransportError(err error) *TransportError {
	return &TransportError{Err: err}
}

// IOError wraps a local I/O failure
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "I/O failure"
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(err error) *IOError {
	return &IOError{Err: err}
}

// OtherError is the catch-all for abnormal conditions carrying a status string
type OtherError struct {
	Status string
}

func (e *OtherError) Error() string {
	return fmt.Sprintf("An error occurred: %s", e.Status)
}

// NewOtherError creates a new OtherError
func NewOtherError(status string) *OtherError {
	return &OtherError{Status: status}
}

// FormatErrorChain renders an error and its causes as a single
// "Error: <msg>: <cause>: ..." line for the error stream. Messages never
// embed their wrapped cause, so the chain prints each layer exactly once.
func FormatErrorChain(err error) string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(err.Error())
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
	return b.String()
}
