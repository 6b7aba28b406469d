package domain

import (
	"fmt"
	"strings"
)

// DefaultRef is the tree listed when the user does not name one
const DefaultRef = "main"

// Tree entry kinds as reported by the listing API
const (
	EntryKindBlob = "blob"
	EntryKindTree = "tree"
)

// Repository identifies a remote repository snapshot
type Repository struct {
	Owner string
	Name  string
	Ref   string
}

// ParseRepository parses an "owner/name" argument into a Repository pinned
// to DefaultRef. The argument must contain exactly one separator.
func ParseRepository(text string) (Repository, error) {
	if text == "" {
		return Repository{}, ErrEmptyText
	}
	if strings.Count(text, "/") != 1 {
		return Repository{}, NewMalformedRepoError(text)
	}

	owner, name, _ := strings.Cut(text, "/")
	if owner == "" || name == "" {
		return Repository{}, NewMalformedRepoError(text)
	}

	return Repository{Owner: owner, Name: name, Ref: DefaultRef}, nil
}

// Slug returns the "owner/name" form
func (r Repository) Slug() string {
	return r.Owner + "/" + r.Name
}

// TreeEntry is one node of a recursive tree listing
type TreeEntry struct {
	Path string `json:"path"`
	Kind string `json:"type"`
	Size int64  `json:"size,omitempty"`
}

// IsBlob reports whether the entry is a retrievable file
func (e TreeEntry) IsBlob() bool {
	return e.Kind == EntryKindBlob
}

// FetchTarget pairs a repository-relative path with its raw-content URL.
// Targets are derived fresh per download and never persisted.
type FetchTarget struct {
	Path   string
	RawURL string
}

// NewFetchTarget derives the raw-content URL for a chosen path
func NewFetchTarget(rawRoot string, repo Repository, path string) FetchTarget {
	return FetchTarget{
		Path:   path,
		RawURL: fmt.Sprintf("%s/%s/%s/%s/%s", strings.TrimSuffix(rawRoot, "/"), repo.Owner, repo.Name, repo.Ref, path),
	}
}
