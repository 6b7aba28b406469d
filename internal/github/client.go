// Package github lists repository trees through the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quantmind-br/gitpick/internal/domain"
	"github.com/quantmind-br/gitpick/internal/utils"
)

// mediaType is the API media type declared on every listing request
const mediaType = "application/vnd.github.v3+json"

// Client calls the tree-listing endpoint
type Client struct {
	httpClient *http.Client
	apiRoot    string
	userAgent  string
	log        *utils.Logger
}

var _ domain.TreeLister = (*Client)(nil)

// Options contains options for creating a Client
type Options struct {
	APIRoot    string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *utils.Logger
}

// DefaultOptions returns default client options
func DefaultOptions() Options {
	return Options{
		APIRoot:   "https://api.github.com/repos",
		UserAgent: "gitpick",
		Timeout:   30 * time.Second,
	}
}

// NewClient creates a new tree-listing client
func NewClient(opts Options) *Client {
	defaults := DefaultOptions()
	if opts.APIRoot == "" {
		opts.APIRoot = defaults.APIRoot
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaults.UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	log := opts.Logger
	if log == nil {
		log = utils.NewDefaultLogger()
	}

	return &Client{
		httpClient: httpClient,
		apiRoot:    strings.TrimSuffix(opts.APIRoot, "/"),
		userAgent:  opts.UserAgent,
		log:        log.WithComponent("github"),
	}
}

// ListTree lists the blob entries of the repository tree at its ref. The
// listing is recursive, so nested directories arrive flattened in one
// response; non-blob entries are dropped and upstream order is preserved.
// A request failure or non-OK status resolves to a TreeNotFoundError with
// the underlying cause attached.
func (c *Client) ListTree(ctx context.Context, repo domain.Repository) ([]domain.TreeEntry, error) {
	url := fmt.Sprintf("%s/%s/%s/git/trees/%s?recursive=1", c.apiRoot, repo.Owner, repo.Name, repo.Ref)
	c.log.Debug().Str("url", url).Msg("Listing repository tree")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewTreeNotFoundError(repo.Ref, repo.Slug(), domain.NewTransportError(err))
	}
	req.Header.Set("Content-Type", mediaType)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewTreeNotFoundError(repo.Ref, repo.Slug(), domain.NewTransportError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewReadError(url, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewTreeNotFoundError(repo.Ref, repo.Slug(),
			domain.NewStatusError(resp.StatusCode, string(body)))
	}

	entries, err := decodeTree(body)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Int("blobs", len(entries)).Msg("Tree listed")
	return entries, nil
}

// decodeTree extracts the blob entries from a listing response body
func decodeTree(body []byte) ([]domain.TreeEntry, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, domain.NewResponseKeyError("tree")
	}

	raw, ok := doc["tree"]
	if !ok {
		return nil, domain.NewResponseKeyError("tree")
	}

	var entries []domain.TreeEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, domain.NewResponseKeyError("tree")
	}

	var blobs []domain.TreeEntry
	for _, entry := range entries {
		if entry.IsBlob() {
			blobs = append(blobs, entry)
		}
	}
	return blobs, nil
}
