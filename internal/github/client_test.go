package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/gitpick/internal/domain"
)

func testRepo() domain.Repository {
	return domain.Repository{Owner: "owner", Name: "demo", Ref: "main"}
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		client := NewClient(Options{})
		assert.Equal(t, "https://api.github.com/repos", client.apiRoot)
		assert.Equal(t, "gitpick", client.userAgent)
		require.NotNil(t, client.httpClient)
		assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	})

	t.Run("trims trailing slash on the API root", func(t *testing.T) {
		client := NewClient(Options{APIRoot: "https://ghe.internal/repos/"})
		assert.Equal(t, "https://ghe.internal/repos", client.apiRoot)
	})
}

func TestListTree(t *testing.T) {
	t.Parallel()

	t.Run("requests the recursive tree with required headers", func(t *testing.T) {
		var gotPath, gotQuery, gotContentType, gotUserAgent string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			gotContentType = r.Header.Get("Content-Type")
			gotUserAgent = r.Header.Get("User-Agent")
			fmt.Fprint(w, `{"tree": []}`)
		}))
		defer server.Close()

		client := NewClient(Options{APIRoot: server.URL, UserAgent: "gitpick"})
		_, err := client.ListTree(context.Background(), testRepo())

		require.NoError(t, err)
		assert.Equal(t, "/owner/demo/git/trees/main", gotPath)
		assert.Equal(t, "recursive=1", gotQuery)
		assert.Equal(t, "application/vnd.github.v3+json", gotContentType)
		assert.Equal(t, "gitpick", gotUserAgent)
	})

	t.Run("keeps only blobs in upstream order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"sha": "abc",
				"tree": [
					{"path": "dir", "type": "tree"},
					{"path": "z.txt", "type": "blob", "size": 12},
					{"path": "dir/nested", "type": "tree"},
					{"path": "a.txt", "type": "blob", "size": 3},
					{"path": "vendored", "type": "commit"},
					{"path": "dir/deep.txt", "type": "blob", "size": 9}
				],
				"truncated": false
			}`)
		}))
		defer server.Close()

		client := NewClient(Options{APIRoot: server.URL})
		entries, err := client.ListTree(context.Background(), testRepo())

		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "z.txt", entries[0].Path)
		assert.Equal(t, "a.txt", entries[1].Path)
		assert.Equal(t, "dir/deep.txt", entries[2].Path)
		assert.Equal(t, int64(12), entries[0].Size)
		for _, entry := range entries {
			assert.True(t, entry.IsBlob())
		}
	})

	t.Run("empty tree array yields no entries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"tree": []}`)
		}))
		defer server.Close()

		client := NewClient(Options{APIRoot: server.URL})
		entries, err := client.ListTree(context.Background(), testRepo())

		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("non-200 status maps to TreeNotFoundError", func(t *testing.T) {
		statuses := []int{http.StatusNotFound, http.StatusForbidden, http.StatusUnprocessableEntity, http.StatusInternalServerError}

		for _, status := range statuses {
			t.Run(fmt.Sprintf("status %d", status), func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(status)
					fmt.Fprint(w, `{"message":"no such tree"}`)
				}))
				defer server.Close()

				client := NewClient(Options{APIRoot: server.URL})
				entries, err := client.ListTree(context.Background(), testRepo())

				require.Error(t, err)
				assert.Nil(t, entries)

				var treeErr *domain.TreeNotFoundError
				require.ErrorAs(t, err, &treeErr)
				assert.Equal(t, "main", treeErr.Ref)
				assert.Equal(t, "owner/demo", treeErr.Repo)

				var statusErr *domain.StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, status, statusErr.Status)
				assert.Contains(t, statusErr.Msg, "no such tree")
			})
		}
	})

	t.Run("send failure maps to TreeNotFoundError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused from here on

		client := NewClient(Options{APIRoot: server.URL})
		_, err := client.ListTree(context.Background(), testRepo())

		require.Error(t, err)
		var treeErr *domain.TreeNotFoundError
		require.ErrorAs(t, err, &treeErr)
		var transportErr *domain.TransportError
		assert.ErrorAs(t, err, &transportErr)
	})

	t.Run("missing tree key maps to ResponseKeyError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"sha": "abc", "url": "https://api.github.com/x"}`)
		}))
		defer server.Close()

		client := NewClient(Options{APIRoot: server.URL})
		entries, err := client.ListTree(context.Background(), testRepo())

		require.Error(t, err)
		assert.Nil(t, entries)

		var keyErr *domain.ResponseKeyError
		require.ErrorAs(t, err, &keyErr)
		assert.Equal(t, "tree", keyErr.Key)
	})

	t.Run("undecodable body maps to ResponseKeyError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<!doctype html><html>not json</html>`)
		}))
		defer server.Close()

		client := NewClient(Options{APIRoot: server.URL})
		_, err := client.ListTree(context.Background(), testRepo())

		var keyErr *domain.ResponseKeyError
		require.ErrorAs(t, err, &keyErr)
		assert.Equal(t, "tree", keyErr.Key)
	})

	t.Run("context cancellation surfaces as TreeNotFoundError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			fmt.Fprint(w, `{"tree": []}`)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		client := NewClient(Options{APIRoot: server.URL})
		_, err := client.ListTree(ctx, testRepo())

		var treeErr *domain.TreeNotFoundError
		require.ErrorAs(t, err, &treeErr)
	})
}

func TestDecodeTree(t *testing.T) {
	t.Parallel()

	t.Run("null tree yields no entries", func(t *testing.T) {
		entries, err := decodeTree([]byte(`{"tree": null}`))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("tree of wrong shape is a key error", func(t *testing.T) {
		_, err := decodeTree([]byte(`{"tree": "not-an-array"}`))
		var keyErr *domain.ResponseKeyError
		require.ErrorAs(t, err, &keyErr)
	})
}
