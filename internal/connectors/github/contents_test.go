package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repocat-cli/internal/core/domain"
)

var testRepo = domain.Repo{Owner: "owner", Name: "repo"}

// newTestClient points a token-carrying client at a local server with a
// millisecond backoff so retry tests stay fast.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-token",
		WithBaseURL(srv.URL+"/"),
		WithRetry(time.Millisecond, MaxAttempts),
	)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func TestClient_List(t *testing.T) {
	t.Run("decodes a directory listing in remote order", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/owner/repo/contents/", r.URL.Path)
			writeJSON(w, http.StatusOK, `[
				{"name":"a.py","path":"a.py","type":"file"},
				{"name":"sub","path":"sub","type":"dir"}
			]`)
		}))

		entries, err := client.List(context.Background(), testRepo, "")

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, domain.Entry{Name: "a.py", Path: "a.py", Kind: domain.EntryFile}, entries[0])
		assert.Equal(t, domain.Entry{Name: "sub", Path: "sub", Kind: domain.EntryDir}, entries[1])
	})

	t.Run("rejects a file response", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK,
				`{"type":"file","name":"a.py","path":"a.py","encoding":"base64","content":""}`)
		}))

		_, err := client.List(context.Background(), testRepo, "a.py")

		assert.ErrorContains(t, err, "expected a directory listing")
	})
}

func TestClient_File(t *testing.T) {
	t.Run("decodes base64 content", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte("print('hi')\n"))
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, fmt.Sprintf(
				`{"type":"file","name":"a.py","path":"a.py","encoding":"base64","content":"%s"}`,
				encoded))
		}))

		blob, err := client.File(context.Background(), testRepo, "a.py")

		require.NoError(t, err)
		assert.Equal(t, "a.py", blob.Path)
		assert.Equal(t, "print('hi')\n", blob.Text)
	})

	t.Run("passes plain content through", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK,
				`{"type":"file","name":"a.md","path":"a.md","encoding":"","content":"plain text"}`)
		}))

		blob, err := client.File(context.Background(), testRepo, "a.md")

		require.NoError(t, err)
		assert.Equal(t, "plain text", blob.Text)
	})

	t.Run("rejects a listing response", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, `[]`)
		}))

		_, err := client.File(context.Background(), testRepo, "sub")

		assert.ErrorContains(t, err, "expected a file")
	})
}

func TestClient_retry(t *testing.T) {
	t.Run("transient faults are retried until success", func(t *testing.T) {
		var attempts int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if atomic.AddInt32(&attempts, 1) <= 2 {
				writeJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
				return
			}
			writeJSON(w, http.StatusOK, `[]`)
		}))

		entries, err := client.List(context.Background(), testRepo, "")

		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	})

	t.Run("persistent faults exhaust the attempt budget", func(t *testing.T) {
		var attempts int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&attempts, 1)
			writeJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
		}))

		_, err := client.List(context.Background(), testRepo, "")

		require.Error(t, err)
		assert.Equal(t, int32(MaxAttempts), atomic.LoadInt32(&attempts))
	})

	t.Run("not found is never retried", func(t *testing.T) {
		var attempts int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&attempts, 1)
			writeJSON(w, http.StatusNotFound, `{"message":"Not Found"}`)
		}))

		_, err := client.File(context.Background(), testRepo, "missing.py")

		assert.True(t, IsNotFound(err), "want not-found, got %v", err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	})

	t.Run("Retry-After drives a timed reissue", func(t *testing.T) {
		var attempts int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if atomic.AddInt32(&attempts, 1) == 1 {
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusTooManyRequests, `{
					"message":"You have exceeded a secondary rate limit. Please wait a few minutes before you try again.",
					"documentation_url":"https://docs.github.com/rest/overview/rate-limits-for-the-rest-api#about-secondary-rate-limits"
				}`)
				return
			}
			writeJSON(w, http.StatusOK, `[]`)
		}))

		start := time.Now()
		_, err := client.List(context.Background(), testRepo, "")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
		assert.GreaterOrEqual(t, elapsed, 900*time.Millisecond)
	})

	t.Run("rate limit without Retry-After surfaces after the budget", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("X-RateLimit-Limit", "5000")
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset", fmt.Sprint(time.Now().Add(time.Hour).Unix()))
			writeJSON(w, http.StatusForbidden, `{"message":"API rate limit exceeded"}`)
		}))
		// Tight budget keeps the exhaustion path fast.
		client.retry.maxAttempts = 2

		_, err := client.List(context.Background(), testRepo, "")

		assert.True(t, IsRateLimited(err), "want rate-limited, got %v", err)
	})
}
