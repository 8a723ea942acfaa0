package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repocat-cli/internal/core/domain"
)

type fakeBuilder struct {
	doc     string
	err     error
	lastURL string
}

func (f *fakeBuilder) Build(_ context.Context, repoURL string) (string, error) {
	f.lastURL = repoURL
	return f.doc, f.err
}

type fakeQuota struct {
	status domain.RateStatus
	err    error
}

func (f *fakeQuota) Quota(_ context.Context) (domain.RateStatus, error) {
	return f.status, f.err
}

// withFakePorts injects fakes and restores the package state afterwards.
func withFakePorts(t *testing.T, builder *fakeBuilder, quota *fakeQuota) {
	t.Helper()
	documentBuilder = builder
	quotaReporter = quota
	t.Cleanup(func() {
		documentBuilder = nil
		quotaReporter = nil
		flagOutput = ""
		flagStdout = false
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestBuildCommand(t *testing.T) {
	t.Run("writes the document to the output flag path", func(t *testing.T) {
		builder := &fakeBuilder{doc: "the document"}
		withFakePorts(t, builder, nil)
		out := filepath.Join(t.TempDir(), "out.txt")

		stdout, err := execute(t, "build", "https://github.com/owner/repo", "--output", out)

		require.NoError(t, err)
		assert.Equal(t, "https://github.com/owner/repo", builder.lastURL)
		data, readErr := os.ReadFile(out)
		require.NoError(t, readErr)
		assert.Equal(t, "the document", string(data))
		assert.Contains(t, stdout, "saved to "+out)
	})

	t.Run("derives the default output name from the repo", func(t *testing.T) {
		withFakePorts(t, &fakeBuilder{doc: "d"}, nil)
		t.Chdir(t.TempDir())

		_, err := execute(t, "build", "https://github.com/owner/myrepo")

		require.NoError(t, err)
		assert.FileExists(t, "myrepo-formatted-prompt.txt")
	})

	t.Run("stdout mode prints instead of writing", func(t *testing.T) {
		withFakePorts(t, &fakeBuilder{doc: "printed"}, nil)
		t.Chdir(t.TempDir())

		stdout, err := execute(t, "build", "https://github.com/owner/repo", "--stdout")

		require.NoError(t, err)
		assert.Equal(t, "printed", stdout)
		assert.NoFileExists(t, "repo-formatted-prompt.txt")
	})

	t.Run("surfaces builder failures", func(t *testing.T) {
		withFakePorts(t, &fakeBuilder{err: errors.New("walk failed")}, nil)

		_, err := execute(t, "build", "https://github.com/owner/repo")

		assert.ErrorContains(t, err, "walk failed")
	})
}

func TestRateLimitCommand(t *testing.T) {
	t.Run("prints the quota snapshot", func(t *testing.T) {
		quota := &fakeQuota{status: domain.RateStatus{
			Remaining: 4999,
			Limit:     5000,
			ResetAt:   time.Unix(1_700_000_000, 0),
		}}
		withFakePorts(t, &fakeBuilder{}, quota)

		stdout, err := execute(t, "ratelimit")

		require.NoError(t, err)
		assert.Contains(t, stdout, "Rate Limit Status: 4999 / 5000")
		assert.Contains(t, stdout, "Resets at:")
	})

	t.Run("surfaces the missing-token error", func(t *testing.T) {
		withFakePorts(t, &fakeBuilder{}, &fakeQuota{err: domain.ErrAuthRequired})

		_, err := execute(t, "ratelimit")

		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})
}

func TestVersionCommand(t *testing.T) {
	t.Run("prints the version", func(t *testing.T) {
		withFakePorts(t, &fakeBuilder{}, nil)

		stdout, err := execute(t, "version")

		require.NoError(t, err)
		assert.Contains(t, stdout, "repocat version")
	})
}
