package main

import (
	"bytes"
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/includes"
	"github.com/meigma/includes/internal/testutil"
)

const queriesJSON = `[
  {"id": "hit", "sequence": [1, 2, {"$js": "NaN"}], "target": {"$js": "NaN"}},
  {"id": "miss", "sequence": ["a", "b"], "target": "a", "fromIndex": 1}
]`

const wantOutput = `{"id":"hit","found":true}
{"id":"miss","found":false}
`

// syncBuffer is a bytes.Buffer safe for concurrent writes and reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func execute(ctx context.Context, stdin string, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestEval_File(t *testing.T) {
	t.Parallel()

	path, err := testutil.WriteFile(t.TempDir(), "queries.json", []byte(queriesJSON))
	require.NoError(t, err)

	stdout, _, err := execute(t.Context(), "", "eval", path)
	require.NoError(t, err)
	assert.Equal(t, wantOutput, stdout)
}

func TestEval_Stdin(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"eval"}, {"eval", "-"}} {
		stdout, _, err := execute(t.Context(), queriesJSON, args...)
		require.NoError(t, err, "args %v", args)
		assert.Equal(t, wantOutput, stdout, "args %v", args)
	}
}

func TestEval_CompressedYAML(t *testing.T) {
	t.Parallel()

	doc := []byte("- id: y\n  sequence: [1, .nan]\n  target: .nan\n")
	compressed, err := testutil.Compress(doc)
	require.NoError(t, err)
	path, err := testutil.WriteFile(t.TempDir(), "queries.yaml.zst", compressed)
	require.NoError(t, err)

	stdout, stderr, err := execute(t.Context(), "", "eval", "--verbose", "--workers", "1", path)
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":\"y\",\"found\":true}\n", stdout)
	assert.Contains(t, stderr, "loaded query document")
	assert.Contains(t, stderr, "compressed=true")
}

func TestEval_FailedQueries(t *testing.T) {
	t.Parallel()

	doc := `[{"id": "ok", "sequence": [1], "target": 1}, {"id": "bad", "target": 1}]`

	stdout, stderr, err := execute(t.Context(), doc, "eval")
	require.ErrorIs(t, err, errQueriesFailed)
	assert.Contains(t, stdout, `{"id":"ok","found":true}`)
	assert.Contains(t, stdout, `{"id":"bad","found":false,"error":"includes: receiver is null or not defined"}`)
	assert.Contains(t, stderr, "queries failed")

	_, _, err = execute(t.Context(), doc, "eval", "--fail-fast", "--workers", "-1")
	require.ErrorIs(t, err, includes.ErrInvalidReceiver)
}

func TestEval_Strict(t *testing.T) {
	t.Parallel()

	doc := `{"id": "frac", "sequence": [1, 2], "target": 2, "fromIndex": 1.5}`

	stdout, _, err := execute(t.Context(), doc, "eval")
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":\"frac\",\"found\":true}\n", stdout)

	stdout, _, err = execute(t.Context(), doc, "eval", "--strict")
	require.ErrorIs(t, err, errQueriesFailed)
	assert.Contains(t, stdout, "invalid start index")
}

func TestEval_Digest(t *testing.T) {
	t.Parallel()

	good := digest.FromString(queriesJSON).String()
	stdout, _, err := execute(t.Context(), queriesJSON, "eval", "--digest", good)
	require.NoError(t, err)
	assert.Equal(t, wantOutput, stdout)

	bad := digest.FromString("other").String()
	_, _, err = execute(t.Context(), queriesJSON, "eval", "--digest", bad)
	require.ErrorIs(t, err, includes.ErrDigestMismatch)

	_, _, err = execute(t.Context(), queriesJSON, "eval", "--digest", "nope")
	require.Error(t, err)
}

func TestEval_Flags(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t.Context(), queriesJSON, "eval", "--format", "toml")
	require.Error(t, err)

	_, _, err = execute(t.Context(), "- id: x", "eval", "--format", "json")
	require.ErrorIs(t, err, includes.ErrInvalidDocument)

	_, _, err = execute(t.Context(), queriesJSON, "eval", "--max-bytes", "8")
	require.ErrorIs(t, err, includes.ErrDocumentTooLarge)

	_, _, err = execute(t.Context(), "", "eval", "a", "b")
	require.Error(t, err)
}

func TestEval_URL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_, _ = w.Write([]byte(queriesJSON))
	}))
	t.Cleanup(server.Close)

	stdout, _, err := execute(t.Context(), "", "eval", server.URL+"/queries.json")
	require.NoError(t, err)
	assert.Equal(t, wantOutput, stdout)
}

func TestEval_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t.Context(), "", "eval", t.TempDir()+"/missing.json")
	require.Error(t, err)
}

func TestDigestCmd(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t.Context(), queriesJSON, "digest")
	require.NoError(t, err)
	assert.Equal(t, digest.FromString(queriesJSON).String()+"\n", stdout)

	limit := strconv.Itoa(len(queriesJSON))
	stdout, _, err = execute(t.Context(), queriesJSON, "digest", "--max-bytes", limit)
	require.NoError(t, err)
	assert.Equal(t, digest.FromString(queriesJSON).String()+"\n", stdout)

	_, _, err = execute(t.Context(), queriesJSON, "digest", "--max-bytes", "8")
	require.ErrorIs(t, err, includes.ErrDocumentTooLarge)

	path, err := testutil.WriteFile(t.TempDir(), "queries.json", []byte(queriesJSON))
	require.NoError(t, err)
	_, _, err = execute(t.Context(), "", "digest", "--max-bytes", "8", path)
	require.ErrorIs(t, err, includes.ErrDocumentTooLarge)
}

func TestEval_WatchStdin(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t.Context(), queriesJSON, "eval", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot watch standard input")
}

func TestEval_WatchFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := testutil.WriteFile(dir, "queries.json", []byte(queriesJSON))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var out, errOut syncBuffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"eval", "--watch", path})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `"id":"hit"`)
	}, 5*time.Second, 10*time.Millisecond)

	_, err = testutil.WriteFile(dir, "queries.json", []byte(`{"id": "changed", "sequence": [1], "target": 1}`))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `{"id":"changed","found":true}`)
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestEval_WatchURL(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		requests int
	)
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.Header().Set("ETag", `"v1"`)
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(nethttp.StatusNotModified)
			return
		}
		_, _ = w.Write([]byte(queriesJSON))
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var out, errOut syncBuffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"eval", "--watch", "--interval", "10ms", server.URL})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	done := make(chan error, 1)
	go func() {
		done <- cmd.ExecuteContext(ctx)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return requests >= 3
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	// Unchanged documents are evaluated once.
	assert.Equal(t, wantOutput, out.String())
	assert.NotContains(t, errOut.String(), "evaluation failed")
}

func TestEval_WatchBadInterval(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t.Context(), "", "eval", "--watch", "--interval", "0s", "http://127.0.0.1:0/queries.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interval must be positive")
}
