/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package validate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tokengraph/validator"
)

func TestReport(t *testing.T) {
	results := []validator.Result{
		{Path: "a", File: "tokens.json", Severity: validator.SeverityError, Code: validator.CodeBrokenRef, Message: "reference {x} points to a token that does not exist"},
		{Path: "b", File: "tokens.json", Severity: validator.SeverityWarning, Code: validator.CodeTypeMismatch, Message: "color token references dimension token {c}"},
	}

	var all bytes.Buffer
	report(&all, results, false)
	assert.Equal(t, 2, bytes.Count(all.Bytes(), []byte("\n")))
	assert.Contains(t, all.String(), "tokens.json: a: reference {x}")

	var quiet bytes.Buffer
	report(&quiet, results, true)
	assert.Equal(t, 1, bytes.Count(quiet.Bytes(), []byte("\n")))
	assert.NotContains(t, quiet.String(), "dimension")
}

func TestRelevant(t *testing.T) {
	assert.True(t, relevant("/p/tokens/colors.json"))
	assert.True(t, relevant("/p/.config/design-tokens.yaml"))
	assert.False(t, relevant("/p/tokens/colors.json.swp"))
	assert.False(t, relevant("/p/README.md"))
}

func TestWatcher_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tokens"), 0o755))

	w, err := newWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, 50*time.Millisecond, func() { changes <- struct{}{} })
	}()

	file := filepath.Join(dir, "tokens", "colors.json")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte(`{}`), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	require.NoError(t, <-done)
}
