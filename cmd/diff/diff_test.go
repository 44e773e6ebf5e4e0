/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package diff

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tokengraph/testutil"
)

func TestDiffCommand(t *testing.T) {
	baseline := testutil.CopyFixtureDir(t, "fixtures/workspace/basic")
	current := testutil.CopyFixtureDir(t, "fixtures/workspace/basic")
	require.NoError(t, os.WriteFile(filepath.Join(current, "tokens", "spacing.yaml"), []byte(`spacing:
  md:
    $type: dimension
    $value: 12px
  lg:
    $type: dimension
    $value: 16px
`), 0o644))

	viper.Set("root", current)
	t.Cleanup(func() { viper.Set("root", "") })

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetArgs([]string{"--baseline", baseline})
	require.NoError(t, Cmd.ExecuteContext(t.Context()))

	testutil.UpdateGoldenFile(t, "golden/diff/spacing.txt", out.Bytes())
	assert.Equal(t, string(testutil.LoadFixtureFile(t, "golden/diff/spacing.txt")), out.String())
}

func TestBaselineFiles_Missing(t *testing.T) {
	assert.Empty(t, baselineFiles(nil))
}
