/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package logger_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"bennypowers.dev/tokengraph/internal/logger"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() {
		logger.SetOutput(os.Stderr)
		logger.SetDebug(false)
	})

	logger.Info("loaded %d files", 3)
	logger.Warn("theme %q not found", "sepia")
	logger.Debug("hidden")
	logger.SetDebug(true)
	logger.Debug("shown")
	logger.Error("boom")

	assert.Equal(t, "loaded 3 files\nwarning: theme \"sepia\" not found\ndebug: shown\nerror: boom\n", buf.String())
}
