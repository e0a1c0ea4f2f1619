package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestVerboseLogsDebugToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := New(true, &stdout, &stderr)
	log.Debug("pushed stack", zap.String("stack", "work"))

	assert.Contains(t, stdout.String(), "pushed stack")
	assert.Contains(t, stdout.String(), `"stack": "work"`)
	assert.Empty(t, stderr.String())
}

func TestQuietLogsWarningsToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	log := New(false, &stdout, &stderr)
	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("journal unavailable")

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "journal unavailable")
	assert.NotContains(t, stderr.String(), "hidden")
}
