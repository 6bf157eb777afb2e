package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("debug", &buf)

	logger.WithFields(map[string]interface{}{"stream": "camera", "handle": "abc"}).Warnf("stream closed: %s", "EOF")

	line := buf.String()
	require.True(t, strings.HasSuffix(line, "\n"), "line should be newline terminated: %q", line)
	assert.Contains(t, line, "[WAR] stream closed: EOF handle=abc stream=camera")
}

func TestWriterLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("warn", &buf)

	logger.Debugf("hidden")
	logger.Infof("hidden")
	assert.Empty(t, buf.String())

	logger.Errorf("shown")
	assert.Contains(t, buf.String(), "[ERR] shown")
}

func TestWriterLoggerBadLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("chatty", &buf)

	logger.Debugf("hidden")
	logger.Infof("visible")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[INF] visible")
}

func TestNewLogrusLoggerCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogrusLogger("info", dir+"/logs")
	require.NoError(t, err)
	logger.Infof("hello")
	assert.FileExists(t, dir+"/logs/joystick.log")
}
