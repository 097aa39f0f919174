package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_FormatByEnv(t *testing.T) {
	var buf bytes.Buffer
	prod := newLogger(&buf, "user-admin", "production")
	assert.Equal(t, logrus.InfoLevel, prod.GetLevel())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "user-admin", line["app"])

	dev := newLogger(&bytes.Buffer{}, "user-admin", "development")
	assert.Equal(t, logrus.DebugLevel, dev.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)
}

func TestLogError_AddsErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "user-admin", "production")
	buf.Reset()

	LogError(logger, "store failed", errors.New("boom"), logrus.Fields{"op": "create"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "create", line["op"])
	assert.Equal(t, "error", line["level"])
}
