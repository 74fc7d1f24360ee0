package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		in   string
		want logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			l, closeFn, err := New(Options{Level: c.in, Output: &bytes.Buffer{}})
			require.NoError(t, err)
			defer closeFn()
			assert.Equal(t, c.want, l.GetLevel())
		})
	}

	_, _, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, closeFn, err := New(Options{JSON: true, Output: &buf})
	require.NoError(t, err)
	defer closeFn()

	l.WithField("cell", "3,4").Info("placement rejected")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "placement rejected", entry["msg"])
	assert.Equal(t, "3,4", entry["cell"])
}

func TestNewWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "editor.log")
	var buf bytes.Buffer
	l, closeFn, err := New(Options{File: path, MaxSizeMB: 1, Output: &buf})
	require.NoError(t, err)

	l.Info("map initialized")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "map initialized")
	assert.Contains(t, buf.String(), "map initialized")
}
