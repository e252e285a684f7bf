package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToRotatingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	l, err := New(Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, l.GetLevel())

	l.Info("hidden at warn level")
	l.Warn("partial placement", "task", "Essay")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "partial placement")
	assert.Contains(t, string(data), "task=Essay")
	assert.NotContains(t, string(data), "hidden at warn level")
}

func TestNew_Level(t *testing.T) {
	cases := []struct {
		name  string
		opts  Options
		want  log.Level
		isErr bool
	}{
		{name: "default", opts: Options{}, want: log.WarnLevel},
		{name: "explicit info", opts: Options{Level: "info"}, want: log.InfoLevel},
		{name: "debug flag wins", opts: Options{Level: "error", Debug: true, Stderr: &bytes.Buffer{}}, want: log.DebugLevel},
		{name: "unknown level", opts: Options{Level: "chatty"}, isErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.Dir = t.TempDir()
			l, err := New(tc.opts)
			if tc.isErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { l.Close() })
			assert.Equal(t, tc.want, l.GetLevel())
		})
	}
}

func TestNew_DebugMirrorsToStderr(t *testing.T) {
	var stderr bytes.Buffer
	l, err := New(Options{Dir: t.TempDir(), Debug: true, Stderr: &stderr})
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })

	l.Debug("grid built", "days", 14)
	assert.Contains(t, stderr.String(), "grid built")
	assert.Contains(t, stderr.String(), "days=14")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("dropped") })
}
