package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetLogger undoes the global logrus mutations Setup makes.
func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	})
}

func TestSetupLevels(t *testing.T) {
	resetLogger(t)

	require.NoError(t, Setup("", "debug", false, false))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	require.NoError(t, Setup("", "", false, false))
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	require.Error(t, Setup("", "shouting", false, false))
}

func TestSetupRotatingFile(t *testing.T) {
	resetLogger(t)

	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Setup(dir, "info", false, false))

	logrus.Info("rotation smoke test")

	// The hook writes through a dated file with a stable symlink.
	link := filepath.Join(dir, "wavescope.log")
	target, err := os.Readlink(link)
	require.NoError(t, err)

	buf, err := os.ReadFile(filepath.Join(dir, filepath.Base(target)))
	require.NoError(t, err)
	assert.Contains(t, string(buf), "rotation smoke test")
}

func TestSetupUTCFormatter(t *testing.T) {
	resetLogger(t)

	require.NoError(t, Setup("", "info", true, false))

	entry := logrus.NewEntry(logrus.StandardLogger())
	entry.Message = "utc check"
	entry.Time = time.Date(2026, 1, 2, 15, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60))

	out, err := logrus.StandardLogger().Formatter.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "2026-01-02 13:00:00.000 Z")
}
