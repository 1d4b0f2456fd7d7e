package platform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLock(t *testing.T) {
	name := "focuslog-test-" + t.Name()

	lock, err := AcquireWriterLock(name)
	require.NoError(t, err)

	_, err = AcquireWriterLock(name)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())

	again, err := AcquireWriterLock(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestWriterLock_NilRelease(t *testing.T) {
	var lock *WriterLock
	assert.NoError(t, lock.Release())
}

func TestPortFromName(t *testing.T) {
	port := portFromName("FocusLog")
	assert.Equal(t, port, portFromName("FocusLog"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestDataDir(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir, err := DataDir("FocusLog")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configHome, "FocusLog"), dir)
}
