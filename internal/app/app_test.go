package app

import (
	"testing"

	"focuslog/internal/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("FOCUSLOG_DATA_DIR", t.TempDir())
	t.Setenv("FOCUSLOG_LOGGING_LEVEL", "error")
}

func TestOpen_ReadOnly(t *testing.T) {
	isolate(t)

	application, err := Open(Options{})
	require.NoError(t, err)
	defer application.Close()

	assert.Nil(t, application.Registry)
	projects, err := application.Projects()
	require.NoError(t, err)
	assert.Equal(t, []string{"General"}, projects)
	assert.Empty(t, application.Stats.Sessions())
}

func TestOpen_WriterHoldsLock(t *testing.T) {
	isolate(t)

	writer, err := Open(Options{Writer: true})
	require.NoError(t, err)
	require.NotNil(t, writer.Registry)
	assert.NoError(t, writer.Log.Err())

	_, err = Open(Options{Writer: true})
	assert.ErrorIs(t, err, platform.ErrAlreadyRunning)

	reader, err := Open(Options{})
	require.NoError(t, err)
	require.NoError(t, reader.Close())

	require.NoError(t, writer.Close())

	again, err := Open(Options{Writer: true})
	require.NoError(t, err)
	assert.NoError(t, again.Close())
}
