package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Open(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ufo.csv")
	require.NoError(t, os.WriteFile(path, []byte("date_time,duration_secs\n"), 0o600))

	s := NewSource(path)
	assert.Equal(t, path, s.Name())

	rc, err := s.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "date_time,duration_secs\n", string(data))
}

func TestSource_Stdin(t *testing.T) {
	s := NewSource(Stdin)
	s.stdin = strings.NewReader("model\nford f-150\n")
	assert.Equal(t, "stdin", s.Name())

	rc, err := s.Open(context.Background())
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "model\nford f-150\n", string(data))
	assert.NoError(t, rc.Close())
}

func TestSource_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewSource(filepath.Join(t.TempDir(), "absent.csv")).Open(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewSource("whatever.csv").Open(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
