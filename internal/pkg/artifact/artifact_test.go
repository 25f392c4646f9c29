package artifact

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem"
	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem/aferofs"
	"github.com/sfpd/picklist-dependency/internal/pkg/log"
)

func TestFileName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Status-SubStatus.csv", FileName("Status", "SubStatus"))
}

func TestPath_Separators(t *testing.T) {
	t.Parallel()
	expected := filesystem.Join("out", "Status-SubStatus.csv")
	for _, dir := range []string{"out", "out/", "out//", "./out"} {
		assert.Equal(t, expected, Path(filesystem.FromSlash(dir), "Status", "SubStatus"), dir)
		assert.Equal(t, "Status-SubStatus.csv", filesystem.Base(Path(dir, "Status", "SubStatus")), dir)
	}
}

func TestWriter_Write(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := log.NewDebugLogger()
	fs := aferofs.NewMemoryFs(filesystem.WithLogger(logger))
	require.NoError(t, fs.Mkdir(ctx, "out"))

	w := NewWriter(fs, logger)
	path, err := w.Write(ctx, "out", "Status", "SubStatus", "Status,SubStatus\nActive,Open")
	require.NoError(t, err)
	assert.Equal(t, filesystem.Join("out", "Status-SubStatus.csv"), path)
	assert.Equal(t, filesystem.Join("__memory__", "out", "Status-SubStatus.csv"), w.AbsPath(path))

	file, err := fs.ReadFile(ctx, filesystem.NewFileDef(path))
	require.NoError(t, err)
	assert.Equal(t, "Status,SubStatus\nActive,Open", file.Content)

	logger.AssertJSONMessages(t, `{"level":"debug","message":"Written 28 bytes to \"out%sStatus-SubStatus.csv\".","component":"artifact"}`)
}

func TestWriter_Overwrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := aferofs.NewMemoryFs()
	w := NewWriter(fs, log.NewNopLogger())

	_, err := w.Write(ctx, ".", "Status", "SubStatus", "Status,SubStatus\nActive,Open\nInactive,Closed\nPending,Closed")
	require.NoError(t, err)
	path, err := w.Write(ctx, ".", "Status", "SubStatus", "Status,SubStatus")
	require.NoError(t, err)

	file, err := fs.ReadFile(ctx, filesystem.NewFileDef(path))
	require.NoError(t, err)
	assert.Equal(t, "Status,SubStatus", file.Content)
}

func TestWriter_MissingDir(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs := aferofs.NewMemoryFs()
	w := NewWriter(fs, log.NewNopLogger())

	_, err := w.Write(ctx, "missing", "Status", "SubStatus", "Status,SubStatus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `directory "missing" not found`)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, fs.Exists(ctx, filesystem.Join("missing", "Status-SubStatus.csv")))
}
