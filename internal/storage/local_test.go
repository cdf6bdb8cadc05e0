package storage

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalService_SaveOpenRemove(t *testing.T) {
	t.Parallel()

	svc, err := NewLocalService(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	path, err := svc.Save(ctx, "1700000000000.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, "/uploads/1700000000000.png", path)

	rc, err := svc.Open(ctx, "1700000000000.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	require.Equal(t, "png-bytes", string(data))

	require.NoError(t, svc.Remove(ctx, "1700000000000.png"))
	_, err = svc.Open(ctx, "1700000000000.png")
	require.ErrorIs(t, err, os.ErrNotExist)

	// removing twice is not an error
	require.NoError(t, svc.Remove(ctx, "1700000000000.png"))
}

func TestLocalService_RejectsTraversal(t *testing.T) {
	t.Parallel()

	svc, err := NewLocalService(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = svc.Save(ctx, "../evil.png", "", strings.NewReader("x"))
	require.Error(t, err)

	_, err = svc.Open(ctx, "a/../../etc/passwd")
	require.Error(t, err)
}
