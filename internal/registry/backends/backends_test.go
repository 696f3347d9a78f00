package backends

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smp/internal/platform/config"
	"smp/internal/registry/backend"
)

func TestInstallers_RegisterEveryEngine(t *testing.T) {
	reg, err := backend.NewRegistry(Installers()...)
	require.NoError(t, err)
	assert.Equal(t, []string{"memory", "file", "redis", "sql"}, reg.IDs())
}

func TestInstallers_FileEngineOpens(t *testing.T) {
	reg, err := backend.NewRegistry(Installers()...)
	require.NoError(t, err)
	factory, ok := reg.Resolve("file")
	require.True(t, ok)

	cfg := config.Defaults().Backend
	cfg.File.Path = filepath.Join(t.TempDir(), "smp.db")
	provider, err := factory(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer provider.Close()

	n, err := provider.CreateServiceGroupManager().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
