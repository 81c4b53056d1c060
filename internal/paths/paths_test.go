package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultHonoursOverride(t *testing.T) {
	t.Setenv(EnvDir, "/tmp/qp")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	assert.Equal(t, "/tmp/qp", Default().Root)
}

func TestDefaultUsesXDG(t *testing.T) {
	t.Setenv(EnvDir, "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), Default().Root)
}

func TestDataDirFiles(t *testing.T) {
	d := DataDir{Root: "/data"}

	assert.Equal(t, filepath.Join("/data", ConfigFile), d.Config())
	assert.Equal(t, filepath.Join("/data", CatalogFile), d.Catalog())
	assert.Equal(t, filepath.Join("/data", LogFile), d.Log())
}
