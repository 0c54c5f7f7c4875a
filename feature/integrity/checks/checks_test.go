package checks

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// newFs returns an in-memory filesystem rooted like the real serving root.
func newFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewBasePathFs(afero.NewMemMapFs(), "/srv")
	require.NoError(t, fsys.MkdirAll(".", 0o755))
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
	return fsys
}
