package instructions

import (
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// memRoot builds an in-memory root from name -> content pairs. An entry
// whose name ends in "/" creates a directory.
func memRoot(t *testing.T, dir string, files map[string]string) Root {
	t.Helper()
	fs := afero.NewBasePathFs(afero.NewMemMapFs(), dir)
	for name, content := range files {
		if name[len(name)-1] == '/' {
			require.NoError(t, fs.MkdirAll(name, 0o755))
			continue
		}
		require.NoError(t, fs.MkdirAll(path.Dir(name), 0o755))
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return Root{Dir: dir, FS: fs}
}
