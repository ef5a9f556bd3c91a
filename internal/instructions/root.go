package instructions

import (
	"embed"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

//go:embed builtin
var builtin embed.FS

// BuiltinDir is the display prefix of paths inside the embedded tree.
const BuiltinDir = "<builtin>"

// Root is one instruction tree. Names inside it are slash separated and
// relative to the tree, e.g. "commands/fix/command.md".
type Root struct {
	// Dir is the directory the tree lives in, used when displaying paths.
	Dir string
	// FS is rooted at Dir.
	FS afero.Fs
	// OnDisk reports whether Dir is a real directory that can be watched.
	OnDisk bool
}

// DirRoot returns a root for an on-disk directory.
func DirRoot(dir string) Root {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return Root{
		Dir:    dir,
		FS:     afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir)),
		OnDisk: true,
	}
}

// BuiltinRoot returns the instruction tree compiled into the binary.
func BuiltinRoot() Root {
	sub, err := fs.Sub(builtin, "builtin")
	if err != nil {
		panic(err)
	}
	return Root{Dir: BuiltinDir, FS: afero.FromIOFS{FS: sub}}
}

// Roots returns DirRoot for every dir followed by BuiltinRoot.
func Roots(dirs ...string) []Root {
	roots := make([]Root, 0, len(dirs)+1)
	for _, dir := range dirs {
		roots = append(roots, DirRoot(dir))
	}
	return append(roots, BuiltinRoot())
}

// display joins a slash separated name onto the root directory.
func (r Root) display(name string) string {
	return filepath.Join(r.Dir, filepath.FromSlash(name))
}
