package checks

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// CheckRequired returns the paths that do not exist under fsys, in the
// order they were given. A path counts as present whether it is a file or
// a directory.
func CheckRequired(fsys afero.Fs, paths []string) ([]string, error) {
	var missing []string

	for _, p := range paths {
		exists, err := afero.Exists(fsys, filepath.FromSlash(p))
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !exists {
			missing = append(missing, p)
		}
	}

	return missing, nil
}
