package checks

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// AudioReport describes the audio directory.
type AudioReport struct {
	// Dir is the scanned directory, relative to the serving root.
	Dir string `json:"dir"`
	// DirExists is false when the directory is absent.
	DirExists bool `json:"dir_exists"`
	// Files lists the recognised audio files, sorted by name.
	Files []string `json:"files"`
}

// Empty reports whether the directory exists but holds no audio file.
// An absent directory is not considered empty.
func (r AudioReport) Empty() bool {
	return r.DirExists && len(r.Files) == 0
}

// CheckAudio scans the immediate entries of dir for regular files accepted
// by isAudio. Subdirectories are not descended into.
func CheckAudio(fsys afero.Fs, dir string, isAudio func(name string) bool) (AudioReport, error) {
	report := AudioReport{Dir: dir, Files: []string{}}
	native := filepath.FromSlash(dir)

	exists, err := afero.DirExists(fsys, native)
	if err != nil {
		return report, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !exists {
		return report, nil
	}
	report.DirExists = true

	entries, err := afero.ReadDir(fsys, native)
	if err != nil {
		return report, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isAudio(entry.Name()) {
			report.Files = append(report.Files, entry.Name())
		}
	}
	sort.Strings(report.Files)

	return report, nil
}
