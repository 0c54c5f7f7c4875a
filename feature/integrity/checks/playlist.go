package checks

import (
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Playlist is the document at data/playlist.json.
type Playlist struct {
	Name  string   `json:"name"`
	Songs []string `json:"songs"`
}

// Song is one document under data/songs, named after its ID.
type Song struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Artist        string   `json:"artist"`
	AudioSrc      string   `json:"audioSrc"`
	LyricsSrc     string   `json:"lyricsSrc"`
	BackgroundSrc string   `json:"backgroundSrc"`
	CoverSrc      string   `json:"coverSrc,omitempty"`
	Duration      any      `json:"duration,omitempty"`
	Album         string   `json:"album,omitempty"`
	Genre         string   `json:"genre,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// Problems reported for a playlist entry.
const (
	ProblemEmptyPlaylist = "playlist has no songs"
	ProblemDuplicate     = "song listed more than once"
	ProblemMissingSong   = "song file not found"
	ProblemInvalidSong   = "song file is not valid JSON"
	ProblemIDMismatch    = "song id does not match its file name"
	ProblemNoAudio       = "song has no audioSrc"
	ProblemMissingAsset  = "referenced file not found"
	ProblemOutsideRoot   = "referenced file is outside the serving root"
)

// SongIssue is a single problem found while checking the playlist.
type SongIssue struct {
	Song    string `json:"song,omitempty"`
	Field   string `json:"field,omitempty"`
	Path    string `json:"path,omitempty"`
	Problem string `json:"problem"`
	Detail  string `json:"detail,omitempty"`
}

// PlaylistReport is the result of CheckPlaylist.
type PlaylistReport struct {
	Path    string      `json:"path"`
	Present bool        `json:"present"`
	Name    string      `json:"name"`
	Songs   int         `json:"songs"`
	Valid   int         `json:"valid"`
	Issues  []SongIssue `json:"issues"`
}

// CheckPlaylist validates the playlist catalog the player loads at runtime:
// every listed song must have a parseable document in songsDir and every
// file it references must exist under fsys.
//
// A missing playlist is reported through Present, not as an error. An
// unparseable playlist is an error because nothing else can be checked.
func CheckPlaylist(fsys afero.Fs, playlistPath, songsDir string) (*PlaylistReport, error) {
	report := &PlaylistReport{Path: playlistPath, Issues: []SongIssue{}}

	data, err := afero.ReadFile(fsys, filepath.FromSlash(playlistPath))
	if err != nil {
		exists, statErr := afero.Exists(fsys, filepath.FromSlash(playlistPath))
		if statErr == nil && !exists {
			return report, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", playlistPath, err)
	}
	report.Present = true

	var playlist Playlist
	if err := json.Unmarshal(data, &playlist); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", playlistPath, err)
	}
	report.Name = playlist.Name
	report.Songs = len(playlist.Songs)

	if len(playlist.Songs) == 0 {
		report.Issues = append(report.Issues, SongIssue{Problem: ProblemEmptyPlaylist})
		return report, nil
	}

	seen := make(map[string]bool, len(playlist.Songs))
	for _, id := range playlist.Songs {
		if seen[id] {
			report.Issues = append(report.Issues, SongIssue{Song: id, Problem: ProblemDuplicate})
			continue
		}
		seen[id] = true

		issues := checkSong(fsys, songsDir, id)
		if len(issues) == 0 {
			report.Valid++
		}
		report.Issues = append(report.Issues, issues...)
	}

	return report, nil
}

func checkSong(fsys afero.Fs, songsDir, id string) []SongIssue {
	songPath := path.Join(songsDir, id+".json")

	data, err := afero.ReadFile(fsys, filepath.FromSlash(songPath))
	if err != nil {
		return []SongIssue{{Song: id, Path: songPath, Problem: ProblemMissingSong}}
	}

	var song Song
	if err := json.Unmarshal(data, &song); err != nil {
		return []SongIssue{{Song: id, Path: songPath, Problem: ProblemInvalidSong, Detail: err.Error()}}
	}

	var issues []SongIssue
	if song.ID != "" && song.ID != id {
		issues = append(issues, SongIssue{Song: id, Field: "id", Problem: ProblemIDMismatch, Detail: song.ID})
	}
	if song.AudioSrc == "" {
		issues = append(issues, SongIssue{Song: id, Field: "audioSrc", Problem: ProblemNoAudio})
	}

	refs := []struct{ field, ref string }{
		{"audioSrc", song.AudioSrc},
		{"lyricsSrc", song.LyricsSrc},
		{"backgroundSrc", song.BackgroundSrc},
		{"coverSrc", song.CoverSrc},
	}
	for _, r := range refs {
		if issue, ok := checkReference(fsys, id, r.field, r.ref); !ok {
			issues = append(issues, issue)
		}
	}

	return issues
}

// checkReference verifies a file referenced by a song. Empty and remote
// references are accepted as is.
func checkReference(fsys afero.Fs, id, field, ref string) (SongIssue, bool) {
	if ref == "" || isRemote(ref) {
		return SongIssue{}, true
	}

	if rel := path.Clean(ref); rel == ".." || strings.HasPrefix(rel, "../") {
		return SongIssue{Song: id, Field: field, Path: ref, Problem: ProblemOutsideRoot}, false
	}
	clean := path.Clean("/" + ref)

	exists, err := afero.Exists(fsys, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
	if err != nil || !exists {
		return SongIssue{Song: id, Field: field, Path: ref, Problem: ProblemMissingAsset}, false
	}
	return SongIssue{}, true
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "//")
}
