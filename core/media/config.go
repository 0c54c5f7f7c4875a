package media

import "moment-server/core/utils"

// Config describes where the player expects its files, relative to the
// serving root.
type Config struct {
	// Index is the entry HTML page.
	Index string `mapstructure:"index" default:"index.html"`
	// Playlist is the playlist metadata file.
	Playlist string `mapstructure:"playlist" default:"data/playlist.json"`
	// SongsDir holds one JSON document per song referenced by the playlist.
	SongsDir string `mapstructure:"songs_dir" default:"data/songs"`
	// AudioDir is scanned for audio assets at startup.
	AudioDir string `mapstructure:"audio_dir" default:"assets/audio"`
	// AudioExtensions lists the recognised audio file extensions.
	AudioExtensions []string `mapstructure:"audio_extensions" default:".mp3,.wav,.ogg,.m4a"`
}

// DefaultAudioExtensions is used when no extensions are configured.
var DefaultAudioExtensions = []string{".mp3", ".wav", ".ogg", ".m4a"}

// RequiredFiles returns the files whose absence triggers a startup warning.
func (c Config) RequiredFiles() []string {
	return []string{c.Index, c.Playlist}
}

// Extensions returns the configured audio extensions or the defaults.
func (c Config) Extensions() []string {
	if len(c.AudioExtensions) == 0 {
		return DefaultAudioExtensions
	}
	return c.AudioExtensions
}

// IsAudio reports whether name carries a recognised audio extension.
func (c Config) IsAudio(name string) bool {
	return utils.HasExtension(name, c.Extensions())
}
