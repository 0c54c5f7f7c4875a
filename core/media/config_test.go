package media_test

import (
	"testing"

	"moment-server/core/media"

	"github.com/stretchr/testify/assert"
)

func TestConfig_RequiredFiles(t *testing.T) {
	c := media.Config{Index: "index.html", Playlist: "data/playlist.json"}
	assert.Equal(t, []string{"index.html", "data/playlist.json"}, c.RequiredFiles())
}

func TestConfig_IsAudio(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		c := media.Config{}
		assert.True(t, c.IsAudio("track.mp3"))
		assert.True(t, c.IsAudio("take.wav"))
		assert.True(t, c.IsAudio("loop.ogg"))
		assert.True(t, c.IsAudio("voice.m4a"))
		assert.False(t, c.IsAudio("notes.txt"))
	})

	t.Run("Configured", func(t *testing.T) {
		c := media.Config{AudioExtensions: []string{".flac"}}
		assert.True(t, c.IsAudio("album.flac"))
		assert.False(t, c.IsAudio("track.mp3"))
	})
}
