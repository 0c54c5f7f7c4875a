package devserver

import (
	"bytes"
	"strings"
	"testing"

	"moment-server/feature/integrity"
	"moment-server/feature/integrity/checks"

	"github.com/stretchr/testify/assert"
)

var exts = []string{".mp3", ".wav", ".ogg", ".m4a"}

func warnings(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "Warning:") {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestConsole_Startup(t *testing.T) {
	t.Run("Missing Files", func(t *testing.T) {
		var buf bytes.Buffer
		n := NewConsole(&buf, "moment-server").Startup(&integrity.StartupReport{
			Missing: []string{"index.html", "data/playlist.json"},
		}, exts)

		lines := warnings(buf.String())
		assert.Equal(t, 2, n)
		assert.Len(t, lines, 2)
		assert.Contains(t, lines[0], "index.html")
		assert.Contains(t, lines[1], "data/playlist.json")
	})

	t.Run("Empty Audio Dir", func(t *testing.T) {
		var buf bytes.Buffer
		NewConsole(&buf, "moment-server").Startup(&integrity.StartupReport{
			Audio: checks.AudioReport{Dir: "assets/audio", DirExists: true},
		}, exts)

		lines := warnings(buf.String())
		assert.Len(t, lines, 1)
		assert.Contains(t, lines[0], "no audio files")
		assert.Contains(t, lines[0], "assets/audio/")
	})

	t.Run("Audio Present", func(t *testing.T) {
		var buf bytes.Buffer
		n := NewConsole(&buf, "moment-server").Startup(&integrity.StartupReport{
			Audio: checks.AudioReport{Dir: "assets/audio", DirExists: true, Files: []string{"track.mp3"}},
		}, exts)

		assert.Equal(t, 0, n)
		assert.Empty(t, buf.String())
	})

	t.Run("Audio Dir Absent", func(t *testing.T) {
		var buf bytes.Buffer
		n := NewConsole(&buf, "moment-server").Startup(&integrity.StartupReport{
			Audio: checks.AudioReport{Dir: "assets/audio"},
		}, exts)

		assert.Equal(t, 0, n)
		assert.Empty(t, buf.String())
	})
}

func TestConsole_Messages(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, "moment-server")

	c.InvalidPort("abc", 8000)
	c.Banner(8000, "/srv/moment")
	c.PortInUse(8000)
	c.Stopped()

	out := buf.String()
	assert.Contains(t, out, `Warning: invalid port number "abc", using default port 8000`)
	assert.Contains(t, out, "Server address: http://localhost:8000")
	assert.Contains(t, out, "Serving directory: /srv/moment")
	assert.Contains(t, out, "Error: port 8000 is already in use")
	assert.Contains(t, out, "   moment-server 8001")
	assert.Contains(t, out, "Server stopped")
}
