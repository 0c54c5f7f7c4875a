package integrity

import (
	"moment-server/core/media"
	"moment-server/feature/integrity/checks"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Service runs integrity checks against the serving root.
type Service struct {
	fs     afero.Fs
	media  media.Config
	logger *zap.Logger
}

// RootFs returns a read-only filesystem confined to root.
func RootFs(root string) afero.Fs {
	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), root))
}

// NewService creates a new integrity service.
func NewService(fsys afero.Fs, cfg media.Config, logger *zap.Logger) *Service {
	return &Service{
		fs:     fsys,
		media:  cfg,
		logger: logger,
	}
}

// CheckRequired returns the required files missing from the serving root.
func (s *Service) CheckRequired() ([]string, error) {
	return checks.CheckRequired(s.fs, s.media.RequiredFiles())
}

// CheckAudio scans the audio directory.
func (s *Service) CheckAudio() (checks.AudioReport, error) {
	return checks.CheckAudio(s.fs, s.media.AudioDir, s.media.IsAudio)
}

// CheckPlaylist validates the playlist and every song it references.
func (s *Service) CheckPlaylist() (*checks.PlaylistReport, error) {
	return checks.CheckPlaylist(s.fs, s.media.Playlist, s.media.SongsDir)
}

// StartupReport holds the diagnostics printed before the server starts.
type StartupReport struct {
	Missing []string
	Audio   checks.AudioReport
}

// Startup runs the checks the dev server performs before binding.
// Failures are logged and leave the affected part of the report empty;
// startup never aborts because of them.
func (s *Service) Startup() *StartupReport {
	report := &StartupReport{}

	missing, err := s.CheckRequired()
	if err != nil {
		s.logger.Warn("Required file check failed", zap.Error(err))
	}
	report.Missing = missing

	audio, err := s.CheckAudio()
	if err != nil {
		s.logger.Warn("Audio directory check failed", zap.Error(err))
	}
	report.Audio = audio

	s.logger.Debug("Startup checks completed",
		zap.Strings("missing", report.Missing),
		zap.Bool("audio_dir", report.Audio.DirExists),
		zap.Int("audio_files", len(report.Audio.Files)),
	)

	return report
}

// CheckStatus is the outcome of a single check in a Report.
type CheckStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report is the combined result of every check, as printed by `check`.
type Report struct {
	Required struct {
		CheckStatus
		Missing []string `json:"missing"`
	} `json:"required"`
	Audio struct {
		CheckStatus
		checks.AudioReport
	} `json:"audio"`
	Playlist struct {
		CheckStatus
		*checks.PlaylistReport
	} `json:"playlist"`
}

// Issues counts the problems found across all checks.
func (r *Report) Issues() int {
	n := len(r.Required.Missing)
	if r.Audio.Empty() {
		n++
	}
	if r.Playlist.PlaylistReport != nil {
		n += len(r.Playlist.Issues)
	}
	for _, st := range []CheckStatus{r.Required.CheckStatus, r.Audio.CheckStatus, r.Playlist.CheckStatus} {
		if st.Status == StatusError {
			n++
		}
	}
	return n
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RunAll runs every check and collects the results. Errors of individual
// checks are recorded in the report instead of aborting the run.
func (s *Service) RunAll() *Report {
	report := &Report{}

	if missing, err := s.CheckRequired(); err != nil {
		report.Required.CheckStatus = CheckStatus{Status: StatusError, Error: err.Error()}
	} else {
		report.Required.CheckStatus = CheckStatus{Status: StatusOK}
		report.Required.Missing = missing
	}
	if report.Required.Missing == nil {
		report.Required.Missing = []string{}
	}

	if audio, err := s.CheckAudio(); err != nil {
		report.Audio.CheckStatus = CheckStatus{Status: StatusError, Error: err.Error()}
	} else {
		report.Audio.CheckStatus = CheckStatus{Status: StatusOK}
		report.Audio.AudioReport = audio
	}

	if playlist, err := s.CheckPlaylist(); err != nil {
		report.Playlist.CheckStatus = CheckStatus{Status: StatusError, Error: err.Error()}
	} else {
		report.Playlist.CheckStatus = CheckStatus{Status: StatusOK}
		report.Playlist.PlaylistReport = playlist
	}

	s.logger.Debug("Integrity checks completed", zap.Int("issues", report.Issues()))
	return report
}
