package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"moment-server/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the serving root for missing or broken player files",
	Long: `Validates the serving root: required files, audio assets and the playlist
catalog, including every song file and the assets it references.
Prints a summary by default or the full report as JSON with --json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()

		jsonOutput, _ := cmd.Flags().GetBool("json")
		strict, _ := cmd.Flags().GetBool("strict")

		cfg, logg, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		svc := integrity.NewService(integrity.RootFs(cfg.Server.Root), cfg.Media, logg)
		report := svc.RunAll()
		issues := report.Issues()

		out := cmd.OutOrStdout()
		if jsonOutput {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
		} else {
			printCheckReport(out, cfg.Server.Root, cfg.Media.AudioDir, report)
		}

		logg.Info("Integrity check completed",
			zap.String("root", cfg.Server.Root),
			zap.Int("issues", issues),
			zap.Duration("execution_time", time.Since(startTime)),
		)

		if strict && issues > 0 {
			return fmt.Errorf("integrity check found %d issue(s)", issues)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Bool("json", false, "Output the full report as JSON")
	checkCmd.Flags().Bool("strict", false, "Exit with an error when issues are found")
}

func printCheckReport(w io.Writer, root, audioDir string, r *integrity.Report) {
	fmt.Fprintln(w, "=== Serving Root Integrity ===")
	fmt.Fprintf(w, "Serving directory: %s\n", root)

	switch {
	case r.Required.Status == integrity.StatusError:
		fmt.Fprintf(w, "Required files: error: %s\n", r.Required.Error)
	case len(r.Required.Missing) > 0:
		fmt.Fprintf(w, "Required files: missing %s\n", strings.Join(r.Required.Missing, ", "))
	default:
		fmt.Fprintln(w, "Required files: ok")
	}

	switch {
	case r.Audio.Status == integrity.StatusError:
		fmt.Fprintf(w, "Audio files: error: %s\n", r.Audio.Error)
	case !r.Audio.DirExists:
		fmt.Fprintf(w, "Audio files: %s/ not present\n", audioDir)
	default:
		fmt.Fprintf(w, "Audio files: %d in %s/\n", len(r.Audio.Files), audioDir)
	}

	switch {
	case r.Playlist.Status == integrity.StatusError:
		fmt.Fprintf(w, "Playlist: error: %s\n", r.Playlist.Error)
	case r.Playlist.PlaylistReport == nil || !r.Playlist.Present:
		fmt.Fprintln(w, "Playlist: not present")
	default:
		p := r.Playlist.PlaylistReport
		fmt.Fprintf(w, "Playlist: %q, %d songs, %d valid\n", p.Name, p.Songs, p.Valid)
		for _, issue := range p.Issues {
			line := "  - " + issue.Problem
			if issue.Song != "" {
				line += " [" + issue.Song + "]"
			}
			if issue.Path != "" {
				line += ": " + issue.Path
			}
			if issue.Detail != "" {
				line += " (" + issue.Detail + ")"
			}
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintf(w, "Issues: %d\n", r.Issues())
}
