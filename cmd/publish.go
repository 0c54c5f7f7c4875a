package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"moment-server/core/storage"
	"moment-server/feature/integrity"
	"moment-server/feature/publish"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunPublish bool
	prunePublish  bool
	yesPublish    bool
)

// publishCmd mirrors the serving root into the configured bucket.
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the serving root to S3/MinIO storage",
	Long: `Uploads every new or changed file of the serving root to the configured
bucket (STORAGE_BUCKET, under STORAGE_PREFIX). Hidden files are skipped.

Examples:
  # Show what would be uploaded
  publish --dry-run

  # Upload and delete objects that no longer exist locally
  publish --prune

  # Same, without the confirmation prompt
  publish --prune --yes`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func init() {
	RootCmd.AddCommand(publishCmd)

	publishCmd.Flags().BoolVar(&dryRunPublish, "dry-run", false, "Plan only, change nothing")
	publishCmd.Flags().BoolVar(&prunePublish, "prune", false, "Delete objects missing from the serving root")
	publishCmd.Flags().BoolVar(&yesPublish, "yes", false, "Auto-confirm deletes (non-interactive)")
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer l.Sync()

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	fsys := integrity.RootFs(cfg.Server.Root)
	opts := publish.Options{
		DryRun: dryRunPublish,
		Prune:  prunePublish,
	}

	// Step 1: Plan (always runs)
	l.Info("Planning publish...",
		zap.String("root", cfg.Server.Root),
		zap.String("bucket", cfg.Storage.Bucket),
		zap.String("prefix", cfg.Storage.Prefix),
	)
	plan, err := publish.BuildPlan(ctx, fsys, client, cfg.Storage.Bucket, cfg.Storage.Prefix, opts)
	if err != nil {
		return fmt.Errorf("failed to plan publish: %w", err)
	}

	// Step 2: Print report
	printPublishReport(l, plan)

	if len(plan.Actions) == 0 {
		l.Info("Bucket is up to date.")
		return nil
	}
	if dryRunPublish {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	// Step 3: Deletes need confirmation, uploads never destroy anything
	if plan.Summary.Deletes > 0 && !confirmDeletes(cmd.InOrStdin(), cmd.OutOrStdout()) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.Confirmed = true

	// Step 4: Apply
	l.Info("Applying actions...")
	executed, err := publish.ApplyPlan(ctx, fsys, client, plan, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}

	l.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

// printPublishReport prints a formatted publish report using logger.
func printPublishReport(l *zap.Logger, plan *publish.Plan) {
	s := plan.Summary

	l.Info("Publish report",
		zap.String("bucket", plan.Bucket),
		zap.Bool("bucket_exists", plan.BucketExists),
		zap.Int("local_files", s.LocalFiles),
		zap.Int("remote_objects", s.RemoteObjects),
		zap.Int("uploads", s.Uploads),
		zap.Int("deletes", s.Deletes),
		zap.String("upload_size", humanize.Bytes(uint64(s.UploadBytes))),
	)

	// Show sample of actions (max 5 for logger)
	maxShow := min(5, len(plan.Actions))
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDeletes prompts the user for confirmation or uses --yes flag.
func confirmDeletes(in io.Reader, out io.Writer) bool {
	if yesPublish {
		fmt.Fprintln(out, "\nAuto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "\nType 'yes' to confirm deleting objects: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
