// Package cmd provides the command-line surface of the release tool.
// It owns everything interactive: argument parsing, the overwrite
// confirmation prompt, and the styled status output. The workflow
// packages below it never touch the terminal.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BenjaminKobjolke/release-tool/internal/config"
	"github.com/BenjaminKobjolke/release-tool/internal/errors"
	"github.com/BenjaminKobjolke/release-tool/internal/logging"
	"github.com/BenjaminKobjolke/release-tool/internal/release"
)

// ErrReleaseFailed is returned when the workflow refuses gracefully: a
// missing artifact or an operator-declined overwrite. It maps to the
// generic failure exit code.
var ErrReleaseFailed = errors.New("release failed")

var (
	previousVersion string
	dryRun          bool
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:   "release-tool <artifact> <config>",
	Short: "Release a build artifact via FTP",
	Long: `Release-tool publishes a single build artifact to a remote FTP
location. Before uploading it can optionally acquire a digital signature
through a network signing exchange, rotate a previously published artifact
into a backup folder, and mirror new release-notes folders.

Exit codes: 0 success, 1 release failure, 2 configuration error,
3 transport error, 130 interrupted.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRelease,
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.Flags().StringVarP(&previousVersion, "previous-version", "p", "", "Previous version string for backup folder naming (e.g. \"1.0.0\")")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without uploading")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
}

func runRelease(cmd *cobra.Command, args []string) error {
	artifactPath, configPath := args[0], args[1]

	logger := logging.NewStderr(verbose)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	manager := release.NewManager(cfg, release.Options{
		Confirm: confirmOverwrite,
		Logger:  logger,
		DryRun:  dryRun,
		Version: previousVersion,
	})

	ok, err := manager.Release(cmd.Context(), artifactPath)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), renderFailure("Release failed"))
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), renderFailure("Release aborted"))
		return ErrReleaseFailed
	}

	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), renderSuccess("Dry run complete, nothing was changed"))
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), renderSuccess("Release complete"))
	}
	return nil
}
