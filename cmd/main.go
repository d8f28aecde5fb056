// Package cmd implements the bazel2cmake command line
package cmd

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ngld/bazel2cmake/pkg/buildfile"
	"github.com/ngld/bazel2cmake/pkg/config"
	"github.com/ngld/bazel2cmake/pkg/convert"
)

// errorLogger reports the error returned by rootCmd. It's replaced by the configured logger once
// the config has been loaded.
var errorLogger = newLogger(os.Stderr, false, false, zerolog.InfoLevel)

var rootCmd = &cobra.Command{
	Use:   "bazel2cmake <output file>",
	Short: "Converts Bazel build files to a CMakeLists.txt",
	Long: `This command reads the WORKSPACE and BUILD files in the current directory and writes
an equivalent CMakeLists.txt to the given path. Only cc_library() targets are translated,
rules without a CMake counterpart are ignored.

Settings are read from bazel2cmake.toml and BAZEL2CMAKE_* environment variables.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := newLogger(cmd.ErrOrStderr(), cfg.Log.JSON, cfg.Debug, cfg.LogLevel())
		errorLogger = logger
		ctx := buildfile.WithLogger(context.Background(), &logger)

		return run(ctx, cfg, args[0])
	},
}

func run(ctx context.Context, cfg *config.Config, outputPath string) error {
	workspace, build, err := convert.ReadSources(cfg.Workspace, cfg.Build)
	if err != nil {
		return err
	}

	content, err := convert.Convert(ctx, cfg.CMakeOptions(), workspace, build)
	if err != nil {
		return err
	}

	err = convert.WriteOutput(outputPath, content)
	if err != nil {
		return err
	}

	buildfile.Log(ctx).Info().Str("path", outputPath).Msgf("Wrote %s", outputPath)
	return nil
}

// Execute runs the root command and exits with status 1 if it fails
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		errorLogger.Error().Err(err).Msg("bazel2cmake failed")
		os.Exit(1)
	}
}
