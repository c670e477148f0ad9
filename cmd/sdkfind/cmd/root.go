// Package cmd provides the sdkfind command.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/coretools/internal/config"
	cerrors "github.com/Aman-CERP/coretools/internal/errors"
	"github.com/Aman-CERP/coretools/internal/logging"
	"github.com/Aman-CERP/coretools/internal/output"
	"github.com/Aman-CERP/coretools/internal/sdk"
	"github.com/Aman-CERP/coretools/pkg/version"
)

const toolName = "sdkfind"

// reportedError marks an error whose diagnostic is already on stderr.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

type options struct {
	configPath string
	logFile    string
	verbose    bool
	debug      bool
}

// NewRootCmd creates the root command for the sdkfind CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Getenv)
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "sdkfind <systemSdkRoot> <systemSdkVersion> <targetArchitecture> <requiredLib> [requiredLib...]",
		Short: "Locate a graphics SDK for the native build",
		Long: `sdkfind picks one SDK installation that provides every required library.

The system SDK (<root>/Lib/<version>/um/<arch>, <root>/Include/<version>/um)
is tried first, then a vendor SDK found under %ProgramFiles%,
%ProgramFiles(x86)% or %DXSDK_DIR%.

On success exactly "<libDir>;<includeDir>" is written to stdout.
Diagnostics go to stderr. The exit status is 1 when no SDK is usable.`,
		Version:       version.Version,
		Args:          requireSearchArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, args, opts, getenv)
		},
	}

	cmd.SetVersionTemplate("sdkfind version {{.Version}}\n")

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a coretools YAML config (default $"+config.EnvConfigPath+")")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write structured logs to this file")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print every probed directory to stderr")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging to ~/.coretools/logs/")

	return cmd
}

// requireSearchArgs accepts root, version, architecture and at least one library.
func requireSearchArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 4 {
		return cerrors.ValidationError(
			fmt.Sprintf("requires at least 4 arg(s), only received %d", len(args)), nil).
			WithSuggestion("usage: " + cmd.UseLine())
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return execute(NewRootCmd())
}

func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil && !errors.As(err, &reportedError{}) {
		output.New(cmd.ErrOrStderr()).Error(strings.TrimRight(cerrors.FormatForCLI(err), "\n"))
	}
	return err
}

func runFind(cmd *cobra.Command, args []string, opts options, getenv func(string) string) error {
	cfg, err := config.Load(opts.configPath, getenv)
	if err != nil {
		return err
	}

	logger, cleanup, err := logging.SetupCLI(toolName, opts.debug, opts.logFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	in := sdk.SearchInput{
		SystemSDKRoot:    args[0],
		SystemSDKVersion: args[1],
		TargetArch:       args[2],
		RequiredLibs:     args[3:],
	}
	logger.Debug("sdk search started",
		slog.String("root", in.SystemSDKRoot),
		slog.String("version", in.SystemSDKVersion),
		slog.String("arch", in.TargetArch),
		slog.Any("libs", in.RequiredLibs))

	out := output.New(cmd.ErrOrStderr(), output.WithVerbose(opts.verbose))
	loc := sdk.New(cfg.SDK,
		sdk.WithEnv(getenv),
		sdk.WithLogger(logger),
		sdk.WithReporter(diagnostics{out: out}),
	)

	res, err := loc.Resolve(in)
	if err != nil {
		if cerrors.GetCode(err) != cerrors.ErrCodeResolutionExhausted {
			return err
		}
		ce, _ := cerrors.As(err)
		out.Error(ce.Message)
		logger.Error("sdk resolution failed", slog.Any("error", cerrors.FormatForLog(err)))
		return reportedError{err}
	}

	// No trailing newline: the build system reads the value verbatim
	_, err = fmt.Fprint(cmd.OutOrStdout(), res.String())
	return err
}

// diagnostics turns locator events into stderr lines.
type diagnostics struct {
	out *output.Writer
}

func (d diagnostics) CandidateSkipped(err *cerrors.CoreError) {
	d.out.Warning(err.Message)
}

func (d diagnostics) ProbeMissed(dir, marker string) {
	d.out.Tracef("directory %s not contains %q", dir, marker)
}

func (d diagnostics) SearchPaths(paths []string) {
	d.out.Tracef("vendor sdk search paths: [%s]", strings.Join(paths, ", "))
}
