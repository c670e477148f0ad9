// Package cmd provides the corehost commands.
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
	"github.com/Aman-CERP/coretools/internal/native"
	"github.com/Aman-CERP/coretools/internal/output"
	"github.com/Aman-CERP/coretools/pkg/version"
)

const toolName = "corehost"

// coreModule is the lifecycle surface of the native core module.
type coreModule interface {
	Initialize() (native.Status, error)
	ErrorDetails() (string, error)
	Destroy() error
	Close() error
}

type coreLoader func(path string) (coreModule, error)

func loadNativeCore(path string) (coreModule, error) {
	core, err := native.LoadCore(path)
	if err != nil {
		return nil, err
	}
	return core, nil
}

// reportedError marks an error whose diagnostic is already on stderr.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

type options struct {
	modulePath string
	configPath string
	logFile    string
	debug      bool
}

// NewRootCmd creates the root command for the corehost CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Getenv, loadNativeCore)
}

func newRootCmd(getenv func(string) string, load coreLoader) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "corehost",
		Short: "Load the native core module and run its lifecycle",
		Long: `corehost loads the native core module, initializes it and tears it down.

If initialization reports a system error, the module's error details are
printed to stderr and corehost exits with status 1.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHost(cmd, opts, getenv, load)
		},
	}

	cmd.SetVersionTemplate("corehost version {{.Version}}\n")

	cmd.Flags().StringVar(&opts.modulePath, "module", "", "Path to the core module (default "+native.DefaultModuleName()+" next to the executable)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a coretools YAML config (default $"+config.EnvConfigPath+")")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Write structured logs to this file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging to ~/.coretools/logs/")

	cmd.AddCommand(newVersionCmd())

	return cmd
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

func runHost(cmd *cobra.Command, opts options, getenv func(string) string, load coreLoader) error {
	cfg, err := config.Load(opts.configPath, getenv)
	if err != nil {
		return err
	}

	logger, cleanup, err := logging.SetupCLI(toolName, opts.debug, opts.logFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	modulePath := opts.modulePath
	if modulePath == "" {
		modulePath = cfg.Native.ModulePath
	}
	modulePath = native.ResolveModulePath(modulePath)

	core, err := load(modulePath)
	if err != nil {
		logger.Error("core module load failed", slog.Any("error", cerrors.FormatForLog(err)))
		return err
	}
	defer func() {
		if err := core.Close(); err != nil {
			logger.Warn("core module release failed", slog.String("error", err.Error()))
		}
	}()
	logger.Info("core module loaded", slog.String("path", modulePath))

	status, err := core.Initialize()
	if err != nil {
		return err
	}

	if status != native.StatusOk {
		details, derr := core.ErrorDetails()
		if derr != nil {
			details = derr.Error()
		}
		output.New(cmd.ErrOrStderr()).Errorf("core initialization error: %s", details)
		logger.Error("core initialization failed",
			slog.String("status", status.String()),
			slog.String("details", details))

		// Destroy after a failed initialize frees the native error details
		if err := core.Destroy(); err != nil {
			logger.Warn("core destroy failed", slog.String("error", err.Error()))
		}
		return reportedError{cerrors.New(cerrors.ErrCodeNativeInitFailed, details, nil).
			WithDetail("status", status.String())}
	}

	logger.Info("core initialized")
	return core.Destroy()
}
