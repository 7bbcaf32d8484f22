package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/sonarexport/internal/config"
	"github.com/ALT-F4-LLC/sonarexport/internal/output"
	"github.com/ALT-F4-LLC/sonarexport/internal/sonar"
	"github.com/ALT-F4-LLC/sonarexport/internal/workflow"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type contextKey string

const cfgKey contextKey = "cfg"

// CmdError wraps an error with a machine-readable error code for structured output.
type CmdError struct {
	Err  error
	Code output.ErrorCode
}

func (e *CmdError) Error() string { return e.Err.Error() }

func cmdErr(err error, code output.ErrorCode) *CmdError {
	return &CmdError{Err: err, Code: code}
}

var rootCmd = &cobra.Command{
	Use:     "sonarexport",
	Short:   "Export SonarQube issues, metrics, and quality gate status",
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := cmd.Annotations["skipConfig"]; ok {
			return nil
		}

		v := config.NewViper()
		if err := config.BindFlags(v, cmd.Flags()); err != nil {
			return cmdErr(err, output.ErrValidation)
		}
		cfg, err := config.Resolve(v)
		if err != nil {
			return cmdErr(err, output.ErrValidation)
		}

		cmd.SetContext(context.WithValue(cmd.Context(), cfgKey, cfg))
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Bool("json", false, "Output in JSON format")
	pf.BoolP("quiet", "q", false, "Suppress non-essential output")
	pf.String(config.KeyURL, "", "SonarQube server URL (env SONAR_URL)")
	pf.String(config.KeyUsername, "", "SonarQube username (env SONAR_USERNAME)")
	pf.String(config.KeyPassword, "", "SonarQube password or token (env SONAR_PASSWORD)")
	pf.StringP(config.KeyProject, "p", "", "Project key to export (env PROJECT_KEY)")
	pf.StringP(config.KeyOutDir, "o", "", "Directory for export files (env SONAR_EXPORT_DIR)")
	pf.Int(config.KeyProbeAttempts, 0, "Availability checks before giving up (env SONAR_PROBE_ATTEMPTS)")
	pf.Duration(config.KeyProbeInterval, 0, "Pause between availability checks (env SONAR_PROBE_INTERVAL)")
	pf.Duration(config.KeyProbeTimeout, 0, "Timeout of one availability check (env SONAR_PROBE_TIMEOUT)")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cmdErr(err, output.ErrValidation)
	})
}

func getWriter(cmd *cobra.Command) *output.Writer {
	jsonMode, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return output.New(jsonMode, quietMode)
}

func getCfg(cmd *cobra.Command) *config.Config {
	cfg, _ := cmd.Context().Value(cfgKey).(*config.Config)
	return cfg
}

// noArgs rejects positional arguments as a validation error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return cmdErr(err, output.ErrValidation)
	}
	return nil
}

// workflowErr classifies a workflow failure for structured output.
func workflowErr(err error) *CmdError {
	switch {
	case errors.Is(err, workflow.ErrUnavailable):
		return cmdErr(err, output.ErrUnavailable)
	case errors.Is(err, sonar.ErrProjectNotFound):
		return cmdErr(err, output.ErrNotFound)
	case errors.Is(err, workflow.ErrNothingToExport):
		return cmdErr(err, output.ErrNothingToExport)
	case errors.Is(err, workflow.ErrExport):
		return cmdErr(err, output.ErrExport)
	case errors.Is(err, workflow.ErrFetch):
		return cmdErr(err, output.ErrFetch)
	default:
		return cmdErr(err, output.ErrGeneral)
	}
}

// Execute runs the root command and returns an exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		jsonMode, _ := rootCmd.PersistentFlags().GetBool("json")
		quietMode, _ := rootCmd.PersistentFlags().GetBool("quiet")
		w := output.New(jsonMode, quietMode)

		var ce *CmdError
		if errors.As(err, &ce) {
			return w.Error(ce.Err, ce.Code)
		}
		return w.Error(err, output.ErrGeneral)
	}
	return output.ExitSuccess
}
