package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type configInfo struct {
	URL           string `json:"url"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	ProjectKey    string `json:"project_key"`
	OutputDir     string `json:"output_dir"`
	ProbeAttempts int    `json:"probe_attempts"`
	ProbeInterval string `json:"probe_interval"`
	ProbeTimeout  string `json:"probe_timeout"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the resolved configuration",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd).Redacted()

		info := configInfo{
			URL:           cfg.URL,
			Username:      cfg.Username,
			Password:      cfg.Password,
			ProjectKey:    cfg.ProjectKey,
			OutputDir:     cfg.OutputDir,
			ProbeAttempts: cfg.ProbeAttempts,
			ProbeInterval: cfg.ProbeInterval.String(),
			ProbeTimeout:  cfg.ProbeTimeout.String(),
		}

		w.Success(info, formatConfigHuman(info))
		return nil
	},
}

func formatConfigHuman(info configInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Server URL:      %s\n", info.URL)
	fmt.Fprintf(&b, "Username:        %s\n", info.Username)
	fmt.Fprintf(&b, "Password:        %s\n", info.Password)
	fmt.Fprintf(&b, "Project key:     %s\n", info.ProjectKey)
	fmt.Fprintf(&b, "Output dir:      %s\n", info.OutputDir)
	fmt.Fprintf(&b, "Probe:           %d attempts, every %s, %s timeout", info.ProbeAttempts, info.ProbeInterval, info.ProbeTimeout)
	return b.String()
}

func init() {
	rootCmd.AddCommand(configCmd)
}
