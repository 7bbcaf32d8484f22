package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/sonarexport/internal/render"
	"github.com/ALT-F4-LLC/sonarexport/internal/workflow"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Export the project's code metrics",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)

		w.Info("%s", render.Banner("Exporting metrics", cfg.ProjectKey, cfg.URL))
		res, err := workflow.New(cfg, w).RunMetrics(cmd.Context())
		if err != nil {
			return workflowErr(err)
		}

		w.Print(render.RenderMetrics(res.Metrics))
		w.Print(render.RenderFiles(res.Files))
		w.Success(res, fmt.Sprintf("Exported %d metrics of %s to %d files", len(res.Metrics), res.Project, len(res.Files)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
