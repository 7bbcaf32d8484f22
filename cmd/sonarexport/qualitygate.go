package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/sonarexport/internal/render"
	"github.com/ALT-F4-LLC/sonarexport/internal/workflow"
)

var qualityGateCmd = &cobra.Command{
	Use:     "quality-gate",
	Aliases: []string{"qg"},
	Short:   "Export the project's quality gate status and history",
	Args:    noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)

		w.Info("%s", render.Banner("Exporting quality gate", cfg.ProjectKey, cfg.URL))
		res, err := workflow.New(cfg, w).RunQualityGate(cmd.Context())
		if err != nil {
			return workflowErr(err)
		}

		w.Print(render.RenderGateSummary(res.Document, time.Now()))
		w.Print(render.RenderFiles(res.Files))
		w.Success(res, fmt.Sprintf("Exported quality gate of %s (%s) to %d files", res.Project, res.Status, len(res.Files)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(qualityGateCmd)
}
