package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ALT-F4-LLC/sonarexport/internal/render"
	"github.com/ALT-F4-LLC/sonarexport/internal/workflow"
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Export all issues of the project",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := getWriter(cmd)
		cfg := getCfg(cmd)

		w.Info("%s", render.Banner("Exporting issues", cfg.ProjectKey, cfg.URL))
		res, err := workflow.New(cfg, w).RunIssues(cmd.Context())
		if err != nil {
			return workflowErr(err)
		}

		w.Print(render.RenderIssueSummary(res.Summary))
		w.Print(render.RenderFiles(res.Files))
		w.Success(res, fmt.Sprintf("Exported %d issues of %s to %d files", res.Summary.TotalIssues, res.Project, len(res.Files)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(issuesCmd)
}
