package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/core/domain"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	var (
		commit bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Decide which module caches survive this compiler build",
		Long: "Plan reconciles every cache marker against the running compiler build,\n" +
			"cleans what can no longer be trusted and reports which chunks must be\n" +
			"recompiled. With --commit the expected attributes are persisted the way\n" +
			"a successful build would persist them.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := c.app.Plan(cmd.Context(), app.PlanOptions{Commit: commit})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			renderPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}

	cmd.Flags().BoolVar(&commit, "commit", false, "persist expected cache attributes as a successful build would")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the plan as JSON")
	return cmd
}

func renderPlan(w io.Writer, plan *domain.RebuildPlan) {
	fmt.Fprintf(w, "global: %s (%s)\n", plan.GlobalStatus, plan.GlobalDescription)

	for _, decision := range plan.Chunks {
		verdict := "up to date"
		if decision.Rebuild {
			verdict = fmt.Sprintf("rebuild (%s)", strings.Join(decision.Reasons, "; "))
			if decision.DirtyFiles > 0 {
				verdict += fmt.Sprintf(", %d dirty files", decision.DirtyFiles)
			}
		}
		fmt.Fprintf(w, "  %s: %s\n", decision.Chunk, verdict)
	}

	if len(plan.ClearedCaches) > 0 {
		fmt.Fprintf(w, "cleared caches: %s\n", strings.Join(plan.ClearedCaches, ", "))
	}
	fmt.Fprintf(w, "%d of %d chunks need rebuilding\n", plan.RebuildCount(), len(plan.Chunks))
}
