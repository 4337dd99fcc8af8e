package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"inspectra/internal/bootstrap"
	"inspectra/internal/bootstrap/logging"
	"inspectra/internal/errs"
	"inspectra/internal/usecase/compliance"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage checklist templates",
}

var templateSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load checklist templates from a YAML file as new versions",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		file, _ := cmd.Flags().GetString("file")
		actor, _ := cmd.Flags().GetString("actor")

		created, err := svc.SeedTemplates(ctx, file, actor)
		if err != nil {
			logging.Error(ctx, "seed templates failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "seed templates")
		}

		for _, template := range created {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "seeded template: %s type=%s version=%d\n",
				template.Code, template.InspectionType, template.Version); err != nil {
				return errs.Wrap(err, "write seed output")
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateSeedCmd)

	templateSeedCmd.Flags().String("file", "configs/templates.yaml", "Template YAML file path")
	templateSeedCmd.Flags().String("actor", "", "Acting user")
	_ = templateSeedCmd.MarkFlagRequired("actor")
}
