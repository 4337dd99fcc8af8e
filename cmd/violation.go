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

var violationCmd = &cobra.Command{
	Use:   "violation",
	Short: "Report and resolve violations",
}

var violationReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report a violation found during an inspection",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		inspection, _ := cmd.Flags().GetString("inspection")
		category, _ := cmd.Flags().GetString("category")
		severity, _ := cmd.Flags().GetString("severity")
		description, _ := cmd.Flags().GetString("description")
		deadline, _ := cmd.Flags().GetString("deadline")
		actor, _ := cmd.Flags().GetString("actor")

		violation, err := svc.ReportViolation(ctx, compliance.ReportViolationInput{
			InspectionRef:      inspection,
			Category:           category,
			Severity:           severity,
			Description:        description,
			CorrectiveDeadline: deadline,
			Actor:              actor,
		})
		if err != nil {
			logging.Error(ctx, "report violation failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "report violation")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "reported violation: %d severity=%s inspection=%s\n",
			violation.ViolationID, violation.Severity, inspection); err != nil {
			return errs.Wrap(err, "write report output")
		}
		return nil
	}),
}

var violationResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve an open violation",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		violationID, _ := cmd.Flags().GetUint64("violation")
		notes, _ := cmd.Flags().GetString("notes")
		actor, _ := cmd.Flags().GetString("actor")

		if err := svc.ResolveViolation(ctx, compliance.ResolveViolationInput{
			ViolationID: violationID,
			Notes:       notes,
			Actor:       actor,
		}); err != nil {
			logging.Error(ctx, "resolve violation failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "resolve violation")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "resolved violation: %d\n", violationID); err != nil {
			return errs.Wrap(err, "write resolve output")
		}
		return nil
	}),
}

var violationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List an establishment's violations",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		establishment, _ := cmd.Flags().GetString("establishment")
		openOnly, _ := cmd.Flags().GetBool("open")

		violations, err := svc.ListViolations(ctx, establishment, openOnly)
		if err != nil {
			logging.Error(ctx, "list violations failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list violations")
		}

		if len(violations) == 0 {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "no violations"); err != nil {
				return errs.Wrap(err, "write list output")
			}
			return nil
		}
		for _, violation := range violations {
			deadline := "-"
			if violation.CorrectiveDeadline != nil {
				deadline = *violation.CorrectiveDeadline
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d [%s] severity=%s category=%s deadline=%s %s\n",
				violation.ViolationID, violation.Status, violation.Severity,
				violation.Category, deadline, violation.Description); err != nil {
				return errs.Wrap(err, "write list item")
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(violationCmd)
	violationCmd.AddCommand(violationReportCmd)
	violationCmd.AddCommand(violationResolveCmd)
	violationCmd.AddCommand(violationListCmd)

	violationReportCmd.Flags().String("inspection", "", "Inspection reference, for example HSI-2026-03-0042")
	violationReportCmd.Flags().String("category", "", "Violation category")
	violationReportCmd.Flags().String("severity", "", "Severity (minor|major|critical)")
	violationReportCmd.Flags().String("description", "", "What was found")
	violationReportCmd.Flags().String("deadline", "", "Corrective deadline (YYYY-MM-DD)")
	violationReportCmd.Flags().String("actor", "", "Acting user")
	_ = violationReportCmd.MarkFlagRequired("inspection")
	_ = violationReportCmd.MarkFlagRequired("category")
	_ = violationReportCmd.MarkFlagRequired("severity")
	_ = violationReportCmd.MarkFlagRequired("description")
	_ = violationReportCmd.MarkFlagRequired("actor")

	violationResolveCmd.Flags().Uint64("violation", 0, "Violation id")
	violationResolveCmd.Flags().String("notes", "", "Resolution notes")
	violationResolveCmd.Flags().String("actor", "", "Acting user")
	_ = violationResolveCmd.MarkFlagRequired("violation")
	_ = violationResolveCmd.MarkFlagRequired("actor")

	violationListCmd.Flags().String("establishment", "", "Establishment reference, for example EST-2026-00012")
	violationListCmd.Flags().Bool("open", false, "Only violations still open")
	_ = violationListCmd.MarkFlagRequired("establishment")
}
