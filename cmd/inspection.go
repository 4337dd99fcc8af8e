package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"inspectra/internal/bootstrap"
	"inspectra/internal/bootstrap/logging"
	"inspectra/internal/errs"
	"inspectra/internal/usecase/compliance"
)

var inspectionCmd = &cobra.Command{
	Use:   "inspection",
	Short: "Schedule and execute inspections",
}

var inspectionScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule an inspection against the active checklist template",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		establishment, _ := cmd.Flags().GetString("establishment")
		inspectionType, _ := cmd.Flags().GetString("type")
		date, _ := cmd.Flags().GetString("date")
		priority, _ := cmd.Flags().GetString("priority")
		inspector, _ := cmd.Flags().GetString("inspector")
		actor, _ := cmd.Flags().GetString("actor")

		inspection, err := svc.ScheduleInspection(ctx, compliance.ScheduleInspectionInput{
			EstablishmentRef: establishment,
			InspectionType:   inspectionType,
			ScheduledDate:    date,
			Priority:         priority,
			InspectorID:      inspector,
			Actor:            actor,
		})
		if err != nil {
			logging.Error(ctx, "schedule inspection failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "schedule inspection")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "scheduled inspection: %s on %s priority=%s\n",
			inspection.Reference, inspection.ScheduledDate, inspection.Priority); err != nil {
			return errs.Wrap(err, "write schedule output")
		}
		return nil
	}),
}

var inspectionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Move a pending inspection to in_progress",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		reference, _ := cmd.Flags().GetString("inspection")
		actor, _ := cmd.Flags().GetString("actor")

		inspection, err := svc.StartInspection(ctx, compliance.StartInspectionInput{
			InspectionRef: reference,
			Actor:         actor,
		})
		if err != nil {
			logging.Error(ctx, "start inspection failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "start inspection")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "started inspection: %s\n", inspection.Reference); err != nil {
			return errs.Wrap(err, "write start output")
		}
		return nil
	}),
}

var inspectionRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record checklist responses for an in-progress inspection",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		reference, _ := cmd.Flags().GetString("inspection")
		actor, _ := cmd.Flags().GetString("actor")
		rawResponses, _ := cmd.Flags().GetStringSlice("response")

		responses, err := parseResponses(rawResponses)
		if err != nil {
			return err
		}

		if err := svc.RecordResponses(ctx, compliance.RecordResponsesInput{
			InspectionRef: reference,
			Responses:     responses,
			Actor:         actor,
		}); err != nil {
			logging.Error(ctx, "record responses failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "record responses")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "recorded %d response(s) for inspection: %s\n",
			len(responses), reference); err != nil {
			return errs.Wrap(err, "write record output")
		}
		return nil
	}),
}

var inspectionCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Complete an inspection and compute its checklist score",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		reference, _ := cmd.Flags().GetString("inspection")
		rating, _ := cmd.Flags().GetString("rating")
		notes, _ := cmd.Flags().GetString("notes")
		actor, _ := cmd.Flags().GetString("actor")

		detail, err := svc.CompleteInspection(ctx, compliance.CompleteInspectionInput{
			InspectionRef: reference,
			OverallRating: rating,
			Notes:         notes,
			Actor:         actor,
		})
		if err != nil {
			logging.Error(ctx, "complete inspection failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "complete inspection")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "completed inspection: %s score=%d/%d (%.2f%%) rating=%s\n",
			detail.Inspection.Reference,
			detail.Score.EarnedPoints,
			detail.Score.TotalPoints,
			detail.Score.Percentage,
			detail.Score.Rating,
		); err != nil {
			return errs.Wrap(err, "write complete output")
		}
		return nil
	}),
}

var inspectionCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a pending or in-progress inspection",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		reference, _ := cmd.Flags().GetString("inspection")
		reason, _ := cmd.Flags().GetString("reason")
		actor, _ := cmd.Flags().GetString("actor")

		if err := svc.CancelInspection(ctx, compliance.CancelInspectionInput{
			InspectionRef: reference,
			Reason:        reason,
			Actor:         actor,
		}); err != nil {
			logging.Error(ctx, "cancel inspection failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "cancel inspection")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "cancelled inspection: %s\n", reference); err != nil {
			return errs.Wrap(err, "write cancel output")
		}
		return nil
	}),
}

var inspectionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show an inspection with its responses and score",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		reference, _ := cmd.Flags().GetString("inspection")
		detail, err := svc.GetInspectionDetail(ctx, reference)
		if err != nil {
			logging.Error(ctx, "show inspection failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "show inspection")
		}

		out := cmd.OutOrStdout()
		inspection := detail.Inspection
		if _, err := fmt.Fprintf(out, "Reference: %s\n", inspection.Reference); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "Type: %s\n", inspection.InspectionType); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "Status: %s\n", inspection.Status); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "Priority: %s\n", inspection.Priority); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "ScheduledDate: %s\n", inspection.ScheduledDate); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if detail.Score != nil {
			if _, err := fmt.Fprintf(out, "Score: %d/%d (%.2f%%) rating=%s\n",
				detail.Score.EarnedPoints, detail.Score.TotalPoints,
				detail.Score.Percentage, detail.Score.Rating); err != nil {
				return errs.Wrap(err, "write show output")
			}
		}

		if len(detail.Responses) == 0 {
			if _, err := fmt.Fprintln(out, "Responses: none"); err != nil {
				return errs.Wrap(err, "write show responses")
			}
			return nil
		}
		if _, err := fmt.Fprintln(out, "Responses:"); err != nil {
			return errs.Wrap(err, "write show responses")
		}
		for _, response := range detail.Responses {
			if _, err := fmt.Fprintf(out, "- item=%d response=%s recorded_by=%s\n",
				response.ItemID, response.Response, response.RecordedBy); err != nil {
				return errs.Wrap(err, "write show response")
			}
		}
		return nil
	}),
}

var inspectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List an establishment's inspections",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		establishment, _ := cmd.Flags().GetString("establishment")
		status, _ := cmd.Flags().GetString("status")

		inspections, err := svc.ListInspections(ctx, establishment, status)
		if err != nil {
			logging.Error(ctx, "list inspections failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list inspections")
		}

		if len(inspections) == 0 {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "no inspections"); err != nil {
				return errs.Wrap(err, "write list output")
			}
			return nil
		}
		for _, inspection := range inspections {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] type=%s date=%s priority=%s\n",
				inspection.Reference, inspection.Status, inspection.InspectionType,
				inspection.ScheduledDate, inspection.Priority); err != nil {
				return errs.Wrap(err, "write list item")
			}
		}
		return nil
	}),
}

var inspectionDispatchCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Show the day's pending inspections in dispatch order",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		date, _ := cmd.Flags().GetString("date")
		items, err := svc.Prioritize(ctx, date)
		if err != nil {
			logging.Error(ctx, "dispatch listing failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list dispatch order")
		}

		if len(items) == 0 {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "no pending inspections"); err != nil {
				return errs.Wrap(err, "write dispatch output")
			}
			return nil
		}
		for position, item := range items {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d. %s rank=%d date=%s priority=%s risk=%s status=%s\n",
				position+1, item.Inspection.Reference, item.Rank, item.Inspection.ScheduledDate,
				item.Inspection.Priority, item.RiskCategory, item.ComplianceStatus); err != nil {
				return errs.Wrap(err, "write dispatch item")
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(inspectionCmd)
	inspectionCmd.AddCommand(inspectionScheduleCmd)
	inspectionCmd.AddCommand(inspectionStartCmd)
	inspectionCmd.AddCommand(inspectionRecordCmd)
	inspectionCmd.AddCommand(inspectionCompleteCmd)
	inspectionCmd.AddCommand(inspectionCancelCmd)
	inspectionCmd.AddCommand(inspectionShowCmd)
	inspectionCmd.AddCommand(inspectionListCmd)
	inspectionCmd.AddCommand(inspectionDispatchCmd)

	inspectionScheduleCmd.Flags().String("establishment", "", "Establishment reference, for example EST-2026-00012")
	inspectionScheduleCmd.Flags().String("type", "", "Inspection type, for example routine")
	inspectionScheduleCmd.Flags().String("date", "", "Scheduled date (YYYY-MM-DD)")
	inspectionScheduleCmd.Flags().String("priority", "medium", "Priority (low|medium|high|urgent)")
	inspectionScheduleCmd.Flags().String("inspector", "", "Inspector identifier")
	inspectionScheduleCmd.Flags().String("actor", "", "Acting user")
	_ = inspectionScheduleCmd.MarkFlagRequired("establishment")
	_ = inspectionScheduleCmd.MarkFlagRequired("type")
	_ = inspectionScheduleCmd.MarkFlagRequired("date")
	_ = inspectionScheduleCmd.MarkFlagRequired("actor")

	inspectionStartCmd.Flags().String("inspection", "", "Inspection reference, for example HSI-2026-03-0042")
	inspectionStartCmd.Flags().String("actor", "", "Acting user")
	_ = inspectionStartCmd.MarkFlagRequired("inspection")
	_ = inspectionStartCmd.MarkFlagRequired("actor")

	inspectionRecordCmd.Flags().String("inspection", "", "Inspection reference, for example HSI-2026-03-0042")
	inspectionRecordCmd.Flags().StringSlice("response", nil, "Checklist response as itemID=pass|fail|na, repeatable")
	inspectionRecordCmd.Flags().String("actor", "", "Acting user")
	_ = inspectionRecordCmd.MarkFlagRequired("inspection")
	_ = inspectionRecordCmd.MarkFlagRequired("response")
	_ = inspectionRecordCmd.MarkFlagRequired("actor")

	inspectionCompleteCmd.Flags().String("inspection", "", "Inspection reference, for example HSI-2026-03-0042")
	inspectionCompleteCmd.Flags().String("rating", "", "Overall rating override (default: computed from score)")
	inspectionCompleteCmd.Flags().String("notes", "", "Inspector notes")
	inspectionCompleteCmd.Flags().String("actor", "", "Acting user")
	_ = inspectionCompleteCmd.MarkFlagRequired("inspection")
	_ = inspectionCompleteCmd.MarkFlagRequired("actor")

	inspectionCancelCmd.Flags().String("inspection", "", "Inspection reference, for example HSI-2026-03-0042")
	inspectionCancelCmd.Flags().String("reason", "", "Cancellation reason")
	inspectionCancelCmd.Flags().String("actor", "", "Acting user")
	_ = inspectionCancelCmd.MarkFlagRequired("inspection")
	_ = inspectionCancelCmd.MarkFlagRequired("reason")
	_ = inspectionCancelCmd.MarkFlagRequired("actor")

	inspectionShowCmd.Flags().String("inspection", "", "Inspection reference, for example HSI-2026-03-0042")
	_ = inspectionShowCmd.MarkFlagRequired("inspection")

	inspectionListCmd.Flags().String("establishment", "", "Establishment reference, for example EST-2026-00012")
	inspectionListCmd.Flags().String("status", "", "Filter by status (pending|in_progress|completed|cancelled)")
	_ = inspectionListCmd.MarkFlagRequired("establishment")

	inspectionDispatchCmd.Flags().String("date", "", "Scheduled date filter (YYYY-MM-DD, default: all pending)")
}

func parseResponses(raw []string) ([]compliance.ResponseInput, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("at least one --response is required")
	}

	responses := make([]compliance.ResponseInput, 0, len(raw))
	for _, entry := range raw {
		itemPart, valuePart, found := strings.Cut(entry, "=")
		if !found {
			return nil, fmt.Errorf("invalid response %q: expected itemID=pass|fail|na", entry)
		}
		itemID, err := strconv.ParseUint(strings.TrimSpace(itemPart), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid response %q: item id must be numeric", entry)
		}
		responses = append(responses, compliance.ResponseInput{
			ItemID:   itemID,
			Response: strings.TrimSpace(valuePart),
		})
	}
	return responses, nil
}
