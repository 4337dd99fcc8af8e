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

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the audit trail for an entity",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		entityKind, _ := cmd.Flags().GetString("kind")
		entityRef, _ := cmd.Flags().GetString("ref")
		limit, _ := cmd.Flags().GetInt("limit")

		entries, err := svc.History(ctx, entityKind, entityRef, limit)
		if err != nil {
			logging.Error(ctx, "show history failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "show history")
		}

		if len(entries) == 0 {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "no history"); err != nil {
				return errs.Wrap(err, "write history output")
			}
			return nil
		}
		for _, entry := range entries {
			detail := entry.Detail
			if detail == "" {
				detail = "-"
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s by %s: %s\n",
				entry.CreatedAt, entry.Action, entry.Actor, detail); err != nil {
				return errs.Wrap(err, "write history item")
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().String("kind", "", "Entity kind (establishment|inspection|violation|certificate|template)")
	historyCmd.Flags().String("ref", "", "Entity reference or id")
	historyCmd.Flags().Int("limit", 50, "Maximum entries to show")
	_ = historyCmd.MarkFlagRequired("kind")
	_ = historyCmd.MarkFlagRequired("ref")
}
