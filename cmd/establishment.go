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

var establishmentCmd = &cobra.Command{
	Use:   "establishment",
	Short: "Register and inspect establishments",
}

var establishmentRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register an establishment and assign its reference number",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		name, _ := cmd.Flags().GetString("name")
		establishmentType, _ := cmd.Flags().GetString("type")
		owner, _ := cmd.Flags().GetString("owner")
		address, _ := cmd.Flags().GetString("address")
		actor, _ := cmd.Flags().GetString("actor")

		establishment, err := svc.RegisterEstablishment(ctx, compliance.RegisterEstablishmentInput{
			Name:              name,
			EstablishmentType: establishmentType,
			OwnerName:         owner,
			Address:           address,
			Actor:             actor,
		})
		if err != nil {
			logging.Error(ctx, "register establishment failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "register establishment")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "registered establishment: %s risk=%s status=%s\n",
			establishment.Reference, establishment.RiskCategory, establishment.ComplianceStatus); err != nil {
			return errs.Wrap(err, "write register output")
		}
		return nil
	}),
}

var establishmentShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show an establishment's registration and compliance status",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		reference, _ := cmd.Flags().GetString("establishment")
		establishment, err := svc.GetEstablishment(ctx, reference)
		if err != nil {
			logging.Error(ctx, "show establishment failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "show establishment")
		}

		out := cmd.OutOrStdout()
		if _, err := fmt.Fprintf(out, "Reference: %s\n", establishment.Reference); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "Name: %s\n", establishment.Name); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "Type: %s\n", establishment.EstablishmentType); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "Owner: %s\n", establishment.OwnerName); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "Address: %s\n", establishment.Address); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "RiskCategory: %s\n", establishment.RiskCategory); err != nil {
			return errs.Wrap(err, "write show output")
		}
		if _, err := fmt.Fprintf(out, "ComplianceStatus: %s\n", establishment.ComplianceStatus); err != nil {
			return errs.Wrap(err, "write show output")
		}
		return nil
	}),
}

var establishmentRescoreCmd = &cobra.Command{
	Use:   "rescore-risk",
	Short: "Recompute an establishment's risk category from its history",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *compliance.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		reference, _ := cmd.Flags().GetString("establishment")
		actor, _ := cmd.Flags().GetString("actor")

		assessment, err := svc.RescoreRisk(ctx, compliance.RescoreRiskInput{
			EstablishmentRef: reference,
			Actor:            actor,
		})
		if err != nil {
			logging.Error(ctx, "rescore risk failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "rescore risk")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "risk category for %s: %s (%s)\n",
			reference, assessment.Category, assessment.Rationale); err != nil {
			return errs.Wrap(err, "write rescore output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(establishmentCmd)
	establishmentCmd.AddCommand(establishmentRegisterCmd)
	establishmentCmd.AddCommand(establishmentShowCmd)
	establishmentCmd.AddCommand(establishmentRescoreCmd)

	establishmentRegisterCmd.Flags().String("name", "", "Establishment name")
	establishmentRegisterCmd.Flags().String("type", "", "Establishment type, for example restaurant")
	establishmentRegisterCmd.Flags().String("owner", "", "Owner name")
	establishmentRegisterCmd.Flags().String("address", "", "Street address")
	establishmentRegisterCmd.Flags().String("actor", "", "Acting user")
	_ = establishmentRegisterCmd.MarkFlagRequired("name")
	_ = establishmentRegisterCmd.MarkFlagRequired("type")
	_ = establishmentRegisterCmd.MarkFlagRequired("actor")

	establishmentShowCmd.Flags().String("establishment", "", "Establishment reference, for example EST-2026-00012")
	_ = establishmentShowCmd.MarkFlagRequired("establishment")

	establishmentRescoreCmd.Flags().String("establishment", "", "Establishment reference, for example EST-2026-00012")
	establishmentRescoreCmd.Flags().String("actor", "", "Acting user")
	_ = establishmentRescoreCmd.MarkFlagRequired("establishment")
	_ = establishmentRescoreCmd.MarkFlagRequired("actor")
}
